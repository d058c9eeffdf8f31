package entity

import "strings"

// NormalizeAction lowercases a menu action and collapses inner whitespace so
// "Hardest  Card" and "hardest card" resolve to the same action.
func NormalizeAction(action string) string {
	return strings.ToLower(strings.Join(strings.Fields(action), " "))
}

// NormalizePath trims surrounding whitespace from a user supplied file name.
func NormalizePath(path string) string {
	return strings.TrimSpace(path)
}
