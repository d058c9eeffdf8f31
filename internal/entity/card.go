package entity

// Card is a single term/definition pair together with its mistake counter.
type Card struct {
	Term       string `json:"term" toml:"term"`
	Definition string `json:"definition" toml:"definition"`
	Mistakes   int    `json:"mistakes" toml:"mistakes" validate:"gte=0"`
}

// Field selects which side of a card a lookup compares against.
type Field int

const (
	FieldTerm Field = iota
	FieldDefinition
)
