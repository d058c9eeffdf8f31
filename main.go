package main

import "github.com/eslsoft/flashcards/cmd"

func main() {
	cmd.Execute()
}
