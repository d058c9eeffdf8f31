package entity

import "errors"

// Domain errors for the deck and quiz flows.
var (
	ErrDuplicateTerm       = errors.New("term already exists")
	ErrDuplicateDefinition = errors.New("definition already exists")
	ErrCardNotFound        = errors.New("card not found")
	ErrEmptyDeck           = errors.New("deck is empty")
	ErrImportFailure       = errors.New("import failed")
	ErrInputClosed         = errors.New("input closed")
	ErrInvalidText         = errors.New("text is not valid UTF-8")
)
