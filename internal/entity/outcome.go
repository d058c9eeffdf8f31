package entity

// OutcomeKind classifies a submitted answer.
type OutcomeKind int

const (
	// OutcomeCorrect means the answer equals the card's definition.
	OutcomeCorrect OutcomeKind = iota
	// OutcomeWrong means the answer matches no card's definition.
	OutcomeWrong
	// OutcomeWrongMatchesOther means the answer is the definition of a different card.
	OutcomeWrongMatchesOther
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeWrongMatchesOther:
		return "wrong_matches_other"
	default:
		return "unknown"
	}
}

// Outcome is the result of recording one quiz attempt.
type Outcome struct {
	Kind OutcomeKind
	// Expected is the asked card's definition.
	Expected string
	// OtherTerm is set only for OutcomeWrongMatchesOther.
	OtherTerm string
}
