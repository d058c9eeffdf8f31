package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/flashcards/internal/entity"
)

// QuizSession asks for definitions of random cards and records the results in the deck.
type QuizSession struct {
	deck   *Deck
	source LineSource
	sink   LineSink
	logger logrus.FieldLogger
}

// NewQuizSession wires a session to its deck and line collaborators.
func NewQuizSession(deck *Deck, source LineSource, sink LineSink, logger logrus.FieldLogger) *QuizSession {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &QuizSession{
		deck:   deck,
		source: source,
		sink:   sink,
		logger: logger,
	}
}

// Run asks n questions. It refuses to start on an empty deck.
func (q *QuizSession) Run(ctx context.Context, n int) error {
	if q.deck.Len() == 0 {
		return entity.ErrEmptyDeck
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		card, err := q.deck.RandomCard()
		if err != nil {
			return err
		}

		q.sink.WriteLine(fmt.Sprintf("Print the definition of \"%s\":", card.Term))
		answer, ok := q.source.ReadLine()
		if !ok {
			return entity.ErrInputClosed
		}

		outcome, err := q.deck.RecordAttempt(card.Term, answer)
		if err != nil {
			return err
		}
		q.logger.WithFields(logrus.Fields{
			"term":    card.Term,
			"outcome": outcome.Kind.String(),
			"round":   i + 1,
		}).Debug("attempt recorded")

		q.sink.WriteLine(RenderOutcome(outcome))
	}
	return nil
}

// RenderOutcome formats the feedback line for an attempt.
func RenderOutcome(o entity.Outcome) string {
	switch o.Kind {
	case entity.OutcomeCorrect:
		return "Correct!"
	case entity.OutcomeWrongMatchesOther:
		return fmt.Sprintf("Wrong. The right answer is \"%s\", but your definition is correct for \"%s\".", o.Expected, o.OtherTerm)
	default:
		return fmt.Sprintf("Wrong. The right answer is \"%s\".", o.Expected)
	}
}
