package usecase

import (
	"context"
	"io"

	"github.com/eslsoft/flashcards/internal/entity"
)

// LineSource yields user input one line at a time. ok is false once input is exhausted.
type LineSource interface {
	ReadLine() (line string, ok bool)
}

// LineSink receives every user-facing line.
type LineSink interface {
	WriteLine(line string)
}

// RandomSource picks a uniform index in [0, n). *math/rand/v2.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// SnapshotCodec serializes a whole deck snapshot.
type SnapshotCodec interface {
	Encode(ctx context.Context, w io.Writer, cards []entity.Card) error
	Decode(ctx context.Context, r io.Reader) ([]entity.Card, error)
}
