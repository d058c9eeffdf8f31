package cli

import (
	"context"
	"fmt"

	"github.com/eslsoft/flashcards/internal/entity"
	"github.com/eslsoft/flashcards/internal/usecase"
	"github.com/eslsoft/flashcards/internal/usecase/backup"
)

// ImportFile merges the snapshot at path into deck, picking the codec from the
// file extension. Every failure wraps entity.ErrImportFailure; a missing file
// also matches fs.ErrNotExist.
func ImportFile(ctx context.Context, deck *usecase.Deck, codec *backup.Service, path string) (int, error) {
	rc, format, err := backup.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", entity.ErrImportFailure, err)
	}
	defer rc.Close()
	return deck.Import(ctx, rc, codec.ForFormat(format))
}

// ExportFile writes deck to path, picking the codec from the file extension.
func ExportFile(ctx context.Context, deck *usecase.Deck, codec *backup.Service, path string) (n int, err error) {
	wc, format, err := backup.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return deck.Export(ctx, wc, codec.ForFormat(format))
}
