package app

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/flashcards/internal/adapter/cli"
	"github.com/eslsoft/flashcards/internal/infrastructure/config"
	"github.com/eslsoft/flashcards/internal/infrastructure/console"
	"github.com/eslsoft/flashcards/internal/usecase"
	"github.com/eslsoft/flashcards/internal/usecase/backup"
)

func NewRandomSource(cfg *config.Config) usecase.RandomSource {
	return usecase.NewRandomSource(cfg.Quiz.Seed)
}

func NewDeck(rng usecase.RandomSource) *usecase.Deck {
	return usecase.NewDeck(usecase.WithRandom(rng))
}

func NewCodec(logger logrus.FieldLogger) *backup.Service {
	return backup.NewService(backup.WithLogger(logger))
}

func NewConsole(in io.Reader, out io.Writer, logger logrus.FieldLogger) *console.Console {
	return console.New(in, out, logger)
}

// NewShell applies the startup import and exit export paths from config.
func NewShell(cfg *config.Config, deck *usecase.Deck, terminal cli.Console, codec *backup.Service, logger logrus.FieldLogger) *cli.Shell {
	return cli.NewShell(deck, terminal, codec, logger,
		cli.WithStartupImport(cfg.Deck.Import),
		cli.WithExitExport(cfg.Deck.Export),
	)
}
