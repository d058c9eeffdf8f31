package app

import (
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/flashcards/internal/adapter/cli"
	"github.com/eslsoft/flashcards/internal/infrastructure/config"
	"github.com/eslsoft/flashcards/internal/usecase"
	"github.com/eslsoft/flashcards/internal/usecase/backup"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Deck   *usecase.Deck
	Codec  *backup.Service
	Shell  *cli.Shell
}
