//go:build wireinject
// +build wireinject

package app

import (
	"io"

	"github.com/google/wire"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/flashcards/internal/adapter/cli"
	"github.com/eslsoft/flashcards/internal/infrastructure/config"
	"github.com/eslsoft/flashcards/internal/infrastructure/console"
	"github.com/eslsoft/flashcards/internal/infrastructure/logger"
)

var configSet = wire.NewSet(
	config.Load,
)

var loggerSet = wire.NewSet(
	logger.NewLogger,
	wire.Bind(new(logrus.FieldLogger), new(*logrus.Logger)),
)

var deckSet = wire.NewSet(
	NewRandomSource,
	NewDeck,
	NewCodec,
)

var shellSet = wire.NewSet(
	NewConsole,
	wire.Bind(new(cli.Console), new(*console.Console)),
	NewShell,
)

// Initialize builds the application container using Wire.
func Initialize(in io.Reader, out io.Writer) (*Container, error) {
	wire.Build(
		configSet,
		loggerSet,
		deckSet,
		shellSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}
