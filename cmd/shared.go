package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eslsoft/flashcards/internal/infrastructure/config"
	"github.com/eslsoft/flashcards/internal/infrastructure/logger"
	"github.com/eslsoft/flashcards/internal/usecase/backup"
)

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// newCodec loads config and builds a logged snapshot codec for the batch subcommands.
func newCodec() (*backup.Service, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return backup.NewService(backup.WithLogger(log)), log, nil
}
