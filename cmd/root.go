/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/flashcards/internal/app"
)

const (
	deckImportKey = "deck.import"
	deckExportKey = "deck.export"
	quizSeedKey   = "quiz.seed"
	logLevelKey   = "log.level"
	logFormatKey  = "log.format"
)

var cfgFile string

// rootCmd runs the interactive flashcard shell
var rootCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Study term/definition flashcards in the terminal",
	Long: `flashcards keeps a deck of term/definition cards, quizzes you on random cards
and remembers how often each one was answered wrong.

Use --import to load a deck before the first prompt and --export to save it on exit.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := app.Initialize(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("initialize: %w", err)
		}
		return container.Shell.Run(cmd.Context())
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./flashcards.toml, yaml or json, also under ./config)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text or json)")

	rootCmd.Flags().String("import", "", "deck file loaded before the first prompt")
	rootCmd.Flags().String("export", "", "deck file written after exit")
	rootCmd.Flags().Uint64("seed", 0, "random seed for the quiz order (0 uses the clock)")

	bindRootConfig()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func bindRootConfig() {
	bindFlagToViper(logLevelKey, rootCmd.PersistentFlags().Lookup("log-level"))
	bindFlagToViper(logFormatKey, rootCmd.PersistentFlags().Lookup("log-format"))
	bindFlagToViper(deckImportKey, rootCmd.Flags().Lookup("import"))
	bindFlagToViper(deckExportKey, rootCmd.Flags().Lookup("export"))
	bindFlagToViper(quizSeedKey, rootCmd.Flags().Lookup("seed"))
}
