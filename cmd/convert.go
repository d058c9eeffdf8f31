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
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/flashcards/internal/adapter/cli"
	"github.com/eslsoft/flashcards/internal/usecase"
)

const (
	convertInputKey  = "convert.input"
	convertOutputKey = "convert.output"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Re-encode a deck file, format chosen by extension",
	Example: `  flashcards convert -i deck.jsonl -o deck.toml
  flashcards convert -i deck.toml -o backup/deck.jsonl.gz`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inputPath := viper.GetString(convertInputKey)
		outputPath := viper.GetString(convertOutputKey)
		if inputPath == "" || outputPath == "" {
			return fmt.Errorf("both --input and --output are required")
		}
		if inputPath == outputPath {
			return fmt.Errorf("input and output must differ")
		}

		codec, log, err := newCodec()
		if err != nil {
			return err
		}

		deck := usecase.NewDeck()
		if _, err := cli.ImportFile(ctx, deck, codec, inputPath); err != nil {
			return err
		}
		written, err := cli.ExportFile(ctx, deck, codec, outputPath)
		if err != nil {
			return fmt.Errorf("write %s: %w", outputPath, err)
		}

		log.WithFields(logrus.Fields{"input": inputPath, "output": outputPath, "count": written}).Info("deck converted")
		fmt.Fprintf(cmd.OutOrStdout(), "Converted %d cards: %s -> %s\n", written, inputPath, outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("input", "i", "", "deck file to read")
	convertCmd.Flags().StringP("output", "o", "", "deck file to write")

	bindFlagToViper(convertInputKey, convertCmd.Flags().Lookup("input"))
	bindFlagToViper(convertOutputKey, convertCmd.Flags().Lookup("output"))
}
