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
	"errors"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eslsoft/flashcards/internal/adapter/cli"
	"github.com/eslsoft/flashcards/internal/repository"
	"github.com/eslsoft/flashcards/internal/usecase"
)

const (
	listFromKey   = "list.from"
	listFilterKey = "list.filter"
	listOrderKey  = "list.order_by"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the cards of a saved deck",
	Example: `  flashcards list --from deck.jsonl
  flashcards list --from deck.toml --filter 'mistakes > 0' --order-by 'mistakes desc, term'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from := viper.GetString(listFromKey)
		if from == "" {
			return errors.New("a deck file is required, pass --from")
		}
		query := repository.FilterOrder{
			Filter:  viper.GetString(listFilterKey),
			OrderBy: viper.GetString(listOrderKey),
		}

		codec, _, err := newCodec()
		if err != nil {
			return err
		}
		deck := usecase.NewDeck()
		if _, err := cli.ImportFile(cmd.Context(), deck, codec, from); err != nil {
			return err
		}

		cards, err := query.Apply(deck.Cards())
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Term", "Definition", "Mistakes"})
		table.SetAutoWrapText(false)
		for _, card := range cards {
			table.Append([]string{card.Term, card.Definition, strconv.Itoa(card.Mistakes)})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringP("from", "f", "", "deck file to read (.jsonl, .toml, optionally .gz)")
	listCmd.Flags().String("filter", "", "CEL expression over term, definition and mistakes")
	listCmd.Flags().String("order-by", "", "sort keys, e.g. \"mistakes desc, term\"")

	bindFlagToViper(listFromKey, listCmd.Flags().Lookup("from"))
	bindFlagToViper(listFilterKey, listCmd.Flags().Lookup("filter"))
	bindFlagToViper(listOrderKey, listCmd.Flags().Lookup("order-by"))
}
