package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/flashcards/internal/entity"
	"github.com/eslsoft/flashcards/internal/infrastructure/console"
	"github.com/eslsoft/flashcards/internal/usecase"
	"github.com/eslsoft/flashcards/internal/usecase/backup"
)

// firstCard always draws the first card so quiz transcripts are predictable.
type firstCard struct{}

func (firstCard) IntN(int) int { return 0 }

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newDeck(t *testing.T, pairs ...string) *usecase.Deck {
	t.Helper()
	deck := usecase.NewDeck(usecase.WithRandom(firstCard{}))
	for i := 0; i+1 < len(pairs); i += 2 {
		require.NoError(t, deck.Add(pairs[i], pairs[i+1]))
	}
	return deck
}

func runShell(t *testing.T, deck *usecase.Deck, input string, opts ...ShellOption) ([]string, error) {
	t.Helper()
	var out bytes.Buffer
	logger := quietLogger()
	term := console.New(strings.NewReader(input), &out, logger)
	codec := backup.NewService(backup.WithLogger(logger))

	err := NewShell(deck, term, codec, logger, opts...).Run(context.Background())
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n"), err
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestShellAddWithRetries(t *testing.T) {
	deck := newDeck(t)
	out, err := runShell(t, deck, script(
		"add", "capital", "Paris",
		"add", "capital", "city", "Paris", "Rome",
		"exit",
	))
	require.NoError(t, err)

	assert.Equal(t, []string{
		menuPrompt,
		"The card:",
		"The definition of the card:",
		`The pair ("capital":"Paris") has been added.`,
		"",
		menuPrompt,
		"The card:",
		`The card "capital" already exists. Try again:`,
		"The definition of the card:",
		`The definition "Paris" already exists. Try again:`,
		`The pair ("city":"Rome") has been added.`,
		"",
		menuPrompt,
		"Bye bye!",
	}, out)
	assert.Equal(t, []entity.Card{
		{Term: "capital", Definition: "Paris"},
		{Term: "city", Definition: "Rome"},
	}, deck.Cards())
}

func TestShellRemove(t *testing.T) {
	deck := newDeck(t, "capital", "Paris")
	out, err := runShell(t, deck, script("remove", "capital", "remove", "capital", "exit"))
	require.NoError(t, err)

	assert.Contains(t, out, "The card has been removed.")
	assert.Contains(t, out, `Can't remove "capital": there is no such card.`)
	assert.Zero(t, deck.Len())
}

func TestShellAsk(t *testing.T) {
	deck := newDeck(t, "capital", "Paris", "largest ocean", "Pacific")
	out, err := runShell(t, deck, script("ask", "3", "Paris", "Rome", "Pacific", "exit"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		menuPrompt,
		"How many times to ask?",
		`Print the definition of "capital":`,
		"Correct!",
		`Print the definition of "capital":`,
		`Wrong. The right answer is "Paris".`,
		`Print the definition of "capital":`,
		`Wrong. The right answer is "Paris", but your definition is correct for "largest ocean".`,
		"",
		menuPrompt,
		"Bye bye!",
	}, out)

	card, _ := deck.Lookup(entity.FieldTerm, "capital")
	assert.Equal(t, 2, card.Mistakes)
}

func TestShellAskRejectsBadInput(t *testing.T) {
	out, err := runShell(t, newDeck(t), script("ask", "2", "ask", "two", "exit"))
	require.NoError(t, err)
	assert.Contains(t, out, "There are no cards to ask about.")
	assert.Contains(t, out, `"two" is not a number.`)
}

func TestShellHardestCard(t *testing.T) {
	tests := []struct {
		name     string
		mistakes map[string]int
		want     string
	}{
		{name: "none", want: "There are no cards with errors."},
		{name: "single", mistakes: map[string]int{"a": 2, "b": 1}, want: `The hardest card is "a". You have 2 errors answering it.`},
		{name: "tie", mistakes: map[string]int{"a": 3, "b": 3, "c": 1}, want: `The hardest cards are "a", "b". You have 3 errors answering them.`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := newDeck(t, "a", "1", "b", "2", "c", "3")
			for term, n := range tt.mistakes {
				for i := 0; i < n; i++ {
					_, err := deck.RecordAttempt(term, "nope")
					require.NoError(t, err)
				}
			}
			out, err := runShell(t, deck, script("Hardest  Card", "exit"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, out[1])
		})
	}
}

func TestShellResetStats(t *testing.T) {
	deck := newDeck(t, "a", "1")
	_, err := deck.RecordAttempt("a", "nope")
	require.NoError(t, err)

	out, err := runShell(t, deck, script("reset stats", "hardest card", "exit"))
	require.NoError(t, err)
	assert.Contains(t, out, "Card statistics have been reset.")
	assert.Contains(t, out, "There are no cards with errors.")
}

func TestShellUnknownAction(t *testing.T) {
	out, err := runShell(t, newDeck(t), script("fly", "exit"))
	require.NoError(t, err)
	assert.Equal(t, []string{menuPrompt, `Unknown action "fly".`, "", menuPrompt, "Bye bye!"}, out)
}

func TestShellEndOfInputActsAsExit(t *testing.T) {
	out, err := runShell(t, newDeck(t), "")
	require.NoError(t, err)
	assert.Equal(t, []string{menuPrompt, "Bye bye!"}, out)

	deck := newDeck(t)
	out, err = runShell(t, deck, "add\ncapital\n")
	require.NoError(t, err)
	assert.Equal(t, "Bye bye!", out[len(out)-1])
	assert.Zero(t, deck.Len(), "half entered card is dropped")
}

func TestShellExportThenImport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"deck.jsonl", "deck.toml", "deck.jsonl.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			src := newDeck(t, "capital", "Paris", "largest ocean", "Pacific")
			_, err := src.RecordAttempt("capital", "Rome")
			require.NoError(t, err)

			out, err := runShell(t, src, script("export", path, "exit"))
			require.NoError(t, err)
			assert.Contains(t, out, "2 cards have been saved.")

			dst := newDeck(t, "capital", "Old")
			out, err = runShell(t, dst, script("import", path, "exit"))
			require.NoError(t, err)
			assert.Contains(t, out, "2 cards have been loaded.")
			assert.Equal(t, src.Cards(), dst.Cards())
		})
	}
}

func TestShellNonUTF8InputSurvivesExport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"deck.jsonl", "deck.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			src := newDeck(t)
			out, err := runShell(t, src, script(
				"add", "caf\xe9", "coffee",
				"add", "caf\xe8", "cafe", "tea",
				"export", path,
				"exit",
			))
			require.NoError(t, err)
			assert.Contains(t, out, "The card \"caf\uFFFD\" already exists. Try again:")
			assert.Contains(t, out, "2 cards have been saved.")

			dst := newDeck(t)
			n, err := ImportFile(context.Background(), dst, backup.NewService(backup.WithLogger(quietLogger())), path)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Equal(t, src.Cards(), dst.Cards())
		})
	}
}

func TestShellImportFailures(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.jsonl")

	conflicting := filepath.Join(dir, "conflict.jsonl")
	require.NoError(t, os.WriteFile(conflicting, []byte(script(
		`{"type":"meta","version":1,"row_counts":{"card":2}}`,
		`{"type":"card","payload":{"term":"x","definition":"10","mistakes":0}}`,
		`{"type":"card","payload":{"term":"x","definition":"11","mistakes":0}}`,
	)), 0o600))

	deck := newDeck(t, "a", "1")
	out, err := runShell(t, deck, script("import", missing, "import", conflicting, "exit"))
	require.NoError(t, err)

	assert.Contains(t, out, "File not found.")
	assert.Contains(t, out, `Can't import "`+conflicting+`": term already exists: "x" appears twice.`)
	assert.Equal(t, []entity.Card{{Term: "a", Definition: "1"}}, deck.Cards())
}

func TestShellStartupImportAndExitExport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.toml")
	outPath := filepath.Join(dir, "out", "deck.jsonl")

	seed := newDeck(t, "a", "1", "b", "2", "c", "3")
	_, err := ExportFile(context.Background(), seed, backup.NewService(backup.WithLogger(quietLogger())), in)
	require.NoError(t, err)

	deck := newDeck(t)
	out, err := runShell(t, deck, script("remove", "b", "exit"), WithStartupImport(" "+in+" "), WithExitExport(outPath))
	require.NoError(t, err)

	assert.Equal(t, "3 cards have been loaded.", out[0])
	assert.Equal(t, menuPrompt, out[1])
	assert.Equal(t, []string{"Bye bye!", "2 cards have been saved."}, out[len(out)-2:])

	check := newDeck(t)
	n, err := ImportFile(context.Background(), check, backup.NewService(backup.WithLogger(quietLogger())), outPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []entity.Card{{Term: "a", Definition: "1"}, {Term: "c", Definition: "3"}}, check.Cards())
}

func TestShellStartupImportMissingFile(t *testing.T) {
	out, err := runShell(t, newDeck(t), "", WithStartupImport(filepath.Join(t.TempDir(), "nope.jsonl")))
	require.NoError(t, err)
	assert.Equal(t, []string{"File not found.", menuPrompt, "Bye bye!"}, out)
}

func TestShellExportFailureIsReturned(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	_, err := runShell(t, newDeck(t, "a", "1"), script("export", filepath.Join(blocker, "deck.jsonl")))
	assert.Error(t, err)
}

func TestShellSaveLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	out, err := runShell(t, newDeck(t), script("fly", "log", path, "exit"))
	require.NoError(t, err)
	assert.Contains(t, out, "The log has been saved.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, script(
		menuPrompt,
		"fly",
		`Unknown action "fly".`,
		"",
		menuPrompt,
		"log",
		"File name:",
		path,
	), string(data))
}

func TestShellSaveLogFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "session.log")
	out, err := runShell(t, newDeck(t), script("log", path, "exit"))
	require.NoError(t, err)
	assert.Contains(t, out, `Can't save the log to "`+path+`".`)
}
