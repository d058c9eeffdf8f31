package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/flashcards/internal/entity"
	"github.com/eslsoft/flashcards/internal/usecase"
	"github.com/eslsoft/flashcards/internal/usecase/backup"
)

const menuPrompt = "Input the action (add, remove, import, export, ask, exit, log, hardest card, reset stats):"

// Console is the terminal the shell talks through.
type Console interface {
	usecase.LineSource
	usecase.LineSink
	SaveTranscript(w io.Writer) error
}

// Shell runs the interactive action menu against a deck.
type Shell struct {
	deck       *usecase.Deck
	console    Console
	codec      *backup.Service
	logger     logrus.FieldLogger
	importPath string
	exportPath string
}

type ShellOption func(*Shell)

// WithStartupImport loads a snapshot before the first prompt.
func WithStartupImport(path string) ShellOption {
	return func(s *Shell) { s.importPath = entity.NormalizePath(path) }
}

// WithExitExport saves the deck after the session ends.
func WithExitExport(path string) ShellOption {
	return func(s *Shell) { s.exportPath = entity.NormalizePath(path) }
}

// NewShell wires the shell collaborators.
func NewShell(deck *usecase.Deck, console Console, codec *backup.Service, logger logrus.FieldLogger, opts ...ShellOption) *Shell {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Shell{
		deck:    deck,
		console: console,
		codec:   codec,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run processes actions until exit or end of input. Only export failures are returned.
func (s *Shell) Run(ctx context.Context) error {
	if s.importPath != "" {
		s.importFrom(ctx, s.importPath)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.console.WriteLine(menuPrompt)
		line, ok := s.console.ReadLine()
		if !ok {
			return s.exit(ctx)
		}

		action := entity.NormalizeAction(line)
		s.logger.WithField("action", action).Debug("action received")

		var err error
		switch action {
		case "add":
			err = s.add()
		case "remove":
			err = s.remove()
		case "import":
			err = s.importAction(ctx)
		case "export":
			err = s.exportAction(ctx)
		case "ask":
			err = s.ask(ctx)
		case "log":
			err = s.saveLog()
		case "hardest card":
			s.hardest()
		case "reset stats":
			s.deck.ResetStats()
			s.console.WriteLine("Card statistics have been reset.")
		case "exit":
			return s.exit(ctx)
		default:
			s.console.WriteLine(fmt.Sprintf("Unknown action \"%s\".", strings.TrimSpace(line)))
		}

		if errors.Is(err, entity.ErrInputClosed) {
			return s.exit(ctx)
		}
		if err != nil {
			return err
		}
		s.console.WriteLine("")
	}
}

func (s *Shell) exit(ctx context.Context) error {
	s.console.WriteLine("Bye bye!")
	if s.exportPath == "" {
		return nil
	}
	return s.exportTo(ctx, s.exportPath)
}

func (s *Shell) add() error {
	s.console.WriteLine("The card:")
	term, err := s.readUnique(entity.FieldTerm, "The card \"%s\" already exists. Try again:")
	if err != nil {
		return err
	}
	s.console.WriteLine("The definition of the card:")
	definition, err := s.readUnique(entity.FieldDefinition, "The definition \"%s\" already exists. Try again:")
	if err != nil {
		return err
	}
	if err := s.deck.Add(term, definition); err != nil {
		return err
	}
	s.console.WriteLine(fmt.Sprintf("The pair (\"%s\":\"%s\") has been added.", term, definition))
	return nil
}

// readUnique reprompts until the entered value is not already used by a card.
func (s *Shell) readUnique(field entity.Field, retry string) (string, error) {
	for {
		value, ok := s.console.ReadLine()
		if !ok {
			return "", entity.ErrInputClosed
		}
		if _, taken := s.deck.Lookup(field, value); !taken {
			return value, nil
		}
		s.console.WriteLine(fmt.Sprintf(retry, value))
	}
}

func (s *Shell) remove() error {
	s.console.WriteLine("Which card?")
	term, ok := s.console.ReadLine()
	if !ok {
		return entity.ErrInputClosed
	}
	if s.deck.Remove(term) {
		s.console.WriteLine("The card has been removed.")
		return nil
	}
	s.console.WriteLine(fmt.Sprintf("Can't remove \"%s\": there is no such card.", term))
	return nil
}

func (s *Shell) readPath() (string, error) {
	s.console.WriteLine("File name:")
	path, ok := s.console.ReadLine()
	if !ok {
		return "", entity.ErrInputClosed
	}
	return entity.NormalizePath(path), nil
}

func (s *Shell) importAction(ctx context.Context) error {
	path, err := s.readPath()
	if err != nil {
		return err
	}
	s.importFrom(ctx, path)
	return nil
}

func (s *Shell) importFrom(ctx context.Context, path string) {
	n, err := ImportFile(ctx, s.deck, s.codec, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.console.WriteLine("File not found.")
	case err != nil:
		s.logger.WithError(err).WithField("path", path).Warn("import rejected")
		s.console.WriteLine(fmt.Sprintf("Can't import \"%s\": %s.", path, importReason(err)))
	default:
		s.logger.WithFields(logrus.Fields{"path": path, "count": n}).Info("deck imported")
		s.console.WriteLine(fmt.Sprintf("%d cards have been loaded.", n))
	}
}

func (s *Shell) exportAction(ctx context.Context) error {
	path, err := s.readPath()
	if err != nil {
		return err
	}
	return s.exportTo(ctx, path)
}

func (s *Shell) exportTo(ctx context.Context, path string) error {
	n, err := ExportFile(ctx, s.deck, s.codec, path)
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"path": path, "count": n}).Info("deck exported")
	s.console.WriteLine(fmt.Sprintf("%d cards have been saved.", n))
	return nil
}

func (s *Shell) ask(ctx context.Context) error {
	s.console.WriteLine("How many times to ask?")
	line, ok := s.console.ReadLine()
	if !ok {
		return entity.ErrInputClosed
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		s.console.WriteLine(fmt.Sprintf("\"%s\" is not a number.", line))
		return nil
	}

	session := usecase.NewQuizSession(s.deck, s.console, s.console, s.logger)
	err = session.Run(ctx, n)
	if errors.Is(err, entity.ErrEmptyDeck) {
		s.console.WriteLine("There are no cards to ask about.")
		return nil
	}
	return err
}

func (s *Shell) saveLog() error {
	path, err := s.readPath()
	if err != nil {
		return err
	}
	if err := writeTranscript(s.console, path); err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("save log")
		s.console.WriteLine(fmt.Sprintf("Can't save the log to \"%s\".", path))
		return nil
	}
	s.console.WriteLine("The log has been saved.")
	return nil
}

func writeTranscript(console Console, path string) (err error) {
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return console.SaveTranscript(file)
}

func (s *Shell) hardest() {
	cards := s.deck.HardestCards()
	switch len(cards) {
	case 0:
		s.console.WriteLine("There are no cards with errors.")
	case 1:
		s.console.WriteLine(fmt.Sprintf("The hardest card is \"%s\". You have %d errors answering it.", cards[0].Term, cards[0].Mistakes))
	default:
		terms := lo.Map(cards, func(c entity.Card, _ int) string { return "\"" + c.Term + "\"" })
		s.console.WriteLine(fmt.Sprintf("The hardest cards are %s. You have %d errors answering them.", strings.Join(terms, ", "), cards[0].Mistakes))
	}
}

func importReason(err error) string {
	return strings.TrimPrefix(err.Error(), entity.ErrImportFailure.Error()+": ")
}
