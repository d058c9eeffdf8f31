package backup

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/flashcards/internal/entity"
)

const (
	formatVersion = 1
	cardRecord    = "card"
	metaRecord    = "meta"
)

var errMissingMeta = errors.New("backup: missing meta record")

// Service encodes and decodes whole deck snapshots in a single format.
type Service struct {
	format   Format
	logger   logrus.FieldLogger
	clock    func() time.Time
	validate *validator.Validate
}

type Option func(*Service)

// WithFormat selects the wire format. NDJSON is the default.
func WithFormat(format Format) Option {
	return func(s *Service) {
		if format != "" {
			s.format = format
		}
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time stamped into the meta record.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs a snapshot codec.
func NewService(opts ...Option) *Service {
	svc := &Service{
		format:   FormatNDJSON,
		logger:   logrus.StandardLogger(),
		clock:    time.Now,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ForFormat returns a copy of the service bound to another format.
func (s *Service) ForFormat(format Format) *Service {
	clone := *s
	if format != "" {
		clone.format = format
	}
	return &clone
}

type record struct {
	Type       string         `json:"type"`
	Version    int            `json:"version,omitempty"`
	ExportedAt *time.Time     `json:"exported_at,omitempty"`
	RowCounts  map[string]int `json:"row_counts,omitempty"`
	Payload    any            `json:"payload,omitempty"`
}

type rawRecord struct {
	Type       string          `json:"type"`
	Version    int             `json:"version"`
	ExportedAt *time.Time      `json:"exported_at"`
	RowCounts  map[string]int  `json:"row_counts"`
	Payload    json.RawMessage `json:"payload"`
}

// Encode writes cards in order.
// Cards with invalid UTF-8 are refused before anything is written.
func (s *Service) Encode(ctx context.Context, w io.Writer, cards []entity.Card) error {
	for _, card := range cards {
		if !utf8.ValidString(card.Term) || !utf8.ValidString(card.Definition) {
			return fmt.Errorf("backup: %w: card %q", entity.ErrInvalidText, card.Term)
		}
	}

	var err error
	switch s.format {
	case FormatNDJSON:
		err = s.encodeNDJSON(ctx, w, cards)
	case FormatTOML:
		err = s.encodeTOML(w, cards)
	default:
		err = fmt.Errorf("backup: unsupported format %q", s.format)
	}
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"format": s.format, "count": len(cards)}).Debug("snapshot encoded")
	return nil
}

// Decode reads a complete snapshot. Nothing is returned unless the whole stream is valid.
func (s *Service) Decode(ctx context.Context, r io.Reader) ([]entity.Card, error) {
	var (
		cards []entity.Card
		err   error
	)
	switch s.format {
	case FormatNDJSON:
		cards, err = s.decodeNDJSON(ctx, r)
	case FormatTOML:
		cards, err = s.decodeTOML(r)
	default:
		err = fmt.Errorf("backup: unsupported format %q", s.format)
	}
	if err != nil {
		return nil, err
	}
	for i := range cards {
		if err := s.validate.Struct(cards[i]); err != nil {
			return nil, fmt.Errorf("backup: invalid card %q: %w", cards[i].Term, err)
		}
	}
	s.logger.WithFields(logrus.Fields{"format": s.format, "count": len(cards)}).Debug("snapshot decoded")
	return cards, nil
}

func (s *Service) encodeNDJSON(ctx context.Context, w io.Writer, cards []entity.Card) error {
	writer := bufio.NewWriter(w)

	now := s.clock().UTC()
	meta := record{
		Type:       metaRecord,
		Version:    formatVersion,
		ExportedAt: &now,
		RowCounts:  map[string]int{cardRecord: len(cards)},
	}
	if err := writeRecord(writer, meta); err != nil {
		return err
	}
	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeRecord(writer, record{Type: cardRecord, Payload: card}); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func (s *Service) decodeNDJSON(ctx context.Context, r io.Reader) ([]entity.Card, error) {
	br := bufio.NewReader(r)
	var (
		metaSeen bool
		meta     rawRecord
		cards    []entity.Card
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := br.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read backup: %w", err)
		}
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			var rec rawRecord
			if err := json.Unmarshal(line, &rec); err != nil {
				return nil, fmt.Errorf("decode record: %w", err)
			}

			switch rec.Type {
			case metaRecord:
				metaSeen = true
				meta = rec
			case cardRecord:
				if len(rec.Payload) == 0 {
					return nil, errors.New("backup: missing payload for card")
				}
				var card entity.Card
				if err := json.Unmarshal(rec.Payload, &card); err != nil {
					return nil, fmt.Errorf("decode card payload: %w", err)
				}
				cards = append(cards, card)
			default:
				// Records from newer writers are ignored.
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
	}

	if !metaSeen {
		return nil, errMissingMeta
	}
	if meta.Version != formatVersion {
		return nil, fmt.Errorf("backup: unsupported format version %d", meta.Version)
	}
	want, ok := meta.RowCounts[cardRecord]
	if !ok {
		return nil, errors.New("backup: meta record has no card count")
	}
	if want != len(cards) {
		return nil, fmt.Errorf("backup: expected %d cards, read %d", want, len(cards))
	}
	return cards, nil
}

func writeRecord(w io.Writer, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return err
	}
	return nil
}
