package backup

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/eslsoft/flashcards/internal/entity"
)

type tomlDocument struct {
	Version    int           `toml:"version"`
	ExportedAt time.Time     `toml:"exported_at"`
	Count      int           `toml:"count"`
	Cards      []entity.Card `toml:"cards"`
}

func (s *Service) encodeTOML(w io.Writer, cards []entity.Card) error {
	doc := tomlDocument{
		Version:    formatVersion,
		ExportedAt: s.clock().UTC().Truncate(time.Second),
		Count:      len(cards),
		Cards:      cards,
	}
	if doc.Cards == nil {
		doc.Cards = []entity.Card{}
	}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

func (s *Service) decodeTOML(r io.Reader) ([]entity.Card, error) {
	var doc tomlDocument
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode toml: %w", err)
	}
	if doc.Version == 0 {
		return nil, errors.New("backup: missing version")
	}
	if doc.Version != formatVersion {
		return nil, fmt.Errorf("backup: unsupported format version %d", doc.Version)
	}
	if doc.Count != len(doc.Cards) {
		return nil, fmt.Errorf("backup: expected %d cards, read %d", doc.Count, len(doc.Cards))
	}
	return doc.Cards, nil
}
