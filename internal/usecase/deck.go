package usecase

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/samber/lo"

	"github.com/eslsoft/flashcards/internal/entity"
)

// Deck owns the cards of one study session and keeps terms and definitions unique.
// It is not safe for concurrent use.
type Deck struct {
	order        []string
	byTerm       map[string]*entity.Card
	byDefinition map[string]string
	rng          RandomSource
}

// DeckOption customises a Deck.
type DeckOption func(*Deck)

// WithRandom injects the source used by RandomCard.
func WithRandom(src RandomSource) DeckOption {
	return func(d *Deck) {
		if src != nil {
			d.rng = src
		}
	}
}

// NewDeck returns an empty deck.
func NewDeck(opts ...DeckOption) *Deck {
	d := &Deck{
		byTerm:       make(map[string]*entity.Card),
		byDefinition: make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = NewRandomSource(0)
	}
	return d
}

// NewRandomSource returns a PCG generator. A zero seed is replaced by the current time.
func NewRandomSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Len returns the number of cards.
func (d *Deck) Len() int { return len(d.order) }

// Cards returns a copy of every card in deck order.
func (d *Deck) Cards() []entity.Card {
	return lo.Map(d.order, func(term string, _ int) entity.Card { return *d.byTerm[term] })
}

// Add inserts a new card with zero mistakes.
func (d *Deck) Add(term, definition string) error {
	if err := checkText(term, definition); err != nil {
		return err
	}
	if _, ok := d.byTerm[term]; ok {
		return fmt.Errorf("%w: %q", entity.ErrDuplicateTerm, term)
	}
	if _, ok := d.byDefinition[definition]; ok {
		return fmt.Errorf("%w: %q", entity.ErrDuplicateDefinition, definition)
	}
	d.insert(entity.Card{Term: term, Definition: definition})
	return nil
}

// Remove deletes the card with the given term and reports whether it existed.
func (d *Deck) Remove(term string) bool {
	card, ok := d.byTerm[term]
	if !ok {
		return false
	}
	delete(d.byDefinition, card.Definition)
	delete(d.byTerm, term)
	if idx := lo.IndexOf(d.order, term); idx >= 0 {
		d.order = append(d.order[:idx], d.order[idx+1:]...)
	}
	return true
}

type lookupConfig struct {
	excludeTerm *string
}

// LookupOption narrows a Lookup.
type LookupOption func(*lookupConfig)

// ExcludeTerm skips the card with the given term, so a card can be checked
// against every other card without matching itself.
func ExcludeTerm(term string) LookupOption {
	return func(cfg *lookupConfig) {
		cfg.excludeTerm = &term
	}
}

// Lookup finds the card whose field equals value.
func (d *Deck) Lookup(field entity.Field, value string, opts ...LookupOption) (entity.Card, bool) {
	cfg := lookupConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	term := value
	if field == entity.FieldDefinition {
		owner, ok := d.byDefinition[value]
		if !ok {
			return entity.Card{}, false
		}
		term = owner
	}
	card, ok := d.byTerm[term]
	if !ok {
		return entity.Card{}, false
	}
	if cfg.excludeTerm != nil && *cfg.excludeTerm == card.Term {
		return entity.Card{}, false
	}
	return *card, true
}

// RecordAttempt classifies a submitted definition for term and counts a mistake when it is wrong.
func (d *Deck) RecordAttempt(term, submitted string) (entity.Outcome, error) {
	card, ok := d.byTerm[term]
	if !ok {
		return entity.Outcome{}, fmt.Errorf("%w: %q", entity.ErrCardNotFound, term)
	}

	outcome := entity.Outcome{Kind: entity.OutcomeCorrect, Expected: card.Definition}
	if submitted == card.Definition {
		return outcome, nil
	}

	card.Mistakes++
	outcome.Kind = entity.OutcomeWrong
	if other, ok := d.Lookup(entity.FieldDefinition, submitted, ExcludeTerm(term)); ok {
		outcome.Kind = entity.OutcomeWrongMatchesOther
		outcome.OtherTerm = other.Term
	}
	return outcome, nil
}

// RandomCard picks a card uniformly at random.
func (d *Deck) RandomCard() (entity.Card, error) {
	if len(d.order) == 0 {
		return entity.Card{}, entity.ErrEmptyDeck
	}
	return *d.byTerm[d.order[d.rng.IntN(len(d.order))]], nil
}

// HardestCards returns the cards tied for the highest mistake count. A deck
// where nobody has made a mistake has no hardest cards.
func (d *Deck) HardestCards() []entity.Card {
	cards := d.Cards()
	top := lo.Max(lo.Map(cards, func(c entity.Card, _ int) int { return c.Mistakes }))
	if top <= 0 {
		return nil
	}
	return lo.Filter(cards, func(c entity.Card, _ int) bool { return c.Mistakes == top })
}

// ResetStats zeroes every mistake counter.
func (d *Deck) ResetStats() {
	for _, card := range d.byTerm {
		card.Mistakes = 0
	}
}

// Export writes a snapshot of the deck and returns the number of cards written.
func (d *Deck) Export(ctx context.Context, w io.Writer, codec SnapshotCodec) (int, error) {
	cards := d.Cards()
	if err := codec.Encode(ctx, w, cards); err != nil {
		return 0, fmt.Errorf("export deck: %w", err)
	}
	return len(cards), nil
}

// Import decodes a full snapshot and merges it into the deck, imported cards
// replacing live cards with the same term. It returns the number of records
// read. On any failure the deck is left untouched.
func (d *Deck) Import(ctx context.Context, r io.Reader, codec SnapshotCodec) (int, error) {
	cards, err := codec.Decode(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", entity.ErrImportFailure, err)
	}
	if err := d.checkMerge(cards); err != nil {
		return 0, fmt.Errorf("%w: %w", entity.ErrImportFailure, err)
	}
	for _, card := range cards {
		if existing, ok := d.byTerm[card.Term]; ok {
			if d.byDefinition[existing.Definition] == existing.Term {
				delete(d.byDefinition, existing.Definition)
			}
			*existing = card
			d.byDefinition[card.Definition] = card.Term
			continue
		}
		d.insert(card)
	}
	return len(cards), nil
}

// checkMerge rejects a batch that repeats a term or definition, or whose
// definitions would collide with live cards the batch does not overwrite.
func (d *Deck) checkMerge(cards []entity.Card) error {
	terms := make(map[string]struct{}, len(cards))
	definitions := make(map[string]struct{}, len(cards))
	for _, card := range cards {
		if err := checkText(card.Term, card.Definition); err != nil {
			return err
		}
		if card.Mistakes < 0 {
			return fmt.Errorf("negative mistakes for %q", card.Term)
		}
		if _, ok := terms[card.Term]; ok {
			return fmt.Errorf("%w: %q appears twice", entity.ErrDuplicateTerm, card.Term)
		}
		terms[card.Term] = struct{}{}
		if _, ok := definitions[card.Definition]; ok {
			return fmt.Errorf("%w: %q appears twice", entity.ErrDuplicateDefinition, card.Definition)
		}
		definitions[card.Definition] = struct{}{}
	}

	for _, card := range cards {
		owner, ok := d.byDefinition[card.Definition]
		if !ok || owner == card.Term {
			continue
		}
		if _, replaced := terms[owner]; replaced {
			continue
		}
		return fmt.Errorf("%w: %q is already the definition of %q", entity.ErrDuplicateDefinition, card.Definition, owner)
	}
	return nil
}

// checkText rejects strings that the snapshot formats cannot carry unchanged.
func checkText(values ...string) error {
	for _, v := range values {
		if !utf8.ValidString(v) {
			return fmt.Errorf("%w: %q", entity.ErrInvalidText, v)
		}
	}
	return nil
}

func (d *Deck) insert(card entity.Card) {
	c := card
	d.byTerm[c.Term] = &c
	d.byDefinition[c.Definition] = c.Term
	d.order = append(d.order, c.Term)
}
