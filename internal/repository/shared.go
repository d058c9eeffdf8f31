package repository

import (
	"github.com/eslsoft/flashcards/internal/entity"
	"github.com/eslsoft/flashcards/pkg/filterexpr"
)

// FilterOrder holds the filter and order_by clauses used when listing cards.
type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }

// Apply compiles both clauses and returns the matching cards in the requested
// order. The input slice is not modified.
func (fo *FilterOrder) Apply(cards []entity.Card) ([]entity.Card, error) {
	filter, err := filterexpr.Compile(fo.GetFilter())
	if err != nil {
		return nil, err
	}
	order, err := filterexpr.ParseOrderBy(fo.GetOrderBy())
	if err != nil {
		return nil, err
	}
	selected, err := filter.Select(cards)
	if err != nil {
		return nil, err
	}
	order.Apply(selected)
	return selected, nil
}
