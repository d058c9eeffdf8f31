package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/flashcards/internal/entity"
)

func TestFilterOrderApply(t *testing.T) {
	cards := []entity.Card{
		{Term: "b", Definition: "2", Mistakes: 1},
		{Term: "a", Definition: "1", Mistakes: 4},
		{Term: "c", Definition: "3"},
	}
	original := append([]entity.Card(nil), cards...)

	fo := &FilterOrder{Filter: "mistakes > 0", OrderBy: "term"}
	got, err := fo.Apply(cards)
	require.NoError(t, err)
	assert.Equal(t, []entity.Card{cards[1], cards[0]}, got)
	assert.Equal(t, original, cards)

	all, err := (&FilterOrder{}).Apply(cards)
	require.NoError(t, err)
	assert.Equal(t, cards, all)
}

func TestFilterOrderApplyErrors(t *testing.T) {
	_, err := (&FilterOrder{Filter: "mistakes"}).Apply(nil)
	assert.Error(t, err)

	_, err = (&FilterOrder{OrderBy: "weight"}).Apply(nil)
	assert.Error(t, err)
}
