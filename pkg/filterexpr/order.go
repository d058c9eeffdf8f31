package filterexpr

import (
	"cmp"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/eslsoft/flashcards/internal/entity"
)

// Order is a parsed order_by clause with at most two keys.
type Order struct {
	PrimaryKey    string
	PrimaryDesc   bool
	SecondaryKey  string
	SecondaryDesc bool
}

var orderKeys = map[string]func(a, b entity.Card) int{
	"term":       func(a, b entity.Card) int { return strings.Compare(a.Term, b.Term) },
	"definition": func(a, b entity.Card) int { return strings.Compare(a.Definition, b.Definition) },
	"mistakes":   func(a, b entity.Card) int { return cmp.Compare(a.Mistakes, b.Mistakes) },
}

// ParseOrderBy parses clauses such as "mistakes desc, term". An empty clause
// keeps deck order.
func ParseOrderBy(raw string) (Order, error) { //nolint:gocognit // parsing DSL entails validation branches for readability
	var ord Order

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ord, nil
	}

	segments := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(segments))
	idx := 0
	for _, seg := range segments {
		parts := strings.Fields(seg)
		if len(parts) == 0 {
			continue
		}
		key := strings.ToLower(parts[0])
		if _, ok := orderKeys[key]; !ok {
			return Order{}, fmt.Errorf("field %q cannot be used for ordering", parts[0])
		}

		var desc bool
		switch len(parts) {
		case 1:
		case 2:
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				desc = true
			default:
				return Order{}, fmt.Errorf("invalid direction %q for field %q", parts[1], key)
			}
		default:
			return Order{}, fmt.Errorf("invalid order segment %q", strings.TrimSpace(seg))
		}

		if _, dup := seen[key]; dup {
			return Order{}, fmt.Errorf("duplicate order key %q", key)
		}
		seen[key] = struct{}{}

		switch idx {
		case 0:
			ord.PrimaryKey = key
			ord.PrimaryDesc = desc
		case 1:
			ord.SecondaryKey = key
			ord.SecondaryDesc = desc
		default:
			return Order{}, errors.New("order_by supports at most two keys")
		}
		idx++
	}
	return ord, nil
}

// Apply sorts cards in place. Ties keep their incoming order.
func (o Order) Apply(cards []entity.Card) {
	if o.PrimaryKey == "" {
		return
	}
	sort.SliceStable(cards, func(i, j int) bool {
		if c := compareBy(o.PrimaryKey, o.PrimaryDesc, cards[i], cards[j]); c != 0 {
			return c < 0
		}
		if o.SecondaryKey == "" {
			return false
		}
		return compareBy(o.SecondaryKey, o.SecondaryDesc, cards[i], cards[j]) < 0
	})
}

func compareBy(key string, desc bool, a, b entity.Card) int {
	c := orderKeys[key](a, b)
	if desc {
		return -c
	}
	return c
}
