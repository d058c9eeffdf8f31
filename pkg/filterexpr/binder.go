package filterexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/eslsoft/flashcards/internal/entity"
)

// Filter is a compiled CEL predicate over the fields of a card.
// The variables term, definition (strings) and mistakes (int) are in scope.
type Filter struct {
	source  string
	program cel.Program
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("term", cel.StringType),
		cel.Variable("definition", cel.StringType),
		cel.Variable("mistakes", cel.IntType),
		cel.CrossTypeNumericComparisons(true),
	)
}

// Compile parses and type checks expr. An empty expression matches every card.
func Compile(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return &Filter{}, nil
	}

	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("build filter env: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("filter must evaluate to bool, got %s", ast.OutputType())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build filter program: %w", err)
	}
	return &Filter{source: expr, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.source }

// Match evaluates the filter for one card.
func (f *Filter) Match(card entity.Card) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}
	out, _, err := f.program.Eval(map[string]any{
		"term":       card.Term,
		"definition": card.Definition,
		"mistakes":   int64(card.Mistakes),
	})
	if err != nil {
		return false, fmt.Errorf("evaluate filter: %w", err)
	}
	matched, ok := out.Value().(bool)
	if !ok {
		return false, errors.New("filter did not produce a bool")
	}
	return matched, nil
}

// Select keeps the cards the filter matches, preserving order.
func (f *Filter) Select(cards []entity.Card) ([]entity.Card, error) {
	result := make([]entity.Card, 0, len(cards))
	for _, card := range cards {
		ok, err := f.Match(card)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, card)
		}
	}
	return result, nil
}
