/*
Package solver finds every dictionary word that can be spelled from a set of
letters.

A Solver pairs an index with the letter bounds its callers enforce:

	ix, _ := dictionary.Load("sorted_uniques.json", dictionary.FormatUnknown)
	s := solver.New(ix)
	words := s.Solve("leapt")                // ale, alp, ape, ...
	groups := solver.GroupByLength(words)    // 3: [...], 4: [...], 5: [...]

Solve never fails and never checks its input. Query is the checked entry
point for letters that come from users.
*/
package solver

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/dictionary"
	"github.com/bastiangx/wordsolve/pkg/letters"
)

// ErrInvalidInput is returned by Query for letters it refuses to solve.
var ErrInvalidInput = errors.New("invalid input")

// Default letter bounds for Query.
const (
	DefaultMinLetters = 4
	DefaultMaxLetters = letters.MaxSignature
)

// Lookuper is the read side of an index.
type Lookuper interface {
	Lookup(key string) []dictionary.Entry
}

// Matches is the ordered list of words found for one input.
type Matches []string

// Solver answers letter queries against a single index.
// It holds no per-query state and is safe for concurrent use.
type Solver struct {
	index      Lookuper
	minLetters int
	maxLetters int
}

// Option configures a Solver.
type Option func(*Solver)

// WithMinLetters sets the shortest input Query will solve.
func WithMinLetters(n int) Option {
	return func(s *Solver) { s.minLetters = n }
}

// WithMaxLetters sets the longest input Query accepts.
func WithMaxLetters(n int) Option {
	return func(s *Solver) { s.maxLetters = n }
}

// New creates a Solver over index.
func New(index Lookuper, opts ...Option) *Solver {
	s := &Solver{
		index:      index,
		minLetters: DefaultMinLetters,
		maxLetters: DefaultMaxLetters,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MinLetters returns the configured minimum input length.
func (s *Solver) MinLetters() int { return s.minLetters }

// MaxLetters returns the configured maximum input length.
func (s *Solver) MaxLetters() int { return s.maxLetters }

// Solve returns every indexed word buildable from a subset of input.
// Words come out in combination order, then bucket order.
//
// Inputs outside [4, 7] letters are not rejected: fewer letters simply find
// less, and combinations of more than 7 distinct letters stop at length 7.
func (s *Solver) Solve(input string) Matches {
	signature, sorted := letters.Normalize(input)
	var out Matches
	for key := range letters.All(signature) {
		for _, e := range s.index.Lookup(key) {
			if letters.Contains(sorted, e.Sorted) {
				out = append(out, e.Word)
			}
		}
	}
	return out
}

// Query validates input before solving it.
// Input longer than the maximum fails with ErrInvalidInput. Input shorter than
// the minimum yields no matches and no error. Anything else must be letters
// only, or it also fails with ErrInvalidInput.
func (s *Solver) Query(input string) (Matches, error) {
	n := utf8.RuneCountInString(input)
	if n > s.maxLetters {
		return nil, fmt.Errorf("%w: %d letters, at most %d allowed", ErrInvalidInput, n, s.maxLetters)
	}
	if n < s.minLetters {
		return nil, nil
	}
	if !utils.IsLettersOnly(input) {
		return nil, fmt.Errorf("%w: %q contains non-letters", ErrInvalidInput, input)
	}
	return s.Solve(input), nil
}
