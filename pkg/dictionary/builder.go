package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/wordsolve/internal/utils"
	"github.com/bastiangx/wordsolve/pkg/letters"
	"github.com/charmbracelet/log"
)

// Default word length bounds for the master list.
const (
	DefaultMinWordLength = 3
	DefaultMaxWordLength = 7
)

// NormalizeWord trims, lowercases and strips accents from a master list line.
func NormalizeWord(w string) string {
	return utils.Fold(strings.TrimSpace(w))
}

// IsValidWord reports whether w is made only of letters and its length is
// within [minLen, maxLen].
func IsValidWord(w string, minLen, maxLen int) bool {
	n := utf8.RuneCountInString(w)
	if n < minLen || n > maxLen {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// BuildStats counts what happened to each word offered to a Builder.
type BuildStats struct {
	Accepted  int
	Invalid   int
	Excluded  int
	Duplicate int
	// Words whose signature is a single letter ("aaa"); the index never
	// stores one-letter buckets.
	SingleLetter int
}

// Builder turns a master word list into an Index.
// Words are bucketed in the order they are added.
type Builder struct {
	minLen  int
	maxLen  int
	exclude map[string]struct{}
	seen    *utils.SeenFilter
	buckets map[string][]Entry
	stats   BuildStats
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithWordLength bounds accepted word lengths. maxLen is capped at the
// longest signature an index can hold.
func WithWordLength(minLen, maxLen int) BuilderOption {
	return func(b *Builder) {
		b.minLen = max(minLen, 1)
		b.maxLen = min(maxLen, letters.MaxSignature)
	}
}

// WithExclusions drops the given words (already normalized) from the index.
func WithExclusions(words map[string]struct{}) BuilderOption {
	return func(b *Builder) {
		for w := range words {
			b.exclude[w] = struct{}{}
		}
	}
}

// NewBuilder creates a Builder with default length bounds.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		minLen:  DefaultMinWordLength,
		maxLen:  DefaultMaxWordLength,
		exclude: make(map[string]struct{}),
		seen:    utils.NewSeenFilter(),
		buckets: make(map[string][]Entry),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add normalizes word and files it under its signature.
// It reports whether the word was accepted.
func (b *Builder) Add(word string) bool {
	word = NormalizeWord(word)
	if !IsValidWord(word, b.minLen, b.maxLen) {
		b.stats.Invalid++
		return false
	}
	if _, bad := b.exclude[word]; bad {
		b.stats.Excluded++
		return false
	}
	if !b.seen.ShouldInclude(word) {
		b.stats.Duplicate++
		return false
	}

	sig, sorted := letters.Normalize(word)
	if utf8.RuneCountInString(sig) < letters.MinSignature {
		b.stats.SingleLetter++
		return false
	}

	b.buckets[sig] = append(b.buckets[sig], Entry{Sorted: sorted, Word: word})
	b.stats.Accepted++
	return true
}

// AddFrom adds every line of r. It returns the number of accepted words.
func (b *Builder) AddFrom(r io.Reader) (int, error) {
	accepted := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if b.Add(scanner.Text()) {
			accepted++
		}
	}
	if err := scanner.Err(); err != nil {
		return accepted, fmt.Errorf("reading word list: %w", err)
	}
	return accepted, nil
}

// Stats returns the running counters.
func (b *Builder) Stats() BuildStats { return b.stats }

// Build freezes everything added so far into an Index.
func (b *Builder) Build() (*Index, error) {
	ix, err := NewIndex(b.buckets)
	if err != nil {
		return nil, err
	}
	log.Debugf("Built index: %d signatures from %d words (%d invalid, %d excluded, %d duplicate, %d single-letter)",
		ix.Len(), b.stats.Accepted, b.stats.Invalid, b.stats.Excluded, b.stats.Duplicate, b.stats.SingleLetter)
	return ix, nil
}

// ReadExclusions reads a word-per-line exclusion list. Lines are normalized
// the same way master list words are; blank lines are skipped.
func ReadExclusions(r io.Reader) (map[string]struct{}, error) {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		w := NormalizeWord(scanner.Text())
		if w == "" {
			continue
		}
		words[w] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading exclusion list: %w", err)
	}
	return words, nil
}

// CleanWords filters a master list down to the words a Builder with the same
// options would accept, preserving order. It is the text form of an index.
func CleanWords(r io.Reader, opts ...BuilderOption) ([]string, BuildStats, error) {
	b := NewBuilder(opts...)
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if b.Add(scanner.Text()) {
			out = append(out, NormalizeWord(scanner.Text()))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, b.stats, fmt.Errorf("reading word list: %w", err)
	}
	return out, b.stats, nil
}
