/*
Package dictionary provides the precomputed word index WordSolve searches.

An Index maps a signature (the sorted, distinct letters of a word) to the
bucket of every dictionary word with exactly those distinct letters:

	"ael" -> [["ael", "ale"], ["aell", "ella"], ["eel", "lea"] ...]

Each entry carries the word's own sorted multiset next to the word, so a
solver can check buildability without re-sorting. Buckets are stored in a
Patricia trie keyed by signature.

An Index is immutable once built. Lookups never mutate it and may run from
any number of goroutines without locking.

Indices are built offline by a Builder from a master word list, and persisted
as JSON or msgpack with the shape

	{"<signature>": [["<sorted letters>", "<word>"], ...], ...}
*/
package dictionary

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/bastiangx/wordsolve/pkg/letters"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrInvalidIndex is returned when index data breaks the key or entry invariants.
var ErrInvalidIndex = errors.New("invalid index")

// Entry is one dictionary word and its sorted letters.
// On the wire it is the two element array [Sorted, Word].
type Entry struct {
	_msgpack struct{} `msgpack:",as_array"`

	Sorted string
	Word   string
}

// NewEntry derives the entry for a word.
func NewEntry(word string) Entry {
	return Entry{Sorted: letters.Sort(word), Word: word}
}

// Index is an immutable signature -> bucket mapping.
type Index struct {
	trie    *patricia.Trie
	buckets int
	words   int
	source  string
}

// Stats summarises the shape of an index.
type Stats struct {
	Signatures    int
	Words         int
	LargestBucket int
	LargestKey    string
	// KeysByLength[n] counts signatures of n letters.
	KeysByLength [letters.MaxSignature + 1]int
}

// NewIndex validates buckets and freezes them into an Index.
// Empty buckets are dropped.
func NewIndex(buckets map[string][]Entry) (*Index, error) {
	keys := make([]string, 0, len(buckets))
	for key, entries := range buckets {
		if len(entries) == 0 {
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	ix := &Index{trie: patricia.NewTrie()}
	for _, key := range keys {
		entries := buckets[key]
		if err := validateBucket(key, entries); err != nil {
			return nil, err
		}
		ix.trie.Insert(patricia.Prefix(key), slices.Clip(entries))
		ix.buckets++
		ix.words += len(entries)
	}
	return ix, nil
}

func validateBucket(key string, entries []Entry) error {
	n := utf8.RuneCountInString(key)
	if n < letters.MinSignature || n > letters.MaxSignature {
		return fmt.Errorf("%w: key %q has %d letters, want %d..%d",
			ErrInvalidIndex, key, n, letters.MinSignature, letters.MaxSignature)
	}
	if !letters.IsSignature(key) {
		return fmt.Errorf("%w: key %q is not sorted distinct letters", ErrInvalidIndex, key)
	}

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if !letters.IsSorted(e.Sorted) {
			return fmt.Errorf("%w: entry %q under %q: letters %q are not sorted",
				ErrInvalidIndex, e.Word, key, e.Sorted)
		}
		if letters.Signature(e.Sorted) != key {
			return fmt.Errorf("%w: entry %q filed under %q, belongs under %q",
				ErrInvalidIndex, e.Word, key, letters.Signature(e.Sorted))
		}
		if letters.Sort(e.Word) != e.Sorted {
			return fmt.Errorf("%w: entry %q does not spell %q", ErrInvalidIndex, e.Word, e.Sorted)
		}
		if _, dup := seen[e.Word]; dup {
			return fmt.Errorf("%w: duplicate word %q under %q", ErrInvalidIndex, e.Word, key)
		}
		seen[e.Word] = struct{}{}
	}
	return nil
}

// Lookup returns the bucket stored under key, or nil.
// The returned slice is shared and must not be modified.
func (ix *Index) Lookup(key string) []Entry {
	if ix == nil || ix.trie == nil {
		return nil
	}
	item := ix.trie.Get(patricia.Prefix(key))
	if item == nil {
		return nil
	}
	return item.([]Entry)
}

// Len returns the number of signatures.
func (ix *Index) Len() int { return ix.buckets }

// WordCount returns the number of entries across all buckets.
func (ix *Index) WordCount() int { return ix.words }

// Source is the file the index was loaded from, if any.
func (ix *Index) Source() string { return ix.source }

// VisitPrefix calls fn for every signature starting with prefix.
// An empty prefix visits the whole index. Returning an error from fn stops
// the walk and is passed back to the caller.
func (ix *Index) VisitPrefix(prefix string, fn func(signature string, entries []Entry) error) error {
	return ix.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		return fn(string(p), item.([]Entry))
	})
}

// Signatures returns every key in ascending order.
func (ix *Index) Signatures() []string {
	keys := make([]string, 0, ix.buckets)
	_ = ix.VisitPrefix("", func(signature string, _ []Entry) error {
		keys = append(keys, signature)
		return nil
	})
	slices.Sort(keys)
	return keys
}

// Buckets copies the index back into its serialisable map form.
func (ix *Index) Buckets() map[string][]Entry {
	out := make(map[string][]Entry, ix.buckets)
	_ = ix.VisitPrefix("", func(signature string, entries []Entry) error {
		out[signature] = slices.Clone(entries)
		return nil
	})
	return out
}

// Stats walks the index once and reports its shape.
func (ix *Index) Stats() Stats {
	s := Stats{Signatures: ix.buckets, Words: ix.words}
	_ = ix.VisitPrefix("", func(signature string, entries []Entry) error {
		s.KeysByLength[utf8.RuneCountInString(signature)]++
		if len(entries) > s.LargestBucket ||
			(len(entries) == s.LargestBucket && signature < s.LargestKey) {
			s.LargestBucket = len(entries)
			s.LargestKey = signature
		}
		return nil
	})
	return s
}
