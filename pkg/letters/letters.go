/*
Package letters holds the letter arithmetic behind WordSolve lookups.

Two string forms are used throughout:

  - a multiset is the input's letters sorted ascending by code point, with
    duplicates kept ("nathan" -> "aahnnt")
  - a signature is the multiset with adjacent duplicates collapsed
    ("aahnnt" -> "ahnt")

Signatures are the keys of the dictionary index, multisets are what
Contains compares. Every function here assumes its arguments are already
sorted and never checks it.
*/
package letters

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxSignature is the longest signature ever used as an index key.
const MaxSignature = 7

// MinSignature is the shortest signature worth probing; the index never
// stores single-letter buckets.
const MinSignature = 2

// Normalize sorts the input into a multiset and derives its signature.
// Empty input returns two empty strings.
func Normalize(input string) (signature, sorted string) {
	if input == "" {
		return "", ""
	}

	runes := []rune(input)
	slices.Sort(runes)

	var sig strings.Builder
	sig.Grow(len(input))
	for i, r := range runes {
		if i > 0 && r == runes[i-1] {
			continue
		}
		sig.WriteRune(r)
	}

	return sig.String(), string(runes)
}

// Sort returns the multiset form of a word.
func Sort(word string) string {
	runes := []rune(word)
	slices.Sort(runes)
	return string(runes)
}

// Signature collapses adjacent duplicates of an already sorted multiset.
func Signature(sorted string) string {
	var sig strings.Builder
	sig.Grow(len(sorted))
	last := utf8.RuneError
	for i, r := range sorted {
		if i > 0 && r == last {
			continue
		}
		sig.WriteRune(r)
		last = r
	}
	return sig.String()
}

// IsSorted reports whether s is ascending by code point.
func IsSorted(s string) bool {
	prev := rune(-1)
	for _, r := range s {
		if r < prev {
			return false
		}
		prev = r
	}
	return true
}

// IsSignature reports whether s is strictly ascending, i.e. sorted with no
// repeated letter.
func IsSignature(s string) bool {
	prev := rune(-1)
	for _, r := range s {
		if r <= prev {
			return false
		}
		prev = r
	}
	return true
}

// Contains reports whether every letter of subSet can be matched, with
// multiplicity, to a letter of superSet.
//
// Both arguments must be sorted ascending. This is not validated: unsorted
// input does not panic but the answer is unspecified. Matching "nn" needs two
// reachable 'n's in superSet visited in order, which is what enforces counts.
func Contains(superSet, subSet string) bool {
	if len(subSet) > len(superSet) {
		return false
	}

	j := 0
	for i := 0; i < len(subSet); {
		want, n := utf8.DecodeRuneInString(subSet[i:])
		i += n
		for {
			if j >= len(superSet) {
				return false
			}
			got, m := utf8.DecodeRuneInString(superSet[j:])
			j += m
			if got == want {
				break
			}
		}
	}
	return true
}
