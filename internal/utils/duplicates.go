package utils

// SeenFilter drops repeats from a stream of words. It is not safe for
// concurrent use.
type SeenFilter struct {
	seenWords map[string]struct{}
}

// NewSeenFilter creates a new filter, optionally pre-seeded with words that
// should always be treated as already seen.
func NewSeenFilter(exclude ...string) *SeenFilter {
	seenWords := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		seenWords[w] = struct{}{}
	}
	return &SeenFilter{seenWords: seenWords}
}

// ShouldInclude checks if a word should be included in results (not a duplicate)
// Returns true the first time a word is offered, false afterwards.
func (f *SeenFilter) ShouldInclude(word string) bool {
	if _, ok := f.seenWords[word]; ok {
		return false
	}
	f.seenWords[word] = struct{}{}
	return true
}

// Len returns how many distinct words have been seen.
func (f *SeenFilter) Len() int {
	return len(f.seenWords)
}
