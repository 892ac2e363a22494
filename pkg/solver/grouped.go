package solver

import "unicode/utf8"

// Grouped holds matches partitioned by word length.
// Each length keeps the order the words were found in.
type Grouped struct {
	byLen [][]string
	total int
}

// GroupByLength partitions m by rune length.
func GroupByLength(m Matches) Grouped {
	var g Grouped
	for _, w := range m {
		n := utf8.RuneCountInString(w)
		if n >= len(g.byLen) {
			g.byLen = append(g.byLen, make([][]string, n+1-len(g.byLen))...)
		}
		g.byLen[n] = append(g.byLen[n], w)
		g.total++
	}
	return g
}

// Lengths returns the word lengths that have at least one match, ascending.
func (g Grouped) Lengths() []int {
	var out []int
	for n, words := range g.byLen {
		if len(words) > 0 {
			out = append(out, n)
		}
	}
	return out
}

// Words returns the matches of length n, or nil.
func (g Grouped) Words(n int) []string {
	if n < 0 || n >= len(g.byLen) {
		return nil
	}
	return g.byLen[n]
}

// Total is the number of grouped words.
func (g Grouped) Total() int { return g.total }

// Map converts to a length keyed map holding only non-empty lengths.
func (g Grouped) Map() map[int][]string {
	out := make(map[int][]string)
	for n, words := range g.byLen {
		if len(words) > 0 {
			out[n] = words
		}
	}
	return out
}
