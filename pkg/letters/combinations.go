package letters

import "iter"

// All yields every combination of signature with length between
// MinSignature and min(len(signature), MaxSignature).
//
// Combinations never reorder letters, so each one is already the canonical
// sorted key a dictionary bucket uses. Output is grouped by length, shortest
// first, and within a length follows index order ("ah", "an", "at", "hn", ...).
// The order is stable for a given input.
func All(signature string) iter.Seq[string] {
	return func(yield func(string) bool) {
		set := []rune(signature)
		n := len(set)
		maxK := min(n, MaxSignature)

		buf := make([]rune, maxK)
		idx := make([]int, maxK)

		for k := MinSignature; k <= maxK; k++ {
			pos := idx[:k]
			for i := range pos {
				pos[i] = i
			}

			for {
				for i, p := range pos {
					buf[i] = set[p]
				}
				if !yield(string(buf[:k])) {
					return
				}

				// Advance the rightmost index that still has room, then
				// reset everything after it to consecutive positions.
				i := k - 1
				for i >= 0 && pos[i] == n-k+i {
					i--
				}
				if i < 0 {
					break
				}
				pos[i]++
				for j := i + 1; j < k; j++ {
					pos[j] = pos[j-1] + 1
				}
			}
		}
	}
}

// Combinations collects All into a slice.
func Combinations(signature string) []string {
	n := len([]rune(signature))
	out := make([]string, 0, CombinationCount(n))
	for c := range All(signature) {
		out = append(out, c)
	}
	return out
}

// CombinationCount is the number of keys All yields for a signature of n
// distinct letters: the sum of C(n, k) for k in [2, min(n, 7)].
func CombinationCount(n int) int {
	total := 0
	for k := MinSignature; k <= min(n, MaxSignature); k++ {
		total += binomial(n, k)
	}
	return total
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	c := 1
	for i := 1; i <= k; i++ {
		c = c * (n - k + i) / i
	}
	return c
}
