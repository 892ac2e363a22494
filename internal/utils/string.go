package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining accents ("Élan" -> "elan").
func Fold(s string) string {
	if isLowerASCII(s) {
		return s
	}
	// transform.Chain keeps state, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

func isLowerASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= utf8.RuneSelf || ('A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// SanitizeLetters turns raw typing into solver input. It folds case and
// accents, drops everything outside a-z and keeps at most maxLetters
// letters (no cap when maxLetters <= 0). Letters that do not fold to ASCII,
// such as ß or Greek, are dropped too; send unfiltered input to look those up.
func SanitizeLetters(s string, maxLetters int) string {
	var b strings.Builder
	b.Grow(len(s))
	n := 0
	for _, r := range Fold(s) {
		if r < 'a' || r > 'z' {
			continue
		}
		if maxLetters > 0 && n == maxLetters {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}

// IsLettersOnly reports whether s is non-empty and made only of letters.
func IsLettersOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// DistinctLetters counts the different runes in s.
func DistinctLetters(s string) int {
	seen := make(map[rune]struct{}, len(s))
	for _, r := range s {
		seen[r] = struct{}{}
	}
	return len(seen)
}
