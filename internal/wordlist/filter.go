// Package wordlist provides word list filtering helpers.
package wordlist

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForTier returns the filter applied to a word bank tier loaded from disk.
func FilterForTier(tier string) FilterFunc {
	switch strings.ToLower(tier) {
	case "easy", "medium":
		return filterLowerASCII
	case "programming":
		return filterCodeToken
	default:
		return filterPrintable
	}
}

// Apply returns the words accepted by filter, in order.
func Apply(words []string, filter FilterFunc) []string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if filter(w) {
			kept = append(kept, w)
		}
	}
	return kept
}

func filterLowerASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

func filterCodeToken(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch <= ' ' || ch > '~' {
			return false
		}
	}
	return true
}

func filterPrintable(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsPrint(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
