package autocomplete

import (
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// MinQueryLength is the shortest input, in runes, that is matched against the
// completion pool. Shorter input closes the menu without filtering.
const MinQueryLength = 2

// Filter returns the completions that contain query as a case-sensitive
// substring, in their original order. Duplicates are kept.
func Filter(query string, completions []string) []string {
	return lo.Filter(completions, func(candidate string, _ int) bool {
		return strings.Contains(candidate, query)
	})
}

func queryTooShort(query string) bool {
	return utf8.RuneCountInString(query) < MinQueryLength
}
