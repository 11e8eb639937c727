package feedback

import (
	"strings"
	"unicode"
)

// Words too common to be useful as search keywords.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "is": {}, "to": {}, "in": {}, "of": {},
	"that": {}, "it": {}, "on": {}, "for": {}, "with": {}, "as": {},
	"by": {}, "this": {}, "at": {}, "but": {}, "from": {}, "they": {},
	"an": {}, "which": {}, "or": {}, "we": {}, "be": {}, "was": {},
	"not": {}, "are": {}, "have": {}, "had": {}, "a": {}, "if": {},
}

// ExtractKeywords lowercases the free-text reason, splits it on non-word
// runes and returns the distinct words longer than two characters that are
// not stop words, joined with ", ". Order of first appearance is kept so
// the output is deterministic.
func ExtractKeywords(reason string) string {
	if reason == "" {
		return ""
	}

	words := strings.FieldsFunc(strings.ToLower(reason), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	seen := make(map[string]struct{}, len(words))
	keep := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		keep = append(keep, w)
	}
	return strings.Join(keep, ", ")
}
