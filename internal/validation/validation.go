package validation

import (
	"strings"
	"unicode"
)

// denylist holds the words rejected by the family-friendliness check.
// Matching is whole-word and case-insensitive: "class" and "hello" pass even
// though they contain denylisted substrings.
var denylist = map[string]struct{}{
	"damn":    {},
	"hell":    {},
	"ass":     {},
	"crap":    {},
	"stupid":  {},
	"idiot":   {},
	"hate":    {},
	"kill":    {},
	"die":     {},
	"sexy":    {},
	"nude":    {},
	"drug":    {},
	"drunk":   {},
	"loser":   {},
	"shut up": {},
}

var entityReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// IsFamilyFriendly reports whether text is clean of denylisted words. Tokens
// are split on anything that is not a letter, digit, or apostrophe, so
// punctuation around a word does not hide it. Run this on raw text, before
// Sanitize, so entity encoding cannot smuggle a word past the list.
func IsFamilyFriendly(text string) bool {
	lowered := strings.ToLower(text)

	// Multi-word entries can't be caught by tokenizing.
	for phrase := range denylist {
		if strings.Contains(phrase, " ") && containsPhrase(lowered, phrase) {
			return false
		}
	}

	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	for _, token := range tokens {
		token = strings.Trim(token, "'")
		if _, banned := denylist[token]; banned {
			return false
		}
	}
	return true
}

// containsPhrase finds phrase in text on word boundaries.
func containsPhrase(text, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if boundaryAt(text, start-1) && boundaryAt(text, end) {
			return true
		}
		idx = start + 1
	}
}

func boundaryAt(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	r := rune(text[i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Sanitize entity-encodes the HTML-significant characters of user-submitted
// text before it is stored or displayed. The renderer escapes again on
// output; this layer exists so a raw read of the store is still safe.
func Sanitize(text string) string {
	return entityReplacer.Replace(strings.TrimSpace(text))
}
