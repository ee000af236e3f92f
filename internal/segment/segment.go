// Package segment splits raw post text into candidate clauses for claim
// classification. Segmentation is pure and deterministic: no I/O, no state.
package segment

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/claimlens/claimlens/internal/model"
)

// MinClauseWords is the minimum whitespace-delimited word count a clause
// needs to survive segmentation
const MinClauseWords = 3

// clauseSplitRe splits a sentence into clauses: runs of comma/semicolon/colon
// with optional surrounding whitespace, or a dash surrounded by spaces.
var clauseSplitRe = regexp.MustCompile(`\s*[,;:]+\s*|\s+[-–—]\s+`)

// Segment splits post text into clauses with at least MinClauseWords words.
// Clauses are returned in their original order; empty or whitespace-only
// input yields an empty slice.
func Segment(text string) []model.Clause {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return []model.Clause{}
	}

	clauses := []model.Clause{}
	for i, sentence := range splitSentences(trimmed) {
		for _, part := range clauseSplitRe.Split(sentence, -1) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			words := len(strings.Fields(part))
			if words < MinClauseWords {
				continue
			}
			clauses = append(clauses, model.Clause{
				Text:      part,
				WordCount: words,
				Sentence:  i,
			})
		}
	}
	return clauses
}

// splitSentences splits text on sentence-ending punctuation followed by
// whitespace: ! and ? always end a sentence, . only when it is not part of
// an abbreviation like "U.S.". The terminator and trailing whitespace are
// consumed; empty sentences are dropped.
func splitSentences(text string) []string {
	runes := []rune(text)
	var sentences []string
	var current []rune

	flush := func() {
		s := strings.TrimSpace(string(current))
		if s != "" {
			sentences = append(sentences, s)
		}
		current = current[:0]
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		boundary := false
		switch r {
		case '!', '?':
			boundary = followedBySpace(runes, i)
		case '.':
			boundary = followedBySpace(runes, i) && !isAbbreviationDot(runes, i)
		}

		if !boundary {
			current = append(current, r)
			continue
		}

		flush()
		// Collapse the whitespace run after the terminator
		for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			i++
		}
	}
	flush()

	return sentences
}

// followedBySpace reports whether the rune after position i is whitespace.
// A terminator at the very end of the text is not a boundary; the remainder
// is flushed as the final sentence with its punctuation intact.
func followedBySpace(runes []rune, i int) bool {
	return i+1 < len(runes) && unicode.IsSpace(runes[i+1])
}

// isAbbreviationDot reports whether the '.' at position i belongs to an
// abbreviation: it follows a single standalone letter ("U." in "U. S.")
// or a letter preceded by a period (the second '.' in "U.S.").
func isAbbreviationDot(runes []rune, i int) bool {
	if i == 0 || !unicode.IsLetter(runes[i-1]) {
		return false
	}
	if i == 1 {
		return true // Letter at start of text
	}
	prev := runes[i-2]
	return unicode.IsSpace(prev) || prev == '.'
}
