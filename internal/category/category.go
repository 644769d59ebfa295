// Package category reconciles human-entered topic labels. Question
// categories are typed by content authors in English and Spanish with
// inconsistent punctuation and partial phrasing ("Sistema Eléctrico",
// "Electrical", "Electrical Systems"), so filtering by exact key would
// silently drop valid questions. Matching trades precision for recall
// through an ordered three-tier cascade: exact, substring, token overlap.
package category

import (
	"strings"
	"unicode"
)

// minTokenLen guards the substring and token-overlap tiers against
// false positives from very short fragments ("de", "el"). Exact
// equality is unaffected.
const minTokenLen = 3

// Normalize produces a comparison key from a free-text label: lower
// case, word characters and whitespace only, single spaces, trimmed.
// The result is a comparison aid, not a unique lookup key.
func Normalize(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	for _, r := range strings.ToLower(label) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Matches reports whether a question's stored category label satisfies
// any of the requested target labels. For each target the tiers are
// applied in order, short-circuiting on the first hit:
//
//  1. normalized strings are equal
//  2. either normalized string contains the other in full
//  3. any token of one side is a substring of (or contains) a token of
//     the other side
//
// Tiers 2 and 3 ignore fragments shorter than minTokenLen runes, so a
// lone "de" or "el" cannot sweep in every Spanish label containing it.
// An empty label never matches. An empty target list never matches
// here; "no category filter" semantics belong to the caller.
func Matches(questionLabel string, targets []string) bool {
	q := Normalize(questionLabel)
	if q == "" {
		return false
	}

	for _, target := range targets {
		t := Normalize(target)
		if t == "" {
			continue
		}

		if q == t {
			return true
		}
		if containsGuarded(q, t) || containsGuarded(t, q) {
			return true
		}
		if tokensOverlap(strings.Fields(q), strings.Fields(t)) {
			return true
		}
	}

	return false
}

// containsGuarded checks the second tier in one direction: whole does
// not count as containing a fragment shorter than minTokenLen runes.
func containsGuarded(whole, part string) bool {
	if len([]rune(part)) < minTokenLen {
		return false
	}
	return strings.Contains(whole, part)
}

// tokensOverlap checks the third tier: a token from one set being a
// substring of a token from the other. Tokens shorter than minTokenLen
// runes are ignored on both sides.
func tokensOverlap(a, b []string) bool {
	for _, ta := range a {
		if len([]rune(ta)) < minTokenLen {
			continue
		}
		for _, tb := range b {
			if len([]rune(tb)) < minTokenLen {
				continue
			}
			if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				return true
			}
		}
	}
	return false
}
