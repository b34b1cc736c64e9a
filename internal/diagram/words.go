package diagram

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// isWordRune reports whether r counts as a word character. Letters and digits
// from every script qualify, not only ASCII.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// atWordBoundaries reports whether s[start:end] is flanked by non-word runes
// or the ends of s.
func atWordBoundaries(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// findWholeWords returns the submatch indices of every match of re that stands
// as a whole word in s. re must only match word runes, so a match rejected for
// touching a word rune never hides a valid one inside it.
func findWholeWords(re *regexp.Regexp, s string) [][]int {
	var out [][]int
	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		if atWordBoundaries(s, loc[0], loc[1]) {
			out = append(out, loc)
		}
	}
	return out
}

// removeWholeWords deletes every whole-word match of re from s.
func removeWholeWords(re *regexp.Regexp, s string) string {
	locs := findWholeWords(re, s)
	if len(locs) == 0 {
		return s
	}
	out := make([]byte, 0, len(s))
	prev := 0
	for _, loc := range locs {
		out = append(out, s[prev:loc[0]]...)
		prev = loc[1]
	}
	return string(append(out, s[prev:]...))
}
