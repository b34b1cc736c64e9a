package diagram

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// explicitPatterns capture the identifier after a declaring keyword.
	explicitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)class\s+([\p{L}\p{N}_]+)`),
		regexp.MustCompile(`(?i)entity\s+([\p{L}\p{N}_]+)`),
		regexp.MustCompile(`(?i)table\s+([\p{L}\p{N}_]+)`),
	}

	// capitalizedWord must stand alone: "José" yields nothing, not "Jos".
	capitalizedWord = regexp.MustCompile(`[A-Z][a-z]+`)

	// classVerbs are the lemmas whose grammatical subjects are class candidates.
	classVerbs = map[string]bool{
		"has":      true,
		"have":     true,
		"inherits": true,
		"extends":  true,
		"contains": true,
		"uses":     true,
	}

	stopWords = map[string]bool{
		"Has":  true,
		"Have": true,
		"The":  true,
		"And":  true,
		"With": true,
		"From": true,
		"For":  true,
		"That": true,
		"This": true,
	}
)

const minClassNameLength = 3

// FindClasses returns the sorted, de-duplicated class names found in text.
// Annotator failures only reduce recall; they are never returned.
func (p *Processor) FindClasses(ctx context.Context, text string) []string {
	candidates := make(map[string]struct{})

	for _, re := range explicitPatterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			candidates[capitalize(m[1])] = struct{}{}
		}
	}

	for _, loc := range findWholeWords(capitalizedWord, text) {
		candidates[text[loc[0]:loc[1]]] = struct{}{}
	}

	for _, name := range p.annotatedSubjects(ctx, text) {
		candidates[name] = struct{}{}
	}

	classes := make([]string, 0, len(candidates))
	for c := range candidates {
		if stopWords[c] || utf8.RuneCountInString(c) < minClassNameLength {
			continue
		}
		classes = append(classes, c)
	}
	slices.Sort(classes)
	return classes
}

// annotatedSubjects returns the capitalized nominal and passive subjects of
// class verbs, or nil when no annotator is configured or annotation fails.
func (p *Processor) annotatedSubjects(ctx context.Context, text string) []string {
	if p.annotator == nil {
		return nil
	}
	tokens, err := p.annotator.Annotate(ctx, text)
	if err != nil {
		p.logger.Debug("annotation skipped", "err", err)
		return nil
	}

	var subjects []string
	for _, tok := range tokens {
		if !classVerbs[tok.Lemma] {
			continue
		}
		for _, ci := range tok.Children {
			if ci < 0 || ci >= len(tokens) {
				continue
			}
			child := tokens[ci]
			if child.Dep == "nsubj" || child.Dep == "nsubjpass" {
				subjects = append(subjects, capitalize(child.Text))
			}
		}
	}
	return subjects
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
