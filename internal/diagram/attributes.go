package diagram

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

var (
	fragmentSeparator = regexp.MustCompile(`,|\sand\s`)
	articles          = regexp.MustCompile(`the|an|a`)
)

// FindAttributes maps every class to the attribute names declared for it with
// "<class> has ..." or "<class> have ..." up to the end of the sentence. Only
// the first word of a multi-word fragment is kept ("phone number" -> "phone").
func FindAttributes(text string, classes []string) (map[string][]string, error) {
	lowerText := strings.ToLower(text)

	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		known[strings.ToLower(c)] = true
	}

	attributes := make(map[string][]string, len(classes))
	for _, class := range classes {
		attributes[class] = []string{}

		re, err := regexp.Compile(regexp.QuoteMeta(strings.ToLower(class)) + `\s+(?:has|have)\s+([^.!?]+)`)
		if err != nil {
			return nil, fmt.Errorf("attribute pattern for %q: %w", class, err)
		}

		for _, m := range re.FindAllStringSubmatch(lowerText, -1) {
			for _, fragment := range fragmentSeparator.Split(m[1], -1) {
				name, ok := attributeName(fragment, known)
				if !ok || slices.Contains(attributes[class], name) {
					continue
				}
				attributes[class] = append(attributes[class], name)
			}
		}
	}
	return attributes, nil
}

// attributeName cleans one comma/"and" separated fragment and returns its
// first word. Fragments naming a known class are relationships, not attributes.
func attributeName(fragment string, known map[string]bool) (string, bool) {
	fragment = strings.TrimSpace(fragment)
	fragment = strings.TrimSpace(removeWholeWords(articles, fragment))
	if fragment == "" || known[fragment] {
		return "", false
	}
	fields := strings.Fields(fragment)
	if len(fields) == 0 {
		return "", false
	}
	name := fields[0]
	if utf8.RuneCountInString(name) <= 1 {
		return "", false
	}
	return name, true
}
