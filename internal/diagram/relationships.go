package diagram

import (
	"fmt"
	"strings"
)

// template is one relationship rule. Phrases are format strings taking the
// lower-cased source and target class names.
type template struct {
	kind    Kind
	label   string
	color   string
	phrases []string
}

// relationshipTemplates are tested in order; the first match wins.
var relationshipTemplates = []template{
	{Inheritance, "inherits", "#4CAF50", []string{"%s inherits from %s", "%s extends %s"}},
	{Composition, "consists of", "#F44336", []string{"%s consists of %s"}},
	{Aggregation, "has", "#FF9800", []string{"%s contains %s", "%s has %s"}},
	{Association, "uses", "#9E9E9E", []string{"%s uses %s"}},
}

// FindRelationships classifies every ordered pair of distinct classes against
// the relationship templates. Matching is plain substring containment on the
// lower-cased text, so a class whose name ends another word can match inside
// it ("car" inside "scar").
func FindRelationships(text string, classes []string) []Relationship {
	lowerText := strings.ToLower(text)

	relationships := []Relationship{}
	for _, source := range classes {
		for _, target := range classes {
			if source == target {
				continue
			}
			if rel, ok := classify(lowerText, source, target); ok {
				relationships = append(relationships, rel)
			}
		}
	}
	return relationships
}

func classify(lowerText, source, target string) (Relationship, bool) {
	s, t := strings.ToLower(source), strings.ToLower(target)
	for _, tmpl := range relationshipTemplates {
		for _, phrase := range tmpl.phrases {
			if strings.Contains(lowerText, fmt.Sprintf(phrase, s, t)) {
				return Relationship{
					Source: source,
					Target: target,
					Kind:   tmpl.kind,
					Label:  tmpl.label,
					Color:  tmpl.color,
				}, true
			}
		}
	}
	return Relationship{}, false
}
