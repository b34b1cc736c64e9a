// Package diagram turns plain-English domain descriptions into a class
// diagram model: class names, per-class attributes and typed relationships.
package diagram

import (
	"context"
	"encoding/json"
	"errors"
)

// Kind is the relationship taxonomy rendered by clients.
type Kind string

const (
	Inheritance Kind = "inheritance"
	Composition Kind = "composition"
	Aggregation Kind = "aggregation"
	Association Kind = "association"
)

// Relationship is a directed, labelled edge between two distinct classes.
type Relationship struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Kind   Kind   `json:"type" yaml:"type"`
	Label  string `json:"label" yaml:"label"`
	Color  string `json:"color" yaml:"color"`
}

// Token is one annotated word as produced by an Annotator. Children holds
// indices into the token slice the token belongs to.
type Token struct {
	Text     string
	Lemma    string
	Dep      string
	Children []int
}

// Annotator supplies part-of-speech and dependency annotations. It is optional;
// a Processor without one uses pattern matching only.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]Token, error)
}

// Result is either a *Success or a *Failure.
type Result interface {
	json.Marshaler
	isResult()
}

// Success is an extracted diagram. Every key of Attributes and every
// relationship endpoint is present in Classes.
type Success struct {
	Classes       []string            `yaml:"classes"`
	Attributes    map[string][]string `yaml:"attributes"`
	Relationships []Relationship      `yaml:"relationships"`
}

func (*Success) isResult() {}

// MarshalJSON emits the flat wire shape with success=true. Nil slices are
// written as empty lists.
func (s *Success) MarshalJSON() ([]byte, error) {
	attrs := make(map[string][]string, len(s.Attributes))
	for k, v := range s.Attributes {
		if v == nil {
			v = []string{}
		}
		attrs[k] = v
	}
	classes := s.Classes
	if classes == nil {
		classes = []string{}
	}
	rels := s.Relationships
	if rels == nil {
		rels = []Relationship{}
	}
	return json.Marshal(struct {
		Success       bool                `json:"success"`
		Classes       []string            `json:"classes"`
		Attributes    map[string][]string `json:"attributes"`
		Relationships []Relationship      `json:"relationships"`
	}{true, classes, attrs, rels})
}

// ErrorKind classifies a Failure.
type ErrorKind string

const (
	KindInputTooShort   ErrorKind = "input_too_short"
	KindNoClassesFound  ErrorKind = "no_classes_found"
	KindProcessingError ErrorKind = "processing_error"
)

var (
	// ErrInputTooShort matches failures for inputs under MinTextLength.
	ErrInputTooShort = errors.New("input too short")

	// ErrNoClassesFound matches failures where no class candidate survived filtering.
	ErrNoClassesFound = errors.New("no classes found")

	// ErrProcessing matches failures caused by an unexpected fault during extraction.
	ErrProcessing = errors.New("processing error")
)

// Failure is a terminal, human-readable extraction failure.
type Failure struct {
	Kind    ErrorKind
	Message string
}

func (*Failure) isResult() {}

func (f *Failure) Error() string { return f.Message }

// Is lets errors.Is match a Failure against the package sentinels.
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrInputTooShort:
		return f.Kind == KindInputTooShort
	case ErrNoClassesFound:
		return f.Kind == KindNoClassesFound
	case ErrProcessing:
		return f.Kind == KindProcessingError
	}
	return false
}

func (f *Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, f.Message})
}
