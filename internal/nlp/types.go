// Package nlp connects the class extractor to an external dependency parser.
// Two backends speak the same JSON document: an HTTP annotation service and a
// local command that reads text on stdin.
package nlp

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shahar-caura/textuml/internal/diagram"
)

var (
	// ErrUnavailable indicates the configured backend could not be reached at load time.
	ErrUnavailable = errors.New("annotator unavailable")

	// ErrAnnotationFailed indicates a single annotation call failed.
	ErrAnnotationFailed = errors.New("annotation failed")
)

// Document is the annotation payload shared by all backends:
//
//	{"tokens":[{"text":"Student","lemma":"student","dep":"nsubj","head":1}, ...]}
//
// Head is the index of the token's syntactic head; the root is its own head.
type Document struct {
	Tokens []WireToken `json:"tokens"`
}

// WireToken is one token as sent by the annotation backend.
type WireToken struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	Dep   string `json:"dep"`
	Head  int    `json:"head"`
}

// decodeDocument parses a Document and converts head indices to child lists.
func decodeDocument(data []byte) ([]diagram.Token, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %s", ErrAnnotationFailed, err)
	}
	return doc.toTokens(), nil
}

func (d Document) toTokens() []diagram.Token {
	tokens := make([]diagram.Token, len(d.Tokens))
	for i, wt := range d.Tokens {
		tokens[i] = diagram.Token{Text: wt.Text, Lemma: wt.Lemma, Dep: wt.Dep}
	}
	for i, wt := range d.Tokens {
		if wt.Head == i || wt.Head < 0 || wt.Head >= len(tokens) {
			continue
		}
		tokens[wt.Head].Children = append(tokens[wt.Head].Children, i)
	}
	return tokens
}
