package diagram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MinTextLength is the minimum trimmed input length, in runes, worth processing.
const MinTextLength = 10

const (
	msgInputTooShort  = "Text is too short. Please provide more details."
	msgNoClassesFound = "No classes found. Use capitalized class names like Student, Book, etc."
)

// Processor runs the extraction pipeline. It holds no per-call state and is
// safe for concurrent use.
type Processor struct {
	annotator Annotator
	logger    *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithAnnotator enables dependency-based class detection. A nil annotator
// leaves the Processor in pattern-only mode.
func WithAnnotator(a Annotator) Option {
	return func(p *Processor) { p.annotator = a }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// HasAnnotator reports whether dependency-based class detection is enabled.
func (p *Processor) HasAnnotator() bool { return p.annotator != nil }

// Process extracts a diagram from text. It never panics; every fault is
// reported as a *Failure.
func (p *Processor) Process(ctx context.Context, text string) (result Result) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
		return &Failure{Kind: KindInputTooShort, Message: msgInputTooShort}
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("extraction panicked", "panic", r)
			result = processingFailure(fmt.Errorf("%v", r))
		}
	}()

	classes := p.FindClasses(ctx, text)
	if len(classes) == 0 {
		return &Failure{Kind: KindNoClassesFound, Message: msgNoClassesFound}
	}

	attributes, err := FindAttributes(text, classes)
	if err != nil {
		return processingFailure(err)
	}

	return &Success{
		Classes:       classes,
		Attributes:    attributes,
		Relationships: FindRelationships(text, classes),
	}
}

func processingFailure(err error) *Failure {
	return &Failure{Kind: KindProcessingError, Message: "Processing error: " + err.Error()}
}
