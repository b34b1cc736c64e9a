package main

import (
	"context"

	"github.com/shahar-caura/textuml/internal/diagram"
	"github.com/shahar-caura/textuml/internal/nlp"
)

// newProcessor builds the extraction pipeline, attaching the configured
// annotator when it is reachable.
func (c *cli) newProcessor(ctx context.Context) *diagram.Processor {
	annotator := nlp.Load(ctx, c.cfg.NLP, c.logger)
	return diagram.New(diagram.WithAnnotator(annotator), diagram.WithLogger(c.logger))
}
