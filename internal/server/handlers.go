package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/shahar-caura/textuml/internal/diagram"
	"github.com/shahar-caura/textuml/internal/metrics"
)

const (
	msgNoData   = "No data provided"
	msgNoText   = "No text provided"
	msgTooLong  = "Text is too long"
	serverError = "Server error: "
)

// Extractor turns text into a diagram result.
type Extractor interface {
	Process(ctx context.Context, text string) diagram.Result
}

// Handlers implements the generated StrictServerInterface.
type Handlers struct {
	Version   string
	Extractor Extractor
	Metrics   *metrics.Registry // nil disables extraction metrics
	Logger    *slog.Logger
}

func (h *Handlers) GetIndex(_ context.Context, _ GetIndexRequestObject) (GetIndexResponseObject, error) {
	return GetIndex200JSONResponse{
		Message: "Text to UML Diagram API",
		Status:  "running",
		Endpoints: map[string]string{
			"generate": "/api/generate (POST)",
			"health":   "/api/health (GET)",
			"examples": "/api/examples (GET)",
			"openapi":  "/api/openapi.json (GET)",
		},
	}, nil
}

func (h *Handlers) GetHealth(_ context.Context, _ GetHealthRequestObject) (GetHealthResponseObject, error) {
	return GetHealth200JSONResponse{
		Status:  "healthy",
		Message: "Server is running perfectly!",
		Version: h.Version,
	}, nil
}

func (h *Handlers) ListExamples(_ context.Context, request ListExamplesRequestObject) (ListExamplesResponseObject, error) {
	if request.Params.Id != nil {
		ex, ok := diagram.LookupExample(*request.Params.Id)
		if !ok {
			return ListExamples404JSONResponse(failureBody(fmt.Sprintf("No example with id %d", *request.Params.Id))), nil
		}
		return ListExamples200JSONResponse{Examples: []Example{exampleToAPI(ex)}}, nil
	}

	all := diagram.Examples()
	out := make([]Example, len(all))
	for i, ex := range all {
		out[i] = exampleToAPI(ex)
	}
	return ListExamples200JSONResponse{Examples: out}, nil
}

func (h *Handlers) GenerateDiagram(ctx context.Context, request GenerateDiagramRequestObject) (GenerateDiagramResponseObject, error) {
	if request.Body == nil || request.Body.Text == nil || *request.Body.Text == "" {
		return GenerateDiagram400JSONResponse(failureBody(msgNoText)), nil
	}

	start := time.Now()
	res := h.Extractor.Process(ctx, *request.Body.Text)
	if h.Metrics != nil {
		h.Metrics.RecordExtraction(res, time.Since(start))
	}

	body, err := resultToAPI(res)
	if err != nil {
		return nil, err
	}
	if !body.Success {
		h.logger().Debug("extraction rejected", "error", *body.Error)
	}
	return GenerateDiagram200JSONResponse(body), nil
}

func (h *Handlers) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return h.Logger
}

// resultToAPI converts an extraction result into its wire shape.
func resultToAPI(res diagram.Result) (DiagramResult, error) {
	switch r := res.(type) {
	case *diagram.Success:
		classes := append([]string{}, r.Classes...)
		attrs := make(map[string][]string, len(r.Attributes))
		for class, list := range r.Attributes {
			attrs[class] = append([]string{}, list...)
		}
		rels := make([]Relationship, len(r.Relationships))
		for i, rel := range r.Relationships {
			rels[i] = Relationship{
				Source: rel.Source,
				Target: rel.Target,
				Type:   RelationshipType(rel.Kind),
				Label:  rel.Label,
				Color:  rel.Color,
			}
		}
		return DiagramResult{
			Success:       true,
			Classes:       &classes,
			Attributes:    &attrs,
			Relationships: &rels,
		}, nil
	case *diagram.Failure:
		return failureBody(r.Message), nil
	default:
		return DiagramResult{}, fmt.Errorf("unexpected result type %T", res)
	}
}

func failureBody(msg string) DiagramResult {
	return DiagramResult{Success: false, Error: &msg}
}

func exampleToAPI(ex diagram.Example) Example {
	return Example{Id: ex.ID, Title: ex.Title, Text: ex.Text}
}

