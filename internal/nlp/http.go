package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shahar-caura/textuml/internal/diagram"
)

// maxDocumentBytes bounds the annotation response read from the service.
const maxDocumentBytes = 8 << 20

// HTTPAnnotator calls an annotation service:
// POST <endpoint>/annotate {"text": ...} returning a Document.
type HTTPAnnotator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPAnnotator creates an annotator for the service at endpoint. Each call
// is bounded by timeout.
func NewHTTPAnnotator(endpoint string, timeout time.Duration) *HTTPAnnotator {
	return &HTTPAnnotator{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// Probe checks GET <endpoint>/health answers with a 2xx status.
func (a *HTTPAnnotator) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.endpoint+"/health", nil)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: health check returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// Annotate implements diagram.Annotator.
func (a *HTTPAnnotator) Annotate(ctx context.Context, text string) ([]diagram.Token, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAnnotationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+"/annotate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAnnotationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAnnotationFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %s", ErrAnnotationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrAnnotationFailed, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return decodeDocument(data)
}
