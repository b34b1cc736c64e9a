package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/shahar-caura/textuml/internal/config"
	"github.com/shahar-caura/textuml/internal/diagram"
	"github.com/shahar-caura/textuml/internal/metrics"
	"github.com/shahar-caura/textuml/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentText = "Student has name and age. Student inherits from Person."

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() config.ServerConfig {
	return config.Default().Server
}

func newTestHandler(t *testing.T, cfg config.ServerConfig, reg *metrics.Registry) http.Handler {
	t.Helper()
	s := server.New(cfg, diagram.New(), reg, "test-v0.1.0", discardLogger())
	h, err := s.Handler(context.Background())
	require.NoError(t, err)
	return h
}

func newTestRouter(t *testing.T) routers.Router {
	t.Helper()
	doc, err := server.LoadOpenAPI(context.Background())
	require.NoError(t, err)
	router, err := server.NewRouter(doc)
	require.NoError(t, err)
	return router
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// assertMatchesDocument validates a recorded response against the API document.
func assertMatchesDocument(t *testing.T, router routers.Router, method, target, body string, rec *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	route, params, err := router.FindRoute(req)
	require.NoError(t, err)

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: params,
			Route:      route,
		},
		Status: rec.Code,
		Header: rec.Header(),
	}
	input.SetBodyBytes(rec.Body.Bytes())
	assert.NoError(t, openapi3filter.ValidateResponse(context.Background(), input))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetHealth(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)

	rec := do(t, handler, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body server.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "Server is running perfectly!", body.Message)
	assert.Equal(t, "test-v0.1.0", body.Version)
	assert.NotEmpty(t, rec.Header().Get(server.RequestIDHeader))

	assertMatchesDocument(t, newTestRouter(t), http.MethodGet, "/api/health", "", rec)
}

func TestGetIndex(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)

	rec := do(t, handler, http.MethodGet, "/api/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body server.ApiIndex
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Text to UML Diagram API", body.Message)
	assert.Equal(t, "running", body.Status)
	assert.Equal(t, "/api/generate (POST)", body.Endpoints["generate"])
	assert.Equal(t, "/api/health (GET)", body.Endpoints["health"])
}

func TestGenerate(t *testing.T) {
	router := newTestRouter(t)
	handler := newTestHandler(t, testServerConfig(), nil)

	tests := []struct {
		name    string
		body    string
		status  int
		success bool
		errMsg  string
	}{
		{"extracts diagram", `{"text":"` + studentText + `"}`, http.StatusOK, true, ""},
		{"too short", `{"text":"Hi there"}`, http.StatusOK, false, "Text is too short. Please provide more details."},
		{"no classes", `{"text":"the quick brown fox jumps"}`, http.StatusOK, false, "No classes found. Use capitalized class names like Student, Book, etc."},
		{"empty object", `{}`, http.StatusBadRequest, false, "No data provided"},
		{"empty array", `[]`, http.StatusBadRequest, false, "No data provided"},
		{"empty string", `""`, http.StatusBadRequest, false, "No data provided"},
		{"null body", `null`, http.StatusBadRequest, false, "No data provided"},
		{"false body", ` false `, http.StatusBadRequest, false, "No data provided"},
		{"empty text", `{"text":""}`, http.StatusBadRequest, false, "No text provided"},
		{"null text", `{"text":null}`, http.StatusBadRequest, false, "No text provided"},
		{"unrelated fields", `{"body":"Student has name."}`, http.StatusBadRequest, false, "No text provided"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, handler, http.MethodPost, "/api/generate", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := decode(t, rec)
			assert.Equal(t, tt.success, body["success"])
			if tt.errMsg != "" {
				assert.Equal(t, tt.errMsg, body["error"])
			} else {
				assert.NotContains(t, body, "error")
			}

			assertMatchesDocument(t, router, http.MethodPost, "/api/generate", tt.body, rec)
		})
	}
}

func TestGenerate_SuccessPayload(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)

	rec := do(t, handler, http.MethodPost, "/api/generate", `{"text":"`+studentText+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body server.DiagramResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.NotNil(t, body.Classes)
	assert.Equal(t, []string{"Person", "Student"}, *body.Classes)
	require.NotNil(t, body.Attributes)
	assert.Equal(t, map[string][]string{"Person": {}, "Student": {"name", "age"}}, *body.Attributes)
	require.NotNil(t, body.Relationships)
	require.Len(t, *body.Relationships, 1)
	rel := (*body.Relationships)[0]
	assert.Equal(t, "Student", rel.Source)
	assert.Equal(t, "Person", rel.Target)
	assert.Equal(t, server.RelationshipTypeInheritance, rel.Type)
	assert.Equal(t, "inherits", rel.Label)
	assert.Equal(t, "#4CAF50", rel.Color)
}

func TestGenerate_EmptyCollectionsSerializeAsArrays(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)

	rec := do(t, handler, http.MethodPost, "/api/generate", `{"text":"Mango is tasty and sweet."}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"relationships":[]`)
	assert.Contains(t, rec.Body.String(), `"attributes":{"Mango":[]}`)
}

func TestGenerate_BodyErrors(t *testing.T) {
	t.Run("empty body", func(t *testing.T) {
		handler := newTestHandler(t, testServerConfig(), nil)
		req := httptest.NewRequest(http.MethodPost, "/api/generate", http.NoBody)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "No data provided", body["error"])
	})

	t.Run("malformed json", func(t *testing.T) {
		handler := newTestHandler(t, testServerConfig(), nil)
		rec := do(t, handler, http.MethodPost, "/api/generate", `{"text":`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["success"])
		assert.True(t, strings.HasPrefix(body["error"].(string), "Server error: "))
	})

	t.Run("non object json", func(t *testing.T) {
		handler := newTestHandler(t, testServerConfig(), nil)
		rec := do(t, handler, http.MethodPost, "/api/generate", `["Student has name."]`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, strings.HasPrefix(decode(t, rec)["error"].(string), "Server error: "))
	})

	t.Run("wrong text type", func(t *testing.T) {
		handler := newTestHandler(t, testServerConfig(), nil)
		rec := do(t, handler, http.MethodPost, "/api/generate", `{"text":42}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("body over limit", func(t *testing.T) {
		cfg := testServerConfig()
		cfg.MaxBodyBytes = 64
		handler := newTestHandler(t, cfg, nil)
		long := `{"text":"` + strings.Repeat("Student has name. ", 20) + `"}`
		rec := do(t, handler, http.MethodPost, "/api/generate", long)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, "Text is too long", decode(t, rec)["error"])
	})
}

func TestGenerate_WrongMethod(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)
	rec := do(t, handler, http.MethodGet, "/api/generate", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, decode(t, rec)["success"])
}

func TestListExamples(t *testing.T) {
	router := newTestRouter(t)
	handler := newTestHandler(t, testServerConfig(), nil)

	t.Run("all", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/api/examples", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body server.ExampleList
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Examples, 4)
		assert.Equal(t, 1, body.Examples[0].Id)
		assert.Contains(t, body.Examples[0].Text, "Student inherits from Person.")
		assertMatchesDocument(t, router, http.MethodGet, "/api/examples", "", rec)
	})

	t.Run("by id", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/api/examples?id=3", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var body server.ExampleList
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Examples, 1)
		assert.Equal(t, "Shop", body.Examples[0].Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/api/examples?id=99", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "No example with id 99", decode(t, rec)["error"])
		assertMatchesDocument(t, router, http.MethodGet, "/api/examples?id=99", "", rec)
	})

	t.Run("id below minimum is rejected by validation", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/api/examples?id=0", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, decode(t, rec)["success"])
	})

	t.Run("non-numeric id is rejected", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/api/examples?id=abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOpenAPIDocumentServed(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)

	rec := do(t, handler, http.MethodGet, "/api/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "3.0.3", body["openapi"])
	assert.Contains(t, body["paths"], "/generate")
}

func TestCORS(t *testing.T) {
	cfg := testServerConfig()
	cfg.CORSOrigin = "https://diagrams.example"
	handler := newTestHandler(t, cfg, nil)

	t.Run("preflight", func(t *testing.T) {
		rec := do(t, handler, http.MethodOptions, "/api/generate", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://diagrams.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("simple request", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/api/health", "")
		assert.Equal(t, "https://diagrams.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := testServerConfig()
		cfg.CORSOrigin = ""
		rec := do(t, newTestHandler(t, cfg, nil), http.MethodGet, "/api/health", "")
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestIDEchoed(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(server.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(server.RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := metrics.NewRegistry()
	handler := newTestHandler(t, testServerConfig(), reg)

	do(t, handler, http.MethodPost, "/api/generate", `{"text":"`+studentText+`"}`)
	do(t, handler, http.MethodPost, "/api/generate", `{"text":"short"}`)

	rec := do(t, handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `textuml_extractions_total{outcome="success"} 1`)
	assert.Contains(t, out, `textuml_extractions_total{outcome="input_too_short"} 1`)
	assert.Contains(t, out, `textuml_relationships_total{kind="inheritance"} 1`)
	assert.Contains(t, out, `textuml_http_requests_total{method="POST",path="POST /api/generate",status="200"} 2`)
}

func TestMetricsDisabled(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)
	rec := do(t, handler, http.MethodGet, "/metrics", "")
	// Falls through to the web UI shell.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<html")
}

func TestWebUIServed(t *testing.T) {
	handler := newTestHandler(t, testServerConfig(), nil)

	rec := do(t, handler, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "textuml")

	rec = do(t, handler, http.MethodGet, "/app.js", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/generate")
}

func TestSPAHandler(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>SPA</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log('hi')"), 0o644))

	handler := server.SPAHandler(os.DirFS(dir))

	t.Run("serves index.html at root", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "SPA")
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	})

	t.Run("serves static file", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/assets/app.js", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "console.log")
	})

	t.Run("falls back to index.html for unknown paths", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/diagrams/some-id", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "SPA")
	})

	t.Run("directory path falls back to index.html", func(t *testing.T) {
		rec := do(t, handler, http.MethodGet, "/assets", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "SPA")
	})
}

type panickyExtractor struct{}

func (panickyExtractor) Process(context.Context, string) diagram.Result { return nil }

func TestGenerate_UnexpectedResult(t *testing.T) {
	var logs bytes.Buffer
	s := server.New(testServerConfig(), panickyExtractor{}, nil, "v", slog.New(slog.NewTextHandler(&logs, nil)))
	handler, err := s.Handler(context.Background())
	require.NoError(t, err)

	rec := do(t, handler, http.MethodPost, "/api/generate", `{"text":"`+studentText+`"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.HasPrefix(decode(t, rec)["error"].(string), "Server error: "))
	assert.Contains(t, logs.String(), "handler failed")
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := testServerConfig()
	cfg.Port = 0
	cfg.ShutdownTimeout = config.Duration{Duration: time.Second}
	s := server.New(cfg, diagram.New(), nil, "v", discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
