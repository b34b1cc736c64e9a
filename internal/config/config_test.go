package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  port: 8080
  cors_origin: https://diagrams.example.com
  read_timeout: 2s
  max_body_bytes: 4096
nlp:
  backend: http
  endpoint: http://localhost:8000
  timeout: 1500ms
log:
  level: debug
  format: json
  file: /var/log/textuml.log
batch:
  workers: 8
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textuml.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://diagrams.example.com", cfg.Server.CORSOrigin)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, int64(4096), cfg.Server.MaxBodyBytes)
	assert.Equal(t, BackendHTTP, cfg.NLP.Backend)
	assert.Equal(t, 1500*time.Millisecond, cfg.NLP.Timeout.Duration)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Batch.Workers)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout.Duration)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout.Duration)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, BackendNone, cfg.NLP.Backend)
	assert.Equal(t, 5*time.Second, cfg.NLP.Timeout.Duration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 50, cfg.Log.MaxSizeMB)
	assert.Equal(t, 4, cfg.Batch.Workers)
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEXTUML_NLP_URL", "http://parser:9000")

	cfg, err := Load(writeConfig(t, "nlp:\n  backend: http\n  endpoint: ${TEXTUML_NLP_URL}\n"))
	require.NoError(t, err)
	assert.Equal(t, "http://parser:9000", cfg.NLP.Endpoint)
}

func TestLoad_InvalidFields(t *testing.T) {
	yaml := `
server:
  port: 70000
nlp:
  backend: spacy
log:
  level: loud
  format: xml
batch:
  workers: 100
`
	_, err := Load(writeConfig(t, yaml))
	require.Error(t, err)

	assert.Contains(t, err.Error(), "server.port must not exceed 65535")
	assert.Contains(t, err.Error(), "nlp.backend must be one of [none http command]")
	assert.Contains(t, err.Error(), "log.level must be one of")
	assert.Contains(t, err.Error(), "log.format must be one of")
	assert.Contains(t, err.Error(), "batch.workers must not exceed 64")
}

func TestLoad_BackendRequirements(t *testing.T) {
	_, err := Load(writeConfig(t, "nlp:\n  backend: http\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nlp.endpoint is required when backend is http")

	_, err = Load(writeConfig(t, "nlp:\n  backend: command\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nlp.command is required when backend is command")
}

func TestLoad_NegativeDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "nlp:\n  timeout: -1s\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nlp.timeout must be positive")
}

func TestLoad_InvalidDuration(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  read_timeout: soon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/textuml.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "reading config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, ":\n\t- :\n  bad:\n\t  indent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
