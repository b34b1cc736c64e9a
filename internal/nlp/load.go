package nlp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shahar-caura/textuml/internal/config"
	"github.com/shahar-caura/textuml/internal/diagram"
)

// Load resolves the configured annotation backend once at startup. It returns
// nil when the backend is disabled or unreachable, which leaves class detection
// pattern-only. Load never fails the caller.
func Load(ctx context.Context, cfg config.NLPConfig, logger *slog.Logger) diagram.Annotator {
	a, err := open(ctx, cfg)
	if err != nil {
		logger.Warn("annotator unavailable, using pattern-only class detection", "backend", cfg.Backend, "err", err)
		return nil
	}
	if a == nil {
		logger.Debug("annotator disabled")
		return nil
	}
	logger.Info("annotator loaded", "backend", cfg.Backend)
	return a
}

func open(ctx context.Context, cfg config.NLPConfig) (diagram.Annotator, error) {
	switch cfg.Backend {
	case config.BackendNone, "":
		return nil, nil
	case config.BackendHTTP:
		a := NewHTTPAnnotator(cfg.Endpoint, cfg.Timeout.Duration)
		probeCtx, cancel := context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
		if err := a.Probe(probeCtx); err != nil {
			return nil, err
		}
		return a, nil
	case config.BackendCommand:
		a, err := NewCommandAnnotator(cfg.Command, cfg.Args, cfg.Timeout.Duration)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrUnavailable, cfg.Backend)
	}
}
