package sink

import (
	"context"
	"fmt"

	"github.com/petejohansson/papervec/internal/config"
	"github.com/petejohansson/papervec/internal/core"
)

// New resolves the configured sink name to an adapter.
func New(ctx context.Context, cfg *config.Config) (core.VectorSink, error) {
	switch cfg.Sink {
	case "", "json":
		return NewJSONSink(cfg.VectorOutDir)
	case "chromem":
		return NewChromemSink(cfg.ChromemPath, "papers")
	case "pgvector":
		return NewPgvectorSink(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}
