// Package sink provides vector-store adapters accepting the per-chunk record
// shape: a debug JSON dump, an embedded chromem collection, and pgvector.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/petejohansson/papervec/internal/core"
	"github.com/petejohansson/papervec/internal/models"
)

var _ core.VectorSink = (*JSONSink)(nil)

// JSONSink writes one pretty-printed JSON file per document for inspection,
// vectors_<doc_id>.json under the configured directory.
type JSONSink struct {
	dir string
}

func NewJSONSink(dir string) (*JSONSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &JSONSink{dir: dir}, nil
}

func (s *JSONSink) WriteVectorDocuments(_ context.Context, docID string, docs []models.VectorDocument) error {
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vector documents: %w", err)
	}

	path := filepath.Join(s.dir, "vectors_"+docID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *JSONSink) Close() error { return nil }
