package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/petejohansson/papervec/internal/models"
)

func TestJSONSinkWritesRecordShape(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONSink(dir)
	if err != nil {
		t.Fatalf("NewJSONSink: %v", err)
	}
	defer s.Close()

	page := 3
	docs := []models.VectorDocument{
		{
			ID:        "id-0",
			Text:      "chunk zero",
			Embedding: []float32{0.1, 0.2},
			Metadata: models.ChunkMetadata{
				DocID: "paper-1", Title: "A Paper", Source: "archive",
				ChunkIndex: 0, TokenCount: 2,
				EmbeddingModel: "text-embedding-004",
				Timestamp:      "2026-08-30T12:00:00Z",
			},
		},
		{
			ID:        "id-1",
			Text:      "chunk one",
			Embedding: []float32{0.3, 0.4},
			Metadata: models.ChunkMetadata{
				DocID: "paper-1", Title: "A Paper", Source: "archive",
				PageNum: &page, ChunkIndex: 1, TokenCount: 2,
				EmbeddingModel: "text-embedding-004",
				Timestamp:      "2026-08-30T12:00:00Z",
			},
		},
	}

	if err := s.WriteVectorDocuments(context.Background(), "paper-1", docs); err != nil {
		t.Fatalf("WriteVectorDocuments: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "vectors_paper-1.json"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("records = %d, want 2", len(decoded))
	}

	for _, key := range []string{"id", "text", "embedding", "metadata"} {
		if _, ok := decoded[0][key]; !ok {
			t.Errorf("record missing %q", key)
		}
	}

	meta0 := decoded[0]["metadata"].(map[string]any)
	if _, ok := meta0["page_num"]; ok {
		t.Error("page_num present on record without a page")
	}
	meta1 := decoded[1]["metadata"].(map[string]any)
	if got, ok := meta1["page_num"].(float64); !ok || int(got) != 3 {
		t.Errorf("page_num = %v, want 3", meta1["page_num"])
	}
	if meta1["chunk_index"].(float64) != 1 {
		t.Errorf("chunk_index = %v, want 1", meta1["chunk_index"])
	}
}

func TestJSONSinkEmptyDocs(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJSONSink(dir)
	if err != nil {
		t.Fatalf("NewJSONSink: %v", err)
	}

	if err := s.WriteVectorDocuments(context.Background(), "empty-doc", nil); err != nil {
		t.Fatalf("WriteVectorDocuments(nil): %v", err)
	}
}
