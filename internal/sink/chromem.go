package sink

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/petejohansson/papervec/internal/core"
	"github.com/petejohansson/papervec/internal/models"
)

var _ core.VectorSink = (*ChromemSink)(nil)

// ChromemSink stores vector documents in an embedded chromem-go collection
// persisted on disk. Embeddings come precomputed, so the collection's own
// embedding func is never invoked.
type ChromemSink struct {
	db   *chromem.DB
	coll *chromem.Collection
}

func NewChromemSink(path, collection string) (*ChromemSink, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open chromem db: %w", err)
	}

	coll, err := db.GetOrCreateCollection(collection, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get collection %q: %w", collection, err)
	}

	return &ChromemSink{db: db, coll: coll}, nil
}

func (s *ChromemSink) WriteVectorDocuments(ctx context.Context, docID string, docs []models.VectorDocument) error {
	if len(docs) == 0 {
		return nil
	}

	out := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, chromem.Document{
			ID:        d.ID,
			Content:   d.Text,
			Embedding: d.Embedding,
			Metadata:  flattenMetadata(d.Metadata),
		})
	}

	if err := s.coll.AddDocuments(ctx, out, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents for %s: %w", docID, err)
	}
	return nil
}

func (s *ChromemSink) Close() error { return nil }

// flattenMetadata maps the envelope into chromem's string-valued metadata.
func flattenMetadata(m models.ChunkMetadata) map[string]string {
	out := map[string]string{
		"doc_id":          m.DocID,
		"title":           m.Title,
		"source":          m.Source,
		"chunk_index":     strconv.Itoa(m.ChunkIndex),
		"token_count":     strconv.Itoa(m.TokenCount),
		"embedding_model": m.EmbeddingModel,
		"timestamp":       m.Timestamp,
	}
	if m.PageNum != nil {
		out["page_num"] = strconv.Itoa(*m.PageNum)
	}
	return out
}
