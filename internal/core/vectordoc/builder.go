// Package vectordoc assembles chunk-level records ready for vector store
// insertion: chunk the text, embed the chunks in one batch, and attach a fresh
// id plus the metadata envelope to each chunk.
package vectordoc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/petejohansson/papervec/internal/core"
	"github.com/petejohansson/papervec/internal/models"
)

var (
	// ErrEmbeddingCountMismatch means the embedding backend violated its
	// contract and returned a different number of vectors than inputs.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrEmbeddingBackend wraps failures of the embedding call itself. Retry
	// policy, if any, belongs to the backend or its caller.
	ErrEmbeddingBackend = errors.New("embedding backend")
)

const (
	defaultDocID  = "unknown"
	defaultTitle  = "Untitled"
	defaultSource = "unknown"
)

// Build converts one document's raw text into an ordered list of vector
// documents. chunkFn and embedFn are passed as capabilities so tokenization
// and model inference can be substituted in tests.
//
// Either the full ordered sequence is returned or an error; no partial output.
// Zero chunks (empty or unextractable text) yields a nil slice and no error.
func Build(
	ctx context.Context,
	meta models.DocumentMeta,
	rawText string,
	chunkFn core.ChunkFunc,
	embedFn core.EmbedFunc,
	modelName string,
) ([]models.VectorDocument, error) {
	chunks, err := chunkFn(rawText)
	if err != nil {
		// Chunker errors pass through unchanged.
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, nil
	}

	// One batched call; order of the returned vectors matches input order.
	embeddings, err := embedFn(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingBackend, err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: %d chunks, %d embeddings",
			ErrEmbeddingCountMismatch, len(chunks), len(embeddings))
	}

	// One timestamp per build call keeps the value trivially non-decreasing
	// across the document.
	timestamp := time.Now().UTC().Format(time.RFC3339)

	docs := make([]models.VectorDocument, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, models.VectorDocument{
			ID:        uuid.NewString(),
			Text:      chunk,
			Embedding: embeddings[i],
			Metadata: models.ChunkMetadata{
				DocID:          orDefault(meta.DocID, defaultDocID),
				Title:          orDefault(meta.Title, defaultTitle),
				Source:         orDefault(meta.Source, defaultSource),
				PageNum:        meta.PageNum,
				ChunkIndex:     i,
				TokenCount:     len(strings.Fields(chunk)),
				EmbeddingModel: modelName,
				Timestamp:      timestamp,
			},
		})
	}
	return docs, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
