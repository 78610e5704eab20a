package core

import (
	"context"

	"github.com/petejohansson/papervec/internal/models"
)

// ChunkFunc splits raw text into an ordered sequence of chunk strings.
// Chunking configuration (model, window, overlap) is curried in by the
// implementation; the builder only sees text in, chunks out.
type ChunkFunc func(text string) ([]string, error)

// EmbedFunc maps a batch of texts to fixed-length vectors, one per input,
// preserving order.
type EmbedFunc func(ctx context.Context, texts []string) ([][]float32, error)

// EmbeddingProvider abstracts the embedding backend (Gemini/OpenAI/etc.) so
// higher layers never depend on a specific SDK.
type EmbeddingProvider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
}

// DocumentExtractor turns a raw document body into plain text.
type DocumentExtractor interface {
	ExtractText(data []byte, contentType string) (string, error)
}

// VectorSink is the external vector store, reduced to the one operation the
// pipeline needs: accept the ordered vector documents for one source document.
type VectorSink interface {
	WriteVectorDocuments(ctx context.Context, docID string, docs []models.VectorDocument) error
	Close() error
}

// ObjectClient defines interactions with S3 or any object storage hosting a
// paper set. Abstract so AWS can be replaced with MinIO, GCP, etc.
type ObjectClient interface {
	ListKeys(ctx context.Context, bucket, prefix string) ([]string, error)
	GetFile(ctx context.Context, bucket, key string) ([]byte, error)
}
