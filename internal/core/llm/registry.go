package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/petejohansson/papervec/internal/core"
)

// ErrUnsupportedModel means the embedding model name maps to no known backend.
// No implicit fallback: an unknown name is rejected deterministically.
var ErrUnsupportedModel = errors.New("unsupported embedding model")

// geminiModels are the embedding model names served by the Gemini backend.
var geminiModels = map[string]bool{
	"text-embedding-004":   true,
	"embedding-001":        true,
	"gemini-embedding-001": true,
}

// NewEmbedder resolves an embedding model name to its backend provider.
func NewEmbedder(ctx context.Context, apiKey, modelName string) (core.EmbeddingProvider, error) {
	if modelName == "" {
		modelName = "text-embedding-004"
	}
	if !geminiModels[modelName] {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, modelName)
	}
	return NewGeminiEmbedder(ctx, apiKey, modelName)
}

// EmbedFuncOf adapts a provider to the capability shape the vector document
// builder consumes.
func EmbedFuncOf(p core.EmbeddingProvider) core.EmbedFunc {
	return func(ctx context.Context, texts []string) ([][]float32, error) {
		return p.EmbedTexts(ctx, texts)
	}
}
