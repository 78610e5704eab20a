package llm

import (
	"context"
	"errors"
	"testing"
)

func TestNewEmbedderRejectsUnknownModel(t *testing.T) {
	_, err := NewEmbedder(context.Background(), "test-key", "all-MiniLM-L6-v2")
	if !errors.Is(err, ErrUnsupportedModel) {
		t.Fatalf("err = %v, want ErrUnsupportedModel", err)
	}
}

func TestEmbedFuncOfPreservesOrder(t *testing.T) {
	p := fakeProvider{}
	fn := EmbedFuncOf(p)

	out, err := fn(context.Background(), []string{"a", "bb", "ccc"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("vectors = %d, want 3", len(out))
	}
	for i, v := range out {
		if int(v[0]) != i {
			t.Fatalf("vector %d out of order: %v", i, v)
		}
	}
}

type fakeProvider struct{}

func (fakeProvider) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i)}
	}
	return out, nil
}

func (fakeProvider) Close() error { return nil }
