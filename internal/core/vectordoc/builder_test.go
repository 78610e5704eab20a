package vectordoc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/petejohansson/papervec/internal/models"
)

func fixedChunks(chunks ...string) func(string) ([]string, error) {
	return func(string) ([]string, error) { return chunks, nil }
}

// fakeEmbed returns a distinct unit-ish vector per input, preserving order.
func fakeEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 0.5, -0.5}
	}
	return out, nil
}

func TestBuildAssemblesRecordsInOrder(t *testing.T) {
	meta := models.DocumentMeta{
		DocID:  "2019_Whissel_CCK_GABA_neurons",
		Title:  "Selective Activation of CCK-GABA Neurons",
		Source: "internal_report",
	}

	docs, err := Build(context.Background(), meta, "raw text",
		fixedChunks("alpha beta", "gamma", "delta epsilon zeta"),
		fakeEmbed, "text-embedding-004")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("docs = %d, want 3", len(docs))
	}

	wantText := []string{"alpha beta", "gamma", "delta epsilon zeta"}
	for i, d := range docs {
		if d.Text != wantText[i] {
			t.Errorf("doc %d text = %q, want %q", i, d.Text, wantText[i])
		}
		if d.Metadata.ChunkIndex != i {
			t.Errorf("doc %d chunk_index = %d, want %d", i, d.Metadata.ChunkIndex, i)
		}
		if d.Metadata.DocID != meta.DocID {
			t.Errorf("doc %d doc_id = %q, want %q", i, d.Metadata.DocID, meta.DocID)
		}
		if d.Metadata.EmbeddingModel != "text-embedding-004" {
			t.Errorf("doc %d embedding_model = %q", i, d.Metadata.EmbeddingModel)
		}
		if want := len(strings.Fields(d.Text)); d.Metadata.TokenCount != want {
			t.Errorf("doc %d token_count = %d, want %d", i, d.Metadata.TokenCount, want)
		}
		if d.Embedding[0] != float32(i) {
			t.Errorf("doc %d embedding out of order: %v", i, d.Embedding)
		}
	}
}

func TestBuildMintsUniqueIDs(t *testing.T) {
	docs, err := Build(context.Background(), models.DocumentMeta{}, "text",
		fixedChunks("a", "b", "c", "d"), fakeEmbed, "m")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	seen := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			t.Fatal("empty id")
		}
		if seen[d.ID] {
			t.Fatalf("duplicate id %q within one build", d.ID)
		}
		seen[d.ID] = true
	}
}

func TestBuildMetadataDefaults(t *testing.T) {
	docs, err := Build(context.Background(), models.DocumentMeta{}, "text",
		fixedChunks("one", "two"), fakeEmbed, "m")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for i, d := range docs {
		if d.Metadata.DocID != "unknown" {
			t.Errorf("doc %d doc_id = %q, want \"unknown\"", i, d.Metadata.DocID)
		}
		if d.Metadata.Title != "Untitled" {
			t.Errorf("doc %d title = %q, want \"Untitled\"", i, d.Metadata.Title)
		}
		if d.Metadata.Source != "unknown" {
			t.Errorf("doc %d source = %q, want \"unknown\"", i, d.Metadata.Source)
		}
		if d.Metadata.PageNum != nil {
			t.Errorf("doc %d page_num = %v, want nil", i, d.Metadata.PageNum)
		}
	}
}

func TestBuildEmptyChunksYieldsNoDocuments(t *testing.T) {
	embedCalled := false
	embed := func(ctx context.Context, texts []string) ([][]float32, error) {
		embedCalled = true
		return fakeEmbed(ctx, texts)
	}

	docs, err := Build(context.Background(), models.DocumentMeta{}, "",
		fixedChunks(), embed, "m")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("docs = %d, want 0", len(docs))
	}
	if embedCalled {
		t.Fatal("embedder was called for zero chunks")
	}
}

func TestBuildEmbeddingCountMismatch(t *testing.T) {
	cases := []struct {
		name string
		n    int
	}{
		{"fewer vectors", 2},
		{"more vectors", 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			embed := func(ctx context.Context, texts []string) ([][]float32, error) {
				out := make([][]float32, tc.n)
				for i := range out {
					out[i] = []float32{1}
				}
				return out, nil
			}

			docs, err := Build(context.Background(), models.DocumentMeta{}, "text",
				fixedChunks("a", "b", "c"), embed, "m")
			if !errors.Is(err, ErrEmbeddingCountMismatch) {
				t.Fatalf("err = %v, want ErrEmbeddingCountMismatch", err)
			}
			if docs != nil {
				t.Fatalf("docs = %v, want nil on failure", docs)
			}
		})
	}
}

func TestBuildWrapsBackendError(t *testing.T) {
	backendErr := errors.New("model server unreachable")
	embed := func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, backendErr
	}

	docs, err := Build(context.Background(), models.DocumentMeta{}, "text",
		fixedChunks("a"), embed, "m")
	if !errors.Is(err, ErrEmbeddingBackend) {
		t.Fatalf("err = %v, want ErrEmbeddingBackend", err)
	}
	if docs != nil {
		t.Fatal("partial output returned on backend failure")
	}
}

func TestBuildPropagatesChunkerError(t *testing.T) {
	chunkErr := errors.New("bad window config")
	chunk := func(string) ([]string, error) { return nil, chunkErr }

	embedCalled := false
	embed := func(ctx context.Context, texts []string) ([][]float32, error) {
		embedCalled = true
		return nil, nil
	}

	_, err := Build(context.Background(), models.DocumentMeta{}, "text", chunk, embed, "m")
	if !errors.Is(err, chunkErr) {
		t.Fatalf("err = %v, want the chunker error unchanged", err)
	}
	if embedCalled {
		t.Fatal("embedder was called after chunker failure")
	}
}

func TestBuildTimestamp(t *testing.T) {
	before := time.Now().UTC().Add(-time.Second)

	docs, err := Build(context.Background(), models.DocumentMeta{}, "text",
		fixedChunks("a", "b"), fakeEmbed, "m")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// One RFC 3339 value per build, identical (and so non-decreasing) across
	// the chunks.
	ts, err := time.Parse(time.RFC3339, docs[0].Metadata.Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q not RFC 3339: %v", docs[0].Metadata.Timestamp, err)
	}
	if ts.Before(before) {
		t.Errorf("timestamp %v earlier than test start", ts)
	}
	if docs[1].Metadata.Timestamp != docs[0].Metadata.Timestamp {
		t.Errorf("timestamps differ within one build: %q vs %q",
			docs[0].Metadata.Timestamp, docs[1].Metadata.Timestamp)
	}
}

func TestBuildPageNumPassThrough(t *testing.T) {
	page := 7
	docs, err := Build(context.Background(), models.DocumentMeta{DocID: "d", PageNum: &page},
		"text", fixedChunks("a"), fakeEmbed, "m")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if docs[0].Metadata.PageNum == nil || *docs[0].Metadata.PageNum != 7 {
		t.Fatalf("page_num = %v, want 7", docs[0].Metadata.PageNum)
	}
}
