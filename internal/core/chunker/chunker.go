// Package chunker splits raw text into token-bounded, overlapping chunks using
// OpenAI-compatible BPE tokenization (tiktoken). No API calls are made; the
// tokenizer runs locally.
package chunker

import (
	"errors"
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/petejohansson/papervec/internal/core"
)

var (
	// ErrUnsupportedModel means the model name has no known tokenization profile.
	ErrUnsupportedModel = errors.New("unsupported tokenizer model")

	// ErrInvalidChunkConfig means the window/overlap configuration can never
	// advance (or is otherwise nonsensical). Checked before any tokenization.
	ErrInvalidChunkConfig = errors.New("invalid chunk config")
)

// codec is the minimal encode/decode pair the sliding window needs. Production
// code always uses tiktoken; tests substitute a fixed vocabulary to pin the
// boundary math without loading a BPE ranking.
type codec interface {
	Encode(text string) []int
	Decode(tokens []int) string
}

type tiktokenCodec struct {
	enc *tiktoken.Tiktoken
}

func (c tiktokenCodec) Encode(text string) []int   { return c.enc.Encode(text, nil, nil) }
func (c tiktokenCodec) Decode(tokens []int) string { return c.enc.Decode(tokens) }

// ChunkText splits text into chunks of up to maxTokens tokens, with
// overlapTokens tokens shared between consecutive chunks. The window slides by
// maxTokens-overlapTokens per step, so the overlap must leave a positive
// stride. Empty text yields zero chunks; text of maxTokens or fewer tokens
// yields exactly one.
func ChunkText(text, modelName string, maxTokens, overlapTokens int) ([]string, error) {
	if err := validate(maxTokens, overlapTokens); err != nil {
		return nil, err
	}

	enc, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedModel, modelName, err)
	}

	return slide(tiktokenCodec{enc: enc}, text, maxTokens, overlapTokens), nil
}

// Func curries the chunking configuration into the capability shape the vector
// document builder consumes.
func Func(modelName string, maxTokens, overlapTokens int) core.ChunkFunc {
	return func(text string) ([]string, error) {
		return ChunkText(text, modelName, maxTokens, overlapTokens)
	}
}

func validate(maxTokens, overlapTokens int) error {
	if maxTokens <= 0 {
		return fmt.Errorf("%w: max_tokens=%d, must be positive", ErrInvalidChunkConfig, maxTokens)
	}
	if overlapTokens < 0 {
		return fmt.Errorf("%w: overlap_tokens=%d, must be non-negative", ErrInvalidChunkConfig, overlapTokens)
	}
	if overlapTokens >= maxTokens {
		return fmt.Errorf("%w: overlap_tokens=%d >= max_tokens=%d, window would never advance",
			ErrInvalidChunkConfig, overlapTokens, maxTokens)
	}
	return nil
}

// slide walks the token stream with a fixed-size window. The final window may
// be shorter than maxTokens; it is not padded.
func slide(c codec, text string, maxTokens, overlapTokens int) []string {
	tokens := c.Encode(text)
	total := len(tokens)

	var chunks []string
	for start := 0; start < total; start += maxTokens - overlapTokens {
		end := start + maxTokens
		if end >= total {
			// Final window: clamp to the end of the stream and stop. Without
			// the stop a stride smaller than the overlap would keep emitting
			// windows that are pure suffixes of this one.
			chunks = append(chunks, c.Decode(tokens[start:total]))
			break
		}
		chunks = append(chunks, c.Decode(tokens[start:end]))
	}
	return chunks
}
