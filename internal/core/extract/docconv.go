// Package extract wraps third-party PDF libraries: whole-document text via
// docconv and page-level structural facts via ledongthuc/pdf.
package extract

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv"

	"github.com/petejohansson/papervec/internal/core"
)

var _ core.DocumentExtractor = (*DocconvExtractor)(nil)

// DocconvExtractor extracts plain text from a document body using docconv.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// ExtractText converts the raw bytes to plain text based on content type.
// An empty result is not an error; documents with no extractable text simply
// produce no chunks downstream.
func (e *DocconvExtractor) ExtractText(data []byte, contentType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), contentType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("docconv convert (%s): %w", contentType, err)
	}
	return res.Body, nil
}
