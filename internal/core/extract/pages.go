package extract

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/petejohansson/papervec/internal/models"
)

// AnalyzePages classifies each page of a PDF as text, image or mixed content.
// Scanned papers show up as image pages; those need OCR before chunking is
// worth anything.
func AnalyzePages(data []byte) (*models.ContentAnalysis, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	analysis := &models.ContentAnalysis{TotalPages: r.NumPage()}

	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		detail := models.PageDetail{PageNumber: i}

		text, err := p.GetPlainText(nil)
		if err == nil && strings.TrimSpace(text) != "" {
			detail.HasText = true
			detail.TextLength = len(text)
		}

		if n := countPageImages(p); n > 0 {
			detail.HasImages = true
			detail.ImageCount = n
		}

		switch {
		case detail.HasText && detail.HasImages:
			analysis.MixedPages++
		case detail.HasText:
			analysis.TextPages++
		case detail.HasImages:
			analysis.ImagePages++
		}

		analysis.PageDetails = append(analysis.PageDetails, detail)
	}

	return analysis, nil
}

// ExtractTextByPage extracts text with page numbers and per-page word counts,
// for page-scoped vectorization.
func ExtractTextByPage(data []byte) ([]models.PageContent, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var pages []models.PageContent
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			text = ""
		}

		pages = append(pages, models.PageContent{
			PageNumber: i,
			Text:       text,
			WordCount:  len(strings.Fields(text)),
			HasImages:  countPageImages(p) > 0,
		})
	}
	return pages, nil
}

// countPageImages counts image XObjects in the page's resource dictionary.
func countPageImages(p pdf.Page) int {
	xobj := p.Resources().Key("XObject")
	if xobj.IsNull() {
		return 0
	}

	count := 0
	for _, name := range xobj.Keys() {
		if xobj.Key(name).Key("Subtype").Name() == "Image" {
			count++
		}
	}
	return count
}

// ContentHash returns an md5 hex digest of the extracted text, used for
// integrity tracking of processed documents.
func ContentHash(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
