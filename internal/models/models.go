package models

// DocumentMeta carries caller-supplied identity for a source document.
// Zero values mean "not provided"; the vector document builder substitutes
// the documented defaults ("unknown", "Untitled") at assembly time.
type DocumentMeta struct {
	DocID  string
	Title  string
	Source string
	// PageNum is a pass-through slot for page-scoped ingestion; the core never
	// computes it.
	PageNum *int
}

// ChunkMetadata is the metadata envelope attached to every vector document.
type ChunkMetadata struct {
	DocID      string `json:"doc_id"`
	Title      string `json:"title"`
	Source     string `json:"source"`
	PageNum    *int   `json:"page_num,omitempty"`
	ChunkIndex int    `json:"chunk_index"`
	// TokenCount is a word-count approximation, not a re-tokenization of the
	// chunk. Exact counts would require running the tokenizer again per chunk.
	TokenCount     int    `json:"token_count"`
	EmbeddingModel string `json:"embedding_model"`
	Timestamp      string `json:"timestamp"`
}

// VectorDocument is one chunk-level record ready for vector store insertion.
type VectorDocument struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Embedding []float32     `json:"embedding"`
	Metadata  ChunkMetadata `json:"metadata"`
}

// FileNameMeta is what the [YYYY]_Author_Keyword.pdf naming convention encodes.
type FileNameMeta struct {
	Year          int    `json:"year,omitempty"`
	Author        string `json:"author,omitempty"`
	KeywordString string `json:"keyword_string,omitempty"`
}

// DocumentRecord is the per-paper metadata artifact the pipeline writes next to
// the extracted text.
type DocumentRecord struct {
	DocID             string           `json:"doc_id"`
	FileName          string           `json:"file_name"`
	FileNameMeta      FileNameMeta     `json:"filename_meta"`
	TitleHeuristic    string           `json:"extracted_title_heuristic,omitempty"`
	ContentHash       string           `json:"content_hash,omitempty"`
	ContentAnalysis   *ContentAnalysis `json:"content_analysis,omitempty"`
	Pages             []PageContent    `json:"pages,omitempty"`
	ProcessedTextPath string           `json:"processed_text_path,omitempty"`
	SourcePDFPath     string           `json:"source_pdf_path,omitempty"`
}

// PageContent is the per-page extraction result used for fine-grained
// vectorization and word-count statistics.
type PageContent struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
	WordCount  int    `json:"word_count"`
	HasImages  bool   `json:"has_images"`
}

// PageDetail describes what a single page contains.
type PageDetail struct {
	PageNumber int  `json:"page_number"`
	HasText    bool `json:"has_text"`
	HasImages  bool `json:"has_images"`
	TextLength int  `json:"text_length"`
	ImageCount int  `json:"image_count"`
}

// ContentAnalysis summarises text vs. image/scanned content across a PDF.
type ContentAnalysis struct {
	TotalPages  int          `json:"total_pages"`
	TextPages   int          `json:"text_pages"`
	ImagePages  int          `json:"image_pages"`
	MixedPages  int          `json:"mixed_pages"`
	PageDetails []PageDetail `json:"page_details"`
}
