// Package pipeline orchestrates per-document ingestion: fetch, extract,
// analyze, chunk+embed, sink. The core chunker/builder stay single-document
// and synchronous; concurrency lives here, across documents.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/petejohansson/papervec/internal/config"
	"github.com/petejohansson/papervec/internal/core"
	"github.com/petejohansson/papervec/internal/core/extract"
	"github.com/petejohansson/papervec/internal/core/vectordoc"
	"github.com/petejohansson/papervec/internal/models"
)

// Job is one document to ingest. Fetch defers the read so bucket downloads
// happen on the worker, not at enqueue time.
type Job struct {
	FileName string
	Source   string
	Fetch    func(ctx context.Context) ([]byte, error)
}

// Ingestor runs the ingestion pipeline over a bounded job queue.
type Ingestor struct {
	extractor core.DocumentExtractor
	chunkFn   core.ChunkFunc
	embedFn   core.EmbedFunc
	sink      core.VectorSink
	cfg       *config.Config

	jobs chan Job
}

// New constructs the ingestor with a bounded job queue (64).
func New(extractor core.DocumentExtractor, chunkFn core.ChunkFunc, embedFn core.EmbedFunc, vs core.VectorSink, cfg *config.Config) *Ingestor {
	return &Ingestor{
		extractor: extractor,
		chunkFn:   chunkFn,
		embedFn:   embedFn,
		sink:      vs,
		cfg:       cfg,
		jobs:      make(chan Job, 64),
	}
}

// Enqueue schedules a document for ingestion. Blocks when the queue is full.
func (i *Ingestor) Enqueue(j Job) { i.jobs <- j }

// CloseJobs signals that no more documents will be enqueued.
func (i *Ingestor) CloseJobs() { close(i.jobs) }

// Run processes jobs with numWorkers workers until the queue is closed and
// drained, or ctx is cancelled. A document's failure is logged and skipped;
// it never aborts the run or corrupts other documents' output.
func (i *Ingestor) Run(ctx context.Context, numWorkers int) (processed, failed int64) {
	if numWorkers < 1 {
		numWorkers = 1
	}

	var ok, bad int64
	g, gctx := errgroup.WithContext(ctx)
	for w := 1; w <= numWorkers; w++ {
		w := w
		g.Go(func() error {
			for {
				select {
				case <-gctx.Done():
					log.Printf("worker %d: shutting down", w)
					return nil
				case job, open := <-i.jobs:
					if !open {
						return nil
					}
					log.Printf("worker %d: processing %s", w, job.FileName)
					if err := i.ProcessOne(gctx, job); err != nil {
						log.Printf("worker %d: %s: %v", w, job.FileName, err)
						atomic.AddInt64(&bad, 1)
						continue
					}
					atomic.AddInt64(&ok, 1)
				}
			}
		})
	}
	_ = g.Wait()
	return atomic.LoadInt64(&ok), atomic.LoadInt64(&bad)
}

// ProcessOne ingests a single document end to end.
func (i *Ingestor) ProcessOne(ctx context.Context, job Job) error {
	data, err := job.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	text, err := i.extractor.ExtractText(data, "application/pdf")
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	docID := strings.TrimSuffix(job.FileName, filepath.Ext(job.FileName))
	record := i.buildRecord(docID, job, data, text)

	if err := i.writeArtifacts(docID, text, record); err != nil {
		return err
	}

	meta := models.DocumentMeta{
		DocID:  docID,
		Title:  record.TitleHeuristic,
		Source: job.Source,
	}

	docs, err := vectordoc.Build(ctx, meta, text, i.chunkFn, i.embedFn, i.cfg.EmbedModel)
	if err != nil {
		return fmt.Errorf("build vector documents: %w", err)
	}
	if len(docs) == 0 {
		log.Printf("%s: no extractable text, skipping sink", docID)
		return nil
	}

	if err := i.sink.WriteVectorDocuments(ctx, docID, docs); err != nil {
		return fmt.Errorf("sink: %w", err)
	}

	log.Printf("%s: %d vector documents written", docID, len(docs))
	return nil
}

// buildRecord assembles the per-paper metadata artifact. Analysis failures
// degrade to missing fields rather than failing the document; the text already
// extracted is still worth vectorizing.
func (i *Ingestor) buildRecord(docID string, job Job, data []byte, text string) models.DocumentRecord {
	record := models.DocumentRecord{
		DocID:          docID,
		FileName:       job.FileName,
		FileNameMeta:   extract.MetaFromFilename(job.FileName),
		TitleHeuristic: extract.TitleHeuristic(text, 5),
		SourcePDFPath:  job.Source,
	}

	if i.cfg.GenerateHash {
		record.ContentHash = extract.ContentHash(text)
	}
	if i.cfg.AnalyzeContent {
		analysis, err := extract.AnalyzePages(data)
		if err != nil {
			log.Printf("%s: content analysis failed: %v", docID, err)
		} else {
			record.ContentAnalysis = analysis
		}
	}
	if i.cfg.ExtractTextByPage {
		pages, err := extract.ExtractTextByPage(data)
		if err != nil {
			log.Printf("%s: per-page extraction failed: %v", docID, err)
		} else {
			record.Pages = pages
		}
	}
	return record
}

// writeArtifacts saves the extracted text and the metadata JSON alongside the
// vector output, mirroring the processed-papers archive layout.
func (i *Ingestor) writeArtifacts(docID, text string, record models.DocumentRecord) error {
	if err := os.MkdirAll(i.cfg.TextOutDir, 0o755); err != nil {
		return fmt.Errorf("create text dir: %w", err)
	}
	if err := os.MkdirAll(i.cfg.MetaOutDir, 0o755); err != nil {
		return fmt.Errorf("create metadata dir: %w", err)
	}

	textPath := filepath.Join(i.cfg.TextOutDir, docID+".txt")
	if err := os.WriteFile(textPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	record.ProcessedTextPath = textPath

	metaPath := filepath.Join(i.cfg.MetaOutDir, docID+".json")
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, data, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}
