package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/petejohansson/papervec/internal/config"
	"github.com/petejohansson/papervec/internal/core/chunker"
	"github.com/petejohansson/papervec/internal/core/extract"
	"github.com/petejohansson/papervec/internal/core/llm"
	objectclient "github.com/petejohansson/papervec/internal/core/object-client"
	"github.com/petejohansson/papervec/internal/pipeline"
	"github.com/petejohansson/papervec/internal/sink"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM for graceful shutdown
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		<-c
		cancel()
	}()

	cfg := config.LoadConfig()

	// Validate the chunking profile up front so a bad window or unknown model
	// fails once at startup instead of once per document.
	if _, err := chunker.ChunkText("", cfg.ChunkModel, cfg.MaxTokens, cfg.OverlapTokens); err != nil {
		log.Fatalf("chunking config: %v", err)
	}

	embedder, err := llm.NewEmbedder(ctx, cfg.AIAPIKey, cfg.EmbedModel)
	if err != nil {
		log.Fatalf("embedder: %v", err)
	}
	defer embedder.Close()

	vectorSink, err := sink.New(ctx, cfg)
	if err != nil {
		log.Fatalf("sink: %v", err)
	}
	defer vectorSink.Close()

	extractor := extract.NewDocconvExtractor(cfg.UseReadability)
	chunkFn := chunker.Func(cfg.ChunkModel, cfg.MaxTokens, cfg.OverlapTokens)

	ing := pipeline.New(extractor, chunkFn, llm.EmbedFuncOf(embedder), vectorSink, cfg)

	go func() {
		defer ing.CloseJobs()
		if cfg.Bucket != "" {
			enqueueBucket(ctx, ing, cfg)
		} else {
			enqueueLocal(ing, cfg)
		}
	}()

	processed, failed := ing.Run(ctx, cfg.Workers)

	log.Printf("--- Processing Summary ---")
	log.Printf("Successfully processed: %d", processed)
	log.Printf("Errors encountered:     %d", failed)
}

func enqueueLocal(ing *pipeline.Ingestor, cfg *config.Config) {
	paths, err := filepath.Glob(filepath.Join(cfg.PapersDir, "*.pdf"))
	if err != nil {
		log.Printf("list %s: %v", cfg.PapersDir, err)
		return
	}
	if len(paths) == 0 {
		log.Printf("no PDF files found in %s", cfg.PapersDir)
		return
	}
	log.Printf("found %d PDF files in %s", len(paths), cfg.PapersDir)

	for _, path := range paths {
		path := path
		ing.Enqueue(pipeline.Job{
			FileName: filepath.Base(path),
			Source:   path,
			Fetch: func(context.Context) ([]byte, error) {
				return os.ReadFile(path)
			},
		})
	}
}

func enqueueBucket(ctx context.Context, ing *pipeline.Ingestor, cfg *config.Config) {
	client, err := objectclient.NewS3Client(ctx, cfg)
	if err != nil {
		log.Printf("s3 client: %v", err)
		return
	}

	keys, err := client.ListKeys(ctx, cfg.Bucket, cfg.Prefix)
	if err != nil {
		log.Printf("list s3://%s/%s: %v", cfg.Bucket, cfg.Prefix, err)
		return
	}
	if len(keys) == 0 {
		log.Printf("no PDF objects under s3://%s/%s", cfg.Bucket, cfg.Prefix)
		return
	}
	log.Printf("found %d PDF objects under s3://%s/%s", len(keys), cfg.Bucket, cfg.Prefix)

	for _, key := range keys {
		key := key
		ing.Enqueue(pipeline.Job{
			FileName: filepath.Base(key),
			Source:   "s3://" + cfg.Bucket + "/" + key,
			Fetch: func(fetchCtx context.Context) ([]byte, error) {
				return client.GetFile(fetchCtx, cfg.Bucket, key)
			},
		})
	}
}
