package sink

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/petejohansson/papervec/internal/core"
	"github.com/petejohansson/papervec/internal/models"
)

//go:embed scripts/initdb.sql
var bootstrapFS embed.FS

var _ core.VectorSink = (*PgvectorSink)(nil)

// PgvectorSink inserts vector documents into a Postgres table with a pgvector
// embedding column. Each document's chunks go in as one transaction, so a
// failed document leaves no partial rows behind.
type PgvectorSink struct {
	db *sql.DB
}

func NewPgvectorSink(ctx context.Context, databaseURL string) (*PgvectorSink, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := ensureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &PgvectorSink{db: db}, nil
}

func (s *PgvectorSink) WriteVectorDocuments(ctx context.Context, docID string, docs []models.VectorDocument) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO vector_documents
			(id, doc_id, title, source, page_num, chunk_index, token_count, embedding_model, created_at, text, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range docs {
		d := &docs[i]

		createdAt, err := time.Parse(time.RFC3339, d.Metadata.Timestamp)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("chunk %d timestamp %q: %w", d.Metadata.ChunkIndex, d.Metadata.Timestamp, err)
		}

		if _, err := stmt.ExecContext(ctx,
			d.ID, d.Metadata.DocID, d.Metadata.Title, d.Metadata.Source,
			d.Metadata.PageNum, d.Metadata.ChunkIndex, d.Metadata.TokenCount,
			d.Metadata.EmbeddingModel, createdAt, d.Text, pgvector.NewVector(d.Embedding),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert chunk %d of %s: %w", d.Metadata.ChunkIndex, docID, err)
		}
	}
	return tx.Commit()
}

func (s *PgvectorSink) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func ensureBootstrapped(ctx context.Context, db *sql.DB) error {
	sqlBytes, err := bootstrapFS.ReadFile("scripts/initdb.sql")
	if err != nil {
		return fmt.Errorf("read initdb.sql: %w", err)
	}

	bootCtx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	if _, err := db.ExecContext(bootCtx, string(sqlBytes)); err != nil {
		return fmt.Errorf("exec bootstrap: %w", err)
	}
	return nil
}
