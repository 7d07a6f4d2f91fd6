package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/docuflow/docintel/internal/entity"
)

// ExtractionCache is a local sqlite-backed cache keyed by content hash.
// A re-extraction of identical content is served from here without another
// oracle round trip; changed content means a new hash, so stale entries
// are simply never hit again.
type ExtractionCache struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenCache opens (and if needed initializes) the cache database at path.
func OpenCache(path string, logger *slog.Logger) (*ExtractionCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS extraction_cache (
			content_hash TEXT PRIMARY KEY,
			record       BLOB NOT NULL,
			created_at   TIMESTAMP NOT NULL
		)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &ExtractionCache{db: db, logger: logger}, nil
}

func (c *ExtractionCache) Get(ctx context.Context, contentHash string) (*entity.ExtractedRecord, bool, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT record FROM extraction_cache WHERE content_hash = ?`, contentHash,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}

	var rec entity.ExtractedRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		// corrupt entry; drop it and treat as a miss
		c.logger.Warn("cache.corrupt_entry", "content_hash", contentHash, "error", err)
		_ = c.Invalidate(ctx, contentHash)
		return nil, false, nil
	}
	return &rec, true, nil
}

func (c *ExtractionCache) Put(ctx context.Context, contentHash string, rec *entity.ExtractedRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO extraction_cache (content_hash, record, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (content_hash) DO UPDATE SET
			record = excluded.record, created_at = excluded.created_at`,
		contentHash, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Invalidate removes one entry, used when the caller knows a document's
// extraction is superseded.
func (c *ExtractionCache) Invalidate(ctx context.Context, contentHash string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM extraction_cache WHERE content_hash = ?`, contentHash)
	return err
}

func (c *ExtractionCache) Close() error {
	return c.db.Close()
}
