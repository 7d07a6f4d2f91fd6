package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/docuflow/docintel/internal/common"
	"github.com/docuflow/docintel/internal/entity"
)

// ExtractionStore persists finished records keyed by content hash.
// Re-extraction of the same document supersedes the stored row.
type ExtractionStore interface {
	Save(ctx context.Context, rec *entity.ExtractedRecord) error
	GetByHash(ctx context.Context, contentHash string) (*entity.ExtractedRecord, error)
	List(ctx context.Context, limit int) ([]*entity.ExtractedRecord, error)
}

// PGExtractionStore backs ExtractionStore with Postgres. Expected schema:
//
//	CREATE TABLE extractions (
//	    id            UUID PRIMARY KEY,
//	    content_hash  TEXT NOT NULL UNIQUE,
//	    document_type TEXT NOT NULL,
//	    risk_score    INT,
//	    risk_level    TEXT,
//	    record        JSONB NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL,
//	    updated_at    TIMESTAMPTZ NOT NULL
//	);
type PGExtractionStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPGExtractionStore(pool *pgxpool.Pool, logger *slog.Logger) *PGExtractionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PGExtractionStore{pool: pool, logger: logger}
}

// validateRecord enforces the canonical field shapes before a row is
// written. Violations mean a normalization stage was skipped, not bad
// source data.
func validateRecord(rec *entity.ExtractedRecord) error {
	v := common.NewValidator().
		Field("id", rec.ID.String(), common.UUID).
		Field("content_hash", rec.ContentHash, common.Required)
	if rec.Currency != "" {
		v.Field("currency", rec.Currency, common.CurrencyCode)
	}
	if rec.StartDate != "" {
		v.Field("start_date", rec.StartDate, common.ISODate)
	}
	if rec.DueDate != "" {
		v.Field("due_date", rec.DueDate, common.ISODate)
	}
	return common.ValidateAndReturnError(v)
}

func (s *PGExtractionStore) Save(ctx context.Context, rec *entity.ExtractedRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	var score *int
	var level *string
	if rec.Risk != nil {
		score = &rec.Risk.Score
		level = &rec.Risk.Level
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO extractions (id, content_hash, document_type, risk_score, risk_level, record, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (content_hash) DO UPDATE SET
			document_type = EXCLUDED.document_type,
			risk_score    = EXCLUDED.risk_score,
			risk_level    = EXCLUDED.risk_level,
			record        = EXCLUDED.record,
			updated_at    = EXCLUDED.updated_at`,
		rec.ID, rec.ContentHash, string(rec.DocumentType), score, level, payload, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("extractions.save_failed", "content_hash", rec.ContentHash, "error", err)
		return common.WrapError(err, "save extraction")
	}
	return nil
}

func (s *PGExtractionStore) GetByHash(ctx context.Context, contentHash string) (*entity.ExtractedRecord, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM extractions WHERE content_hash = $1`, contentHash,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NotFoundError("no extraction for content hash " + contentHash)
	}
	if err != nil {
		return nil, common.WrapError(err, "query extraction")
	}

	var rec entity.ExtractedRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

func (s *PGExtractionStore) List(ctx context.Context, limit int) ([]*entity.ExtractedRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT record FROM extractions ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, common.WrapError(err, "list extractions")
	}
	defer rows.Close()

	var recs []*entity.ExtractedRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, common.WrapError(err, "scan extraction")
		}
		var rec entity.ExtractedRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
