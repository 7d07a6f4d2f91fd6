package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/docuflow/docintel/constants"
	"github.com/docuflow/docintel/internal/common"
	"github.com/docuflow/docintel/internal/docsource"
	"github.com/docuflow/docintel/internal/entity"
	"github.com/docuflow/docintel/internal/llm"
	"github.com/docuflow/docintel/internal/normalize"
	"github.com/docuflow/docintel/internal/refresolve"
	"github.com/docuflow/docintel/internal/risk"
)

// Cache is the content-hash lookup the processor consults before invoking
// the oracle. Optional; a nil cache disables it.
type Cache interface {
	Get(ctx context.Context, contentHash string) (*entity.ExtractedRecord, bool, error)
	Put(ctx context.Context, contentHash string, rec *entity.ExtractedRecord) error
}

// Store persists finished records. Optional.
type Store interface {
	Save(ctx context.Context, rec *entity.ExtractedRecord) error
}

// Processor coordinates classification, extraction, normalization,
// reference resolution and risk scoring for one document at a time. Each
// call owns its record and page map; the processor holds no mutable state,
// so concurrent calls over distinct documents are safe.
type Processor struct {
	logger   *slog.Logger
	oracle   llm.Oracle
	resolver *refresolve.Resolver
	cache    Cache
	store    Store
}

func NewProcessor(logger *slog.Logger, oracle llm.Oracle, resolver *refresolve.Resolver, cache Cache, store Store) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = refresolve.NewResolver(refresolve.Config{}, nil, logger)
	}
	return &Processor{
		logger:   logger,
		oracle:   oracle,
		resolver: resolver,
		cache:    cache,
		store:    store,
	}
}

// Process runs the full pipeline for one document. Malformed or missing
// field values degrade to absent fields and show up in the risk score;
// only oracle transport failures and internal defects return an error.
func (p *Processor) Process(ctx context.Context, doc *docsource.Document) (*entity.ExtractedRecord, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, common.InvalidArgumentError("document has no pages")
	}

	start := time.Now()
	hash := doc.ContentHash()
	log := p.logger.With("content_hash", hash[:12])
	if reqID := common.RequestIDFromContext(ctx); reqID != "" {
		log = log.With("request_id", reqID)
	}
	if docID := common.DocumentIDFromContext(ctx); docID != "" {
		log = log.With("document_id", docID)
	}

	if p.cache != nil {
		cached, ok, err := p.cache.Get(ctx, hash)
		if err != nil {
			log.Warn("pipeline.cache.get_error", "error", err)
		} else if ok {
			log.Info("pipeline.cache.hit")
			return cached, nil
		}
	}

	log.Info("pipeline.start", "status", constants.JobStatusRunning, "pages", len(doc.Pages))

	confidence := docsource.HeuristicConfidence(doc.FullText)

	cls, err := p.oracle.Classify(ctx, doc.FullText)
	if err != nil {
		// classification failure is a collaborator problem; fall back and
		// process the fallback like any confident result
		log.Warn("pipeline.classify.fallback", "error", err)
		cls = llm.FallbackClassification()
	}

	raw, err := p.oracle.ExtractFields(ctx, llm.ExtractRequest{
		Text:           doc.FullText,
		DocumentType:   cls.DocumentType,
		PrepConfidence: confidence,
	})
	if err != nil {
		return nil, common.InternalErrorf("extract fields: %v", err)
	}
	log.Info("pipeline.extracted", "status", constants.JobStatusExtracted, "bytes", len(raw))

	sanitized, _, err := llm.NormalizeAndSanitizeJSON(raw, p.logger)
	if err != nil {
		return nil, fmt.Errorf("sanitize oracle payload: %w", err)
	}
	if err := llm.ValidateJSONAgainstSchema(llm.BuildDocumentJSONSchema(cls.DocumentType), sanitized); err != nil {
		// degraded payloads still flow; the normalizer and risk engine
		// absorb the gaps
		log.Warn("pipeline.schema_validation_failed", "error", err)
	}

	rec, err := llm.DecodeRecord(sanitized, cls.DocumentType)
	if err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	rec.ContentHash = hash

	// order matters: currency detection before period calculation,
	// reference resolution after all value normalization
	if err := normalize.NormalizeAmountAndCurrency(rec, doc.FullText, p.logger); err != nil {
		return nil, fmt.Errorf("normalize amount: %w", err)
	}
	normalize.CalculatePeriodAmount(rec)
	normalize.NormalizeDocumentIDs(rec)
	normalize.AssignAccountHead(rec, doc.FullText)
	log.Info("pipeline.normalized", "status", constants.JobStatusNormalized)

	p.resolver.EnrichRecord(rec, doc.Pages)

	score := risk.Score(rec)
	rec.Risk = &score
	rec.UpdatedAt = time.Now().UTC()
	log.Info("pipeline.scored",
		"status", constants.JobStatusScored,
		"risk_score", score.Score,
		"risk_level", score.Level,
		"references", len(rec.References),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if p.cache != nil {
		if err := p.cache.Put(ctx, hash, rec); err != nil {
			log.Warn("pipeline.cache.put_error", "error", err)
		}
	}
	if p.store != nil {
		if err := p.store.Save(ctx, rec); err != nil {
			return rec, fmt.Errorf("persist record: %w", err)
		}
	}
	return rec, nil
}
