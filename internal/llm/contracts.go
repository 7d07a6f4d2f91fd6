package llm

import (
	"context"

	"github.com/docuflow/docintel/constants"
)

// Classification is the oracle's document-type verdict.
type Classification struct {
	DocumentType constants.DocumentType `json:"document_type"`
	Confidence   float32                `json:"confidence"` // 0..1
}

// FallbackClassification is what callers substitute when classification
// fails. The pipeline processes it identically to a confident one.
func FallbackClassification() Classification {
	return Classification{DocumentType: constants.DocTypeContract, Confidence: 0.2}
}

// ExtractRequest carries everything the oracle needs for one document.
type ExtractRequest struct {
	Text         string
	DocumentType constants.DocumentType
	FilenameHint string

	// PrepConfidence is the document source's heuristic confidence; low
	// values are logged, not special-cased.
	PrepConfidence float32
}

// Oracle is the LLM-backed collaborator that classifies a document and
// produces its raw field map. Non-deterministic; the core consumes but
// never implements its judgment.
type Oracle interface {
	Classify(ctx context.Context, text string) (Classification, error)
	// ExtractFields returns the raw field map as JSON bytes matching the
	// document type's schema. Values may still be in display formats; the
	// normalizer owns canonicalization.
	ExtractFields(ctx context.Context, req ExtractRequest) ([]byte, error)
}
