package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docuflow/docintel/constants"
)

// OpenAIConfig for the OpenAI-backed oracle.
type OpenAIConfig struct {
	APIKey      string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // e.g., "gpt-4o-mini"
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

// OpenAIOracle implements Oracle using text-only chat/completions.
type OpenAIOracle struct {
	cfg    OpenAIConfig
	http   *http.Client
	logger *slog.Logger
}

func NewOpenAIOracle(cfg OpenAIConfig, logger *slog.Logger) *OpenAIOracle {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIOracle{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Classify asks the model for a document type. Callers substitute
// FallbackClassification on error.
func (o *OpenAIOracle) Classify(ctx context.Context, text string) (Classification, error) {
	rid := uuid.New().String()
	body := map[string]any{
		"model":           o.cfg.Model,
		"temperature":     o.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": "Classify the document as one of " + strings.Join(constants.DocumentTypes(), ", ") +
				`. Respond with JSON: {"document_type": "...", "confidence": 0.0-1.0}.`},
			{"role": "user", "content": clip(text, 6000)},
		},
	}

	content, err := o.chat(ctx, rid, body)
	if err != nil {
		return Classification{}, err
	}

	var c Classification
	if err := json.Unmarshal([]byte(content), &c); err != nil {
		return Classification{}, fmt.Errorf("decode classification: %w", err)
	}
	dt, ok := constants.ParseDocumentType(string(c.DocumentType))
	if !ok {
		o.logger.Warn("llm.classify.unknown_type", "req_id", rid, "raw_type", c.DocumentType)
	}
	c.DocumentType = dt
	return c, nil
}

// ExtractFields asks the model for the raw field map, constrained by the
// document type's JSON schema, then sanitizes and validates the result.
func (o *OpenAIOracle) ExtractFields(ctx context.Context, req ExtractRequest) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	o.logger.Info("llm.extract.start",
		"req_id", rid,
		"model", o.cfg.Model,
		"doc_type", req.DocumentType,
		"text_len", len(req.Text),
		"prep_confidence", req.PrepConfidence,
	)
	if req.PrepConfidence > 0 && req.PrepConfidence < 0.4 {
		o.logger.Warn("llm.extract.low_source_confidence",
			"req_id", rid, "prep_confidence", req.PrepConfidence)
	}

	schema := BuildDocumentJSONSchema(req.DocumentType)
	sys := buildSystemPrompt(req.DocumentType)
	body := map[string]any{
		"model":           o.cfg.Model,
		"temperature":     o.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": sys},
			{"role": "user", "content": clip(req.Text, 24000) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(schema)},
		},
	}

	content, err := o.chat(ctx, rid, body)
	if err != nil {
		o.logger.Error("llm.extract.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	sanitized, _, err := NormalizeAndSanitizeJSON([]byte(content), o.logger)
	if err != nil {
		return nil, err
	}
	if err := ValidateJSONAgainstSchema(schema, sanitized); err != nil {
		o.logger.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	o.logger.Info("llm.extract.ok",
		"req_id", rid,
		"bytes", len(sanitized),
		"elapsed_ms", time.Since(start).Milliseconds())
	return sanitized, nil
}

func (o *OpenAIOracle) chat(ctx context.Context, rid string, body map[string]any) (string, error) {
	endpoint := strings.TrimRight(o.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + o.cfg.APIKey}
	raw, status, err := SendJSON(ctx, o.http, endpoint, body, headers, o.logger)
	if err != nil {
		return "", err
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("openai status %d: %s", status, clip(string(raw), 300))
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in openai response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}

func buildSystemPrompt(dt constants.DocumentType) string {
	b := &strings.Builder{}
	b.WriteString("You extract structured fields from business documents. Document type: ")
	b.WriteString(string(dt))
	b.WriteString(". Dates must be ISO YYYY-MM-DD. Amounts keep full decimal precision. ")
	b.WriteString(`If no compliance issue is found, set rules_and_compliance_violation to exactly "`)
	b.WriteString(constants.NoViolationSentinel)
	b.WriteString(`". Use null or empty strings for absent fields, never invented values.`)
	return b.String()
}

func mustJSON(v any) string {
	bs, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(bs)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
