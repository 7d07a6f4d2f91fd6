package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/docuflow/docintel/constants"
	"github.com/docuflow/docintel/internal/common"
	"github.com/docuflow/docintel/internal/docsource"
	"github.com/docuflow/docintel/internal/entity"
	"github.com/docuflow/docintel/internal/llm"
)

type memCache struct {
	entries map[string]*entity.ExtractedRecord
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]*entity.ExtractedRecord)}
}

func (c *memCache) Get(_ context.Context, hash string) (*entity.ExtractedRecord, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	rec, ok := c.entries[hash]
	return rec, ok, nil
}

func (c *memCache) Put(_ context.Context, hash string, rec *entity.ExtractedRecord) error {
	c.entries[hash] = rec
	return nil
}

type memStore struct {
	saved []*entity.ExtractedRecord
}

func (s *memStore) Save(_ context.Context, rec *entity.ExtractedRecord) error {
	s.saved = append(s.saved, rec)
	return nil
}

type failingOracle struct {
	classifyErr error
	extractErr  error
	fields      []byte
}

func (f *failingOracle) Classify(context.Context, string) (llm.Classification, error) {
	if f.classifyErr != nil {
		return llm.Classification{}, f.classifyErr
	}
	return llm.Classification{DocumentType: constants.DocTypeContract, Confidence: 0.9}, nil
}

func (f *failingOracle) ExtractFields(context.Context, llm.ExtractRequest) ([]byte, error) {
	if f.extractErr != nil {
		return nil, f.extractErr
	}
	return f.fields, nil
}

func invoiceDoc() *docsource.Document {
	return docsource.NewDocument([]string{
		"INVOICE\nInvoice Number: INV-2209\nInvoice Date: 06/11/2025\nVendor: Globex Pte Ltd\nTotal: $12,688.76\nCurrency: USD",
		"Payment terms: due by 06/12/2025. Thank you for your business.",
	})
}

func invoiceFields() []byte {
	return []byte(`{
		"document_type": "INVOICE",
		"party_names": {"vendor": "Globex Pte Ltd", "customer": "Initech LLC"},
		"invoice_date": "2025-11-06",
		"due_date": "2025-12-06",
		"total": "12,688.76 USD",
		"payment_frequency": "one-time",
		"document_ids": {"Invoice Number": "INV-2209"},
		"account_type": "Professional Services",
		"line_items": [{"description": "Consulting", "amount": "12,688.76"}]
	}`)
}

func TestProcessEndToEnd(t *testing.T) {
	oracle := &llm.StaticOracle{Type: constants.DocTypeInvoice, Fields: invoiceFields()}
	store := &memStore{}
	proc := NewProcessor(nil, oracle, nil, nil, store)

	rec, err := proc.Process(context.Background(), invoiceDoc())
	require.NoError(t, err)

	assert.Equal(t, constants.DocTypeInvoice, rec.DocumentType)
	assert.Equal(t, "12688.76", rec.Amount)
	assert.Equal(t, "USD", rec.Currency)
	assert.Equal(t, "12688.76", rec.PerPeriodAmount)
	assert.Equal(t, "1057.40", rec.PerMonthAmount)
	assert.Equal(t, "one-time", rec.PeriodName)
	assert.Equal(t, "2025-11-06", rec.StartDate)
	assert.Equal(t, "INV-2209", rec.DocumentIDs["invoice_id"])
	assert.NotEmpty(t, rec.ContentHash)

	require.NotNil(t, rec.Risk)
	assert.Equal(t, "Low", rec.Risk.Level)

	dateRef, ok := rec.References["start_date"]
	require.True(t, ok)
	require.NotNil(t, dateRef.Page)
	assert.Equal(t, 1, *dateRef.Page)

	amtRef, ok := rec.References["amount"]
	require.True(t, ok)
	require.NotNil(t, amtRef.Page)
	assert.Equal(t, 1, *amtRef.Page)

	idRef, ok := rec.References["invoice_id"]
	require.True(t, ok)
	require.NotNil(t, idRef.Page)
	assert.Equal(t, 1, *idRef.Page)

	require.Len(t, store.saved, 1)
	assert.Same(t, rec, store.saved[0])
}

func TestProcessCacheHitSkipsOracle(t *testing.T) {
	doc := invoiceDoc()
	cached := entity.NewRecord()
	cached.ContentHash = doc.ContentHash()
	cache := newMemCache()
	cache.entries[doc.ContentHash()] = cached

	oracle := &failingOracle{extractErr: errors.New("oracle must not be called")}
	proc := NewProcessor(nil, oracle, nil, cache, nil)

	rec, err := proc.Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, cached, rec)
}

func TestProcessCachePutOnMiss(t *testing.T) {
	doc := invoiceDoc()
	cache := newMemCache()
	oracle := &llm.StaticOracle{Type: constants.DocTypeInvoice, Fields: invoiceFields()}
	proc := NewProcessor(nil, oracle, nil, cache, nil)

	rec, err := proc.Process(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, rec, cache.entries[doc.ContentHash()])
}

func TestProcessCacheErrorDegradesToMiss(t *testing.T) {
	cache := newMemCache()
	cache.getErr = errors.New("cache down")
	oracle := &llm.StaticOracle{Type: constants.DocTypeInvoice, Fields: invoiceFields()}
	proc := NewProcessor(nil, oracle, nil, cache, nil)

	rec, err := proc.Process(context.Background(), invoiceDoc())
	require.NoError(t, err)
	assert.Equal(t, "12688.76", rec.Amount)
}

func TestProcessClassifyFailureFallsBack(t *testing.T) {
	oracle := &failingOracle{
		classifyErr: errors.New("model unavailable"),
		fields:      []byte(`{"party_names": {"party_1": "Globex Pte Ltd"}}`),
	}
	proc := NewProcessor(nil, oracle, nil, nil, nil)

	rec, err := proc.Process(context.Background(), docsource.NewDocument([]string{"some agreement text"}))
	require.NoError(t, err)
	assert.Equal(t, constants.DocTypeContract, rec.DocumentType)
	assert.Equal(t, "Globex Pte Ltd", rec.Parties.Party1)
}

func TestProcessExtractFailureReturnsError(t *testing.T) {
	oracle := &failingOracle{extractErr: errors.New("rate limited")}
	proc := NewProcessor(nil, oracle, nil, nil, nil)

	_, err := proc.Process(context.Background(), docsource.NewDocument([]string{"text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract fields")
}

func TestProcessRejectsEmptyDocument(t *testing.T) {
	oracle := &failingOracle{extractErr: errors.New("oracle must not be called")}
	proc := NewProcessor(nil, oracle, nil, nil, nil)

	_, err := proc.Process(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = proc.Process(context.Background(), docsource.NewDocument(nil))
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestProcessNumericLineItemAmountDegrades(t *testing.T) {
	// oracles sometimes emit nested amounts as JSON numbers; that must
	// coerce, not abort the run
	oracle := &llm.StaticOracle{
		Type:   constants.DocTypeInvoice,
		Fields: []byte(`{"amount": "100", "line_items": [{"description": "Consulting", "amount": 100}]}`),
	}
	proc := NewProcessor(nil, oracle, nil, nil, nil)

	rec, err := proc.Process(context.Background(), docsource.NewDocument([]string{"INVOICE Total: 100"}))
	require.NoError(t, err)
	require.Len(t, rec.LineItems, 1)
	assert.Equal(t, "100", rec.LineItems[0].Amount)
}

func TestProcessLogsContextIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	oracle := &llm.StaticOracle{Type: constants.DocTypeInvoice, Fields: invoiceFields()}
	proc := NewProcessor(logger, oracle, nil, nil, nil)

	ctx := common.WithRequestID(context.Background(), "req-42")
	ctx = common.WithDocumentID(ctx, "doc-7")
	_, err := proc.Process(ctx, invoiceDoc())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "request_id=req-42")
	assert.Contains(t, buf.String(), "document_id=doc-7")
}

func TestProcessDegradedPayloadStillScores(t *testing.T) {
	// schema-invalid payload: bad date shape, junk amount
	oracle := &llm.StaticOracle{
		Type:   constants.DocTypeNDA,
		Fields: []byte(`{"start_date": "sometime soon", "amount": "10%"}`),
	}
	proc := NewProcessor(nil, oracle, nil, nil, nil)

	rec, err := proc.Process(context.Background(), docsource.NewDocument([]string{"confidentiality deed"}))
	require.NoError(t, err)
	assert.Empty(t, rec.Amount)
	require.NotNil(t, rec.Risk)
	assert.Greater(t, rec.Risk.Score, 0)
}
