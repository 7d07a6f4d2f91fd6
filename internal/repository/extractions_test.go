package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/docuflow/docintel/internal/entity"
)

func validRecord() *entity.ExtractedRecord {
	return &entity.ExtractedRecord{
		ID:          uuid.New(),
		ContentHash: "5b6c9a0f",
		Currency:    "USD",
		StartDate:   "2025-11-06",
		DueDate:     "2025-12-06",
	}
}

func TestValidateRecordAcceptsCanonicalShapes(t *testing.T) {
	require.NoError(t, validateRecord(validRecord()))

	// Optional fields may be absent entirely.
	rec := &entity.ExtractedRecord{ID: uuid.New(), ContentHash: "deadbeef"}
	require.NoError(t, validateRecord(rec))
}

func TestValidateRecordRejectsUnnormalizedFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*entity.ExtractedRecord)
		want   string
	}{
		{"missing hash", func(r *entity.ExtractedRecord) { r.ContentHash = "" }, "content_hash"},
		{"display date", func(r *entity.ExtractedRecord) { r.DueDate = "06/11/2025" }, "due_date"},
		{"lowercase currency", func(r *entity.ExtractedRecord) { r.Currency = "usd" }, "currency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := validRecord()
			tc.mutate(rec)
			err := validateRecord(rec)
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestSaveRejectsInvalidRecordBeforeTouchingPool(t *testing.T) {
	store := NewPGExtractionStore(nil, nil)
	rec := validRecord()
	rec.StartDate = "next Tuesday"

	err := store.Save(context.Background(), rec)
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
