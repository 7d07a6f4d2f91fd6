package common

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatorCollectsErrors(t *testing.T) {
	v := NewValidator().
		Field("amount", "", Required).
		Field("currency", "usd", CurrencyCode).
		Field("start_date", "06/11/2025", ISODate)

	require.True(t, v.HasErrors())
	assert.Len(t, v.Errors(), 3)
	assert.Contains(t, v.ErrorMessage(), "amount")
	assert.Contains(t, v.ErrorMessage(), "currency")
}

func TestValidatorPassingRules(t *testing.T) {
	v := NewValidator().
		Field("currency", "QAR", CurrencyCode).
		Field("start_date", "2025-11-06", ISODate).
		Field("id", "b3b8f6ce-0c3f-44ad-9f28-3b2b0ec33a10", UUID)

	assert.False(t, v.HasErrors())
	assert.Empty(t, v.ErrorMessage())
}

func TestRequiredVariants(t *testing.T) {
	assert.NotNil(t, Required("f", nil))
	assert.NotNil(t, Required("f", "   "))
	assert.Nil(t, Required("f", "x"))

	var nilPtr *string
	assert.NotNil(t, Required("f", nilPtr))
	s := "x"
	assert.Nil(t, Required("f", &s))
}

func TestCurrencyCodeShapeOnly(t *testing.T) {
	assert.Nil(t, CurrencyCode("c", "QAR"))
	assert.NotNil(t, CurrencyCode("c", "QARX"))
	assert.NotNil(t, CurrencyCode("c", "qa"))
	assert.NotNil(t, CurrencyCode("c", 12))
}

func TestTableError(t *testing.T) {
	err := TableError("currency", "XX", "code must be 3 uppercase letters")
	assert.True(t, errors.Is(err, ErrTableEntry))
	assert.Contains(t, err.Error(), "TABLE_ERROR")
	assert.Contains(t, err.Error(), `"XX"`)
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewAppError("X_CODE", "something broke", cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "X_CODE")
	assert.Contains(t, err.Error(), "boom")
}

func TestContextRoundTrips(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithDocumentID(ctx, "doc-9")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "doc-9", DocumentIDFromContext(ctx))
	assert.Empty(t, RequestIDFromContext(context.Background()))
}
