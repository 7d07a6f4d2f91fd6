package refresolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateVariantsCoverCommonRenderings(t *testing.T) {
	variants := DateVariants("2025-11-06")
	require.NotEmpty(t, variants)
	assert.GreaterOrEqual(t, len(variants), 20)

	for _, want := range []string{
		"November 6, 2025",
		"11/06/2025",
		"6/11/2025",
		"06-Nov-2025",
		"6 November 2025",
		"Nov 6, 2025",
		"6th November 2025",
	} {
		assert.Contains(t, variants, want)
	}
}

func TestDateVariantsFloorHoldsForTwoDigitDates(t *testing.T) {
	// two-digit day and month collapse the padded/unpadded numeric pairs,
	// so these dates exercise the worst case for variant breadth
	for _, iso := range []string{"2025-11-12", "2025-12-25", "2024-10-31"} {
		variants := DateVariants(iso)
		assert.GreaterOrEqual(t, len(variants), 20, "date %s", iso)
		assert.Contains(t, variants, iso)
	}
}

func TestDateVariantsRejectNonISO(t *testing.T) {
	assert.Nil(t, DateVariants("06/11/2025"))
	assert.Nil(t, DateVariants("next Tuesday"))
	assert.Nil(t, DateVariants(""))
}

func TestOrdinalSuffixes(t *testing.T) {
	tests := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd", 30: "th",
	}
	for day, want := range tests {
		assert.Equal(t, want, ordinal(day), "day %d", day)
	}
}

func TestNumberVariantsGrouping(t *testing.T) {
	variants := NumberVariants("12688.76")
	require.NotEmpty(t, variants)
	assert.Contains(t, variants, "12,688.76")
	assert.Contains(t, variants, "12 688.76")
	assert.Contains(t, variants, "12.688,76")
	assert.Contains(t, variants, "$12,688.76")
	assert.Contains(t, variants, "USD 12,688.76")
}

func TestNumberVariantsPlainInteger(t *testing.T) {
	variants := NumberVariants("500")
	assert.Contains(t, variants, "500")
	assert.Contains(t, variants, "$500")
	assert.NotContains(t, variants, "5,00")
}

func TestNumberVariantsRejectNonNumeric(t *testing.T) {
	assert.Nil(t, NumberVariants("12,688.76"))
	assert.Nil(t, NumberVariants("abc"))
	assert.Nil(t, NumberVariants(""))
}

func TestInterleavedNumberPattern(t *testing.T) {
	re := InterleavedNumberPattern("12688.76")
	require.NotNil(t, re)
	assert.True(t, re.MatchString("total 12'688,76 payable"))
	assert.True(t, re.MatchString("12 688.76"))
	assert.True(t, re.MatchString("12688.76"))
	assert.False(t, re.MatchString("912688.76x"))
}

func TestInterleavedNumberPatternShortValues(t *testing.T) {
	assert.Nil(t, InterleavedNumberPattern("500"))
	assert.Nil(t, InterleavedNumberPattern("500.25"))
	assert.Nil(t, InterleavedNumberPattern("not a number"))
}

func TestLevenshteinRatio(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinRatio("same", "same"))
	assert.Equal(t, 1.0, LevenshteinRatio("", ""))
	assert.InDelta(t, 0.75, LevenshteinRatio("abcd", "abcx"), 1e-9)
	assert.Equal(t, 0.0, LevenshteinRatio("abc", "xyz"))
}
