package normalize

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docuflow/docintel/internal/entity"
)

var (
	// rePercentOnly rejects amounts that are really percentages ("10%",
	// "7.5 percent"). A percentage must never leak into financial fields.
	rePercentOnly = regexp.MustCompile(`(?i)^\s*\d+\.?\d*\s*(%|percent)\s*$`)

	// reNumeric pulls the first number out of a raw amount string,
	// thousands separators included.
	reNumeric = regexp.MustCompile(`[\d,]+\.?\d*`)
)

// NormalizeAmountAndCurrency canonicalizes the raw amount into a plain
// decimal string (no thousands separators, no precision loss) and resolves
// the currency via the table cascade. Percentage-shaped amounts clear both
// fields; so does anything without a parseable number. Amount and currency
// are always set together or cleared together.
//
// The only error path is a malformed currency table entry, which is a code
// defect and propagates.
func NormalizeAmountAndCurrency(rec *entity.ExtractedRecord, documentText string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	raw := strings.TrimSpace(rec.Amount)
	if raw == "" {
		rec.Amount = ""
		rec.Currency = ""
		return nil
	}

	if rePercentOnly.MatchString(raw) {
		logger.Warn("normalize.amount.percentage_rejected", "raw", raw)
		rec.Amount = ""
		rec.Currency = ""
		return nil
	}

	match := reNumeric.FindString(raw)
	if match == "" {
		logger.Warn("normalize.amount.no_numeric", "raw", raw)
		rec.Amount = ""
		rec.Currency = ""
		return nil
	}

	cleaned := strings.ReplaceAll(match, ",", "")
	cleaned = strings.TrimSuffix(cleaned, ".")
	if _, err := decimal.NewFromString(cleaned); err != nil {
		logger.Warn("normalize.amount.unparseable", "raw", raw, "cleaned", cleaned)
		rec.Amount = ""
		rec.Currency = ""
		return nil
	}

	code, err := ResolveCurrency(rec, raw, documentText)
	if err != nil {
		return err
	}

	rec.Amount = cleaned
	rec.Currency = code
	return nil
}
