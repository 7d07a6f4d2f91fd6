package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/docuflow/docintel/internal/entity"
)

// frequencyEntry maps free-text cadence synonyms to periods per year.
// Order matters: "semi-annual" must be tested before "annual", "quarterly"
// before generic month words, etc.
var frequencyTable = []struct {
	Synonyms       []string
	PeriodsPerYear int64
	Name           string
}{
	{[]string{"semi-annual", "semiannual", "semi annual", "half-year", "half year", "bi-annual", "biannual"}, 2, "half-year"},
	{[]string{"quarter"}, 4, "quarter"},
	{[]string{"month"}, 12, "month"},
	{[]string{"week"}, 52, "week"},
	{[]string{"daily", "per day", "each day"}, 365, "day"},
	{[]string{"annual", "year"}, 1, "year"},
	{[]string{"one-time", "one time", "onetime", "once", "lump sum", "lumpsum"}, 1, "one-time"},
}

// lookupFrequency resolves a free-text cadence by substring match.
func lookupFrequency(frequency string) (periodsPerYear int64, name string, ok bool) {
	lowered := strings.ToLower(frequency)
	for _, entry := range frequencyTable {
		for _, syn := range entry.Synonyms {
			if strings.Contains(lowered, syn) {
				return entry.PeriodsPerYear, entry.Name, true
			}
		}
	}
	return 0, "", false
}

var twelve = decimal.NewFromInt(12)

// CalculatePeriodAmount derives per_period_amount, per_month_amount and
// period_name. Requires both amount and frequency; anything unrecognized is
// a no-op, leaving the derived fields absent rather than zero. Idempotent:
// it recomputes from amount and frequency alone.
//
// per_month_amount is always the 12-months-per-year equivalent regardless
// of the stated cadence. Both derived values carry 2 decimal places.
func CalculatePeriodAmount(rec *entity.ExtractedRecord) {
	if rec.Amount == "" || rec.Frequency == "" {
		return
	}

	periods, name, ok := lookupFrequency(rec.Frequency)
	if !ok {
		return
	}

	amount, err := decimal.NewFromString(rec.Amount)
	if err != nil {
		return
	}

	rec.PerPeriodAmount = amount.Div(decimal.NewFromInt(periods)).StringFixed(2)
	rec.PerMonthAmount = amount.Div(twelve).StringFixed(2)
	rec.PeriodName = name
}
