package risk

import (
	"strings"

	"github.com/docuflow/docintel/constants"
	"github.com/docuflow/docintel/internal/entity"
)

// Level bands. Half-open intervals, lower bound inclusive.
const (
	LevelLow      = "Low"
	LevelMedium   = "Medium"
	LevelHigh     = "High"
	LevelCritical = "Critical"
)

// Severity tiers for individual factors.
const (
	SevLow    = "Low"
	SevMedium = "Medium"
	SevHigh   = "High"
)

// Priority floors applied when the business-critical fields (due date and
// amount) are missing, regardless of how complete the rest of the record
// is.
const (
	floorBothMissing = 60
	floorOneMissing  = 30
)

// unfavorableTerms are scanned in contract-family clause text. Each clause
// contributes at most one hit: the highest-scoring term found.
var unfavorableTerms = []struct {
	Term   string
	Points int
}{
	{"unlimited", 15},
	{"no limit", 15},
	{"without limit", 12},
	{"perpetual", 10},
	{"irrevocable", 8},
	{"sole discretion", 8},
}

// Score computes the deterministic risk result for a normalized record.
// Pure function: the same record always yields the same score, level and
// factor list. A missing frequency never contributes; the field defaults
// to one-time.
func Score(rec *entity.ExtractedRecord) entity.RiskScore {
	score := 0
	var factors []entity.RiskFactor
	addFactor := func(factor, severity string, impact int) {
		score += impact
		factors = append(factors, entity.RiskFactor{Factor: factor, Severity: severity, Impact: impact})
	}

	isInvoice := rec.DocumentType.IsInvoice()

	if rec.DocumentType == "" {
		addFactor("Missing document type", SevLow, 5)
	}
	if !rec.HasAnyParty() {
		addFactor("Missing both parties", SevHigh, 15)
	}
	if rec.StartDate == "" {
		if isInvoice {
			addFactor("Missing invoice date", SevMedium, 10)
		} else {
			addFactor("Missing start date", SevHigh, 10)
		}
	}
	if rec.DueDate == "" {
		if isInvoice {
			addFactor("Missing due date", SevHigh, 15)
		} else {
			addFactor("Missing due date", SevHigh, 20)
		}
	}
	if rec.Amount == "" {
		addFactor("Missing amount", SevHigh, 20)
	}
	if rec.AccountType == "" {
		addFactor("Missing account type", SevLow, 5)
	}
	if v := strings.TrimSpace(rec.ComplianceViolation); v != "" && v != constants.NoViolationSentinel {
		addFactor("Compliance violation detected", SevHigh, 20)
	}

	if isInvoice {
		if rec.DocumentIDs["invoice_id"] == "" {
			addFactor("Missing invoice number", SevMedium, 10)
		}
		if rec.Currency == "" {
			addFactor("Missing currency", SevLow, 5)
		}
		if len(rec.LineItems) == 0 {
			addFactor("No line items", SevLow, 5)
		}
	}

	if rec.DocumentType.IsContractFamily() {
		clauses := []struct {
			Name string
			Text string
		}{
			{"confidentiality", rec.Clauses.Confidentiality},
			{"termination", rec.Clauses.Termination},
			{"liability", rec.Clauses.Liability},
			{"indemnity", rec.Clauses.Indemnity},
		}
		for _, clause := range clauses {
			if strings.TrimSpace(clause.Text) == "" {
				addFactor("Missing "+clause.Name+" clause", SevHigh, 15)
			}
		}
		// unfavorable terms only apply to the clauses that constrain the
		// parties' exposure
		for _, clause := range clauses[1:] {
			if term, pts := worstTerm(clause.Text); term != "" {
				addFactor("Unfavorable term in "+clause.Name+" clause: "+term, SevHigh, pts)
			}
		}
	}

	// Priority override: due date and amount are business-critical; their
	// absence guarantees a floor independent of the rest of the record. The
	// synthetic factor is informational, impact 0, so nothing double-counts.
	dueMissing := rec.DueDate == ""
	amountMissing := rec.Amount == ""
	switch {
	case dueMissing && amountMissing:
		if score < floorBothMissing {
			score = floorBothMissing
		}
		factors = append(factors, entity.RiskFactor{
			Factor:   "Priority: due date and amount both missing",
			Severity: SevHigh,
			Impact:   0,
		})
	case dueMissing || amountMissing:
		if score < floorOneMissing {
			score = floorOneMissing
		}
		factors = append(factors, entity.RiskFactor{
			Factor:   "Priority: critical field missing",
			Severity: SevMedium,
			Impact:   0,
		})
	}

	if score > 100 {
		score = 100
	}

	level := levelFor(score)
	return entity.RiskScore{
		Score:    score,
		Level:    level,
		Category: level + " Risk",
		Factors:  factors,
	}
}

func worstTerm(clauseText string) (string, int) {
	lowered := strings.ToLower(clauseText)
	best := ""
	bestPts := 0
	for _, entry := range unfavorableTerms {
		if strings.Contains(lowered, entry.Term) && entry.Points > bestPts {
			best = entry.Term
			bestPts = entry.Points
		}
	}
	return best, bestPts
}

func levelFor(score int) string {
	switch {
	case score < 30:
		return LevelLow
	case score < 60:
		return LevelMedium
	case score < 80:
		return LevelHigh
	default:
		return LevelCritical
	}
}
