package refresolve

import (
	"github.com/docuflow/docintel/internal/entity"
)

// EnrichRecord resolves references for every reference-worthy field on the
// record and stores them under stable field keys. Fields without a value,
// and fields nothing in the document supports, get no entry. Runs after
// normalization so it searches for canonical values.
func (r *Resolver) EnrichRecord(rec *entity.ExtractedRecord, pm entity.PageMap) {
	if rec == nil || len(pm) == 0 {
		return
	}

	fields := map[string]string{
		"start_date": rec.StartDate,
		"due_date":   rec.DueDate,
		"amount":     rec.Amount,
		"party_1":    rec.Parties.Party1,
		"party_2":    rec.Parties.Party2,
		"vendor":     rec.Parties.Vendor,
		"customer":   rec.Parties.Customer,
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if _, done := rec.References[key]; done {
			continue
		}
		rec.SetReference(key, r.FindReference(pm, key, value))
	}

	for kind, value := range rec.DocumentIDs {
		if value == "" {
			continue
		}
		if _, done := rec.References[kind]; done {
			continue
		}
		rec.SetReference(kind, r.FindReference(pm, kind, value))
	}
}
