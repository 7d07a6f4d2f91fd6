package llm

import (
	"encoding/json"
	"fmt"

	"github.com/docuflow/docintel/constants"
	"github.com/docuflow/docintel/internal/entity"
)

// rawEnvelope is the sanitized oracle payload's wire shape.
type rawEnvelope struct {
	DocumentType        string            `json:"document_type"`
	PartyNames          map[string]string `json:"party_names"`
	AdditionalParties   []string          `json:"additional_parties"`
	StartDate           string            `json:"start_date"`
	DueDate             string            `json:"due_date"`
	Amount              string            `json:"amount"`
	Currency            string            `json:"currency"`
	Frequency           string            `json:"frequency"`
	DocumentIDs         map[string]string `json:"document_ids"`
	AccountType         string            `json:"account_type"`
	LineItems           []entity.LineItem `json:"line_items"`
	TaxBreakdown        map[string]string `json:"tax_breakdown"`
	Clauses             entity.Clauses    `json:"clauses"`
	ComplianceViolation string            `json:"rules_and_compliance_violation"`
}

// DecodeRecord populates a fresh record from sanitized oracle JSON. The
// classification's type wins over anything in the payload; document_type is
// immutable once classified.
func DecodeRecord(sanitized []byte, dt constants.DocumentType) (*entity.ExtractedRecord, error) {
	var env rawEnvelope
	if err := json.Unmarshal(sanitized, &env); err != nil {
		return nil, fmt.Errorf("decode oracle payload: %w", err)
	}

	rec := entity.NewRecord()
	rec.DocumentType = dt
	rec.StartDate = env.StartDate
	rec.DueDate = env.DueDate
	rec.Amount = env.Amount
	rec.Currency = env.Currency
	rec.Frequency = env.Frequency
	rec.DocumentIDs = env.DocumentIDs
	rec.AccountType = env.AccountType
	rec.LineItems = env.LineItems
	rec.TaxBreakdown = env.TaxBreakdown
	rec.Clauses = env.Clauses
	rec.ComplianceViolation = env.ComplianceViolation
	rec.Parties = decodeParties(env.PartyNames, env.AdditionalParties)
	return rec, nil
}

func decodeParties(roles map[string]string, additional []string) entity.Parties {
	p := entity.Parties{Additional: additional}
	for role, name := range roles {
		switch role {
		case "party_1":
			p.Party1 = name
		case "party_2":
			p.Party2 = name
		case "vendor":
			p.Vendor = name
		case "customer":
			p.Customer = name
		case "party_1_address":
			p.Party1Address = name
		case "party_2_address":
			p.Party2Address = name
		case "vendor_address":
			p.VendorAddress = name
		case "customer_address":
			p.CustomerAddress = name
		case "vendor_tax_id":
			p.VendorTaxID = name
		case "customer_tax_id":
			p.CustomerTaxID = name
		default:
			if name != "" {
				p.Additional = append(p.Additional, name)
			}
		}
	}
	return p
}
