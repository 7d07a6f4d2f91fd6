package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/docuflow/docintel/constants"
)

// Parties holds role-keyed party entries. Invoices use vendor/customer;
// contract-family documents use party_1/party_2. Parties beyond the two
// primaries land in Additional, in document order.
type Parties struct {
	Party1          string   `json:"party_1,omitempty"`
	Party2          string   `json:"party_2,omitempty"`
	Vendor          string   `json:"vendor,omitempty"`
	Customer        string   `json:"customer,omitempty"`
	Party1Address   string   `json:"party_1_address,omitempty"`
	Party2Address   string   `json:"party_2_address,omitempty"`
	VendorAddress   string   `json:"vendor_address,omitempty"`
	CustomerAddress string   `json:"customer_address,omitempty"`
	VendorTaxID     string   `json:"vendor_tax_id,omitempty"`
	CustomerTaxID   string   `json:"customer_tax_id,omitempty"`
	Additional      []string `json:"additional_parties,omitempty"`
}

// LineItem is one invoice line. Amounts are decimal strings, same contract
// as ExtractedRecord.Amount.
type LineItem struct {
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	UnitPrice   string `json:"unit_price,omitempty"`
	Amount      string `json:"amount,omitempty"`
}

// Clauses carries the contract-family clause texts checked by risk scoring.
type Clauses struct {
	Confidentiality string `json:"confidentiality,omitempty"`
	Termination     string `json:"termination,omitempty"`
	Liability       string `json:"liability,omitempty"`
	Indemnity       string `json:"indemnity,omitempty"`
}

// Reference justifies an extracted value against the source document:
// a text snippet (at most 200 chars) and, when resolvable, a 1-indexed page.
type Reference struct {
	Text string `json:"text"`
	Page *int   `json:"page,omitempty"`
}

// RiskFactor is one named contributor to the risk score.
type RiskFactor struct {
	Factor   string `json:"factor"`
	Severity string `json:"severity"`
	Impact   int    `json:"impact"`
}

// RiskScore is the scored result attached to a record.
type RiskScore struct {
	Score    int          `json:"score"`
	Level    string       `json:"level"`
	Category string       `json:"category"`
	Factors  []RiskFactor `json:"risk_factors"`
}

// ExtractedRecord is the unit of work: one document's extracted and
// normalized fields, plus references and risk score.
//
// Field contracts, enforced by the normalization stages:
//   - StartDate/DueDate are ISO YYYY-MM-DD or empty, never display formats.
//   - Amount is a decimal string with no thousands separators and no
//     precision loss; Currency is set together with Amount or both empty.
//   - PerPeriodAmount/PerMonthAmount/PeriodName exist only when both Amount
//     and Frequency are present and the frequency maps to a known cadence.
type ExtractedRecord struct {
	ID           uuid.UUID              `json:"id"`
	ContentHash  string                 `json:"content_hash,omitempty"`
	DocumentType constants.DocumentType `json:"document_type,omitempty"`

	Parties   Parties `json:"party_names"`
	StartDate string  `json:"start_date,omitempty"`
	DueDate   string  `json:"due_date,omitempty"`

	Amount          string `json:"amount,omitempty"`
	Currency        string `json:"currency,omitempty"`
	Frequency       string `json:"frequency,omitempty"`
	PerPeriodAmount string `json:"per_period_amount,omitempty"`
	PerMonthAmount  string `json:"per_month_amount,omitempty"`
	PeriodName      string `json:"period_name,omitempty"`

	DocumentIDs  map[string]string `json:"document_ids,omitempty"`
	OtherIDs     []string          `json:"other_ids,omitempty"`
	AccountType  string            `json:"account_type,omitempty"`
	LineItems    []LineItem        `json:"line_items,omitempty"`
	TaxBreakdown map[string]string `json:"tax_breakdown,omitempty"`
	Clauses      Clauses           `json:"clauses,omitempty"`

	ComplianceViolation string `json:"rules_and_compliance_violation,omitempty"`

	Risk       *RiskScore           `json:"risk_score,omitempty"`
	References map[string]Reference `json:"references,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewRecord returns an empty record ready for oracle population.
func NewRecord() *ExtractedRecord {
	now := time.Now().UTC()
	return &ExtractedRecord{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasAnyParty reports whether at least one primary party is named, using
// the document-type-specific roles.
func (r *ExtractedRecord) HasAnyParty() bool {
	if r.DocumentType.IsInvoice() {
		return r.Parties.Vendor != "" || r.Parties.Customer != ""
	}
	return r.Parties.Party1 != "" || r.Parties.Party2 != ""
}

// SetReference records a resolved reference for a field key. Nil refs are
// ignored: a failed resolution stores nothing, never a placeholder.
func (r *ExtractedRecord) SetReference(fieldKey string, ref *Reference) {
	if ref == nil {
		return
	}
	if r.References == nil {
		r.References = make(map[string]Reference)
	}
	r.References[fieldKey] = *ref
}
