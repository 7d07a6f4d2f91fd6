package constants

import "strings"

// KnownIdentifierKinds are the document-ID keys we store under their own
// slot; anything the oracle returns outside this set goes to other_ids.
var KnownIdentifierKinds = []string{
	"invoice_id",
	"po_number",
	"gst_number",
	"pan_number",
	"tin_number",
	"vat_number",
	"cin_number",
	"sez_code",
	"hsn_code",
	"sac_code",
	"iban",
	"swift_code",
	"bank_account_number",
	"ifsc_code",
	"contract_id",
	"lease_id",
	"agreement_number",
	"registration_number",
	"license_number",
	"tax_id",
}

var identifierSynonyms = map[string]string{
	"invoice_number":  "invoice_id",
	"invoice_no":      "invoice_id",
	"bill_number":     "invoice_id",
	"purchase_order":  "po_number",
	"po_no":           "po_number",
	"gstin":           "gst_number",
	"pan":             "pan_number",
	"tin":             "tin_number",
	"vat":             "vat_number",
	"cin":             "cin_number",
	"hsn":             "hsn_code",
	"sac":             "sac_code",
	"account_number":  "bank_account_number",
	"bank_account":    "bank_account_number",
	"swift":           "swift_code",
	"ifsc":            "ifsc_code",
	"contract_number": "contract_id",
	"lease_number":    "lease_id",
	"agreement_id":    "agreement_number",
	"reg_number":      "registration_number",
	"license_no":      "license_number",
}

// CanonicalIdentifierKind maps a raw identifier key to its canonical slot.
// Returns false when the key is unknown and the value belongs in other_ids.
func CanonicalIdentifierKind(key string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	if canonical, ok := identifierSynonyms[normalized]; ok {
		return canonical, true
	}
	for _, kind := range KnownIdentifierKinds {
		if normalized == kind {
			return kind, true
		}
	}
	return "", false
}
