package constants

import "strings"

// DocumentType is the classification assigned by the extraction oracle.
// Immutable once set on a record.
type DocumentType string

const (
	DocTypeInvoice  DocumentType = "INVOICE"
	DocTypeLease    DocumentType = "LEASE"
	DocTypeNDA      DocumentType = "NDA"
	DocTypeContract DocumentType = "CONTRACT"
)

var allDocumentTypes = []DocumentType{
	DocTypeInvoice,
	DocTypeLease,
	DocTypeNDA,
	DocTypeContract,
}

// DocumentTypes returns the known types as strings (schema enums, prompts).
func DocumentTypes() []string {
	result := make([]string, len(allDocumentTypes))
	for i, dt := range allDocumentTypes {
		result[i] = string(dt)
	}
	return result
}

// ParseDocumentType canonicalizes a free-form type label. Unknown input
// falls back to CONTRACT, matching the classifier's own fallback.
func ParseDocumentType(input string) (DocumentType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(input))

	synonyms := map[string]DocumentType{
		"BILL":                      DocTypeInvoice,
		"TAX INVOICE":               DocTypeInvoice,
		"RENTAL AGREEMENT":          DocTypeLease,
		"LEASE AGREEMENT":           DocTypeLease,
		"NON-DISCLOSURE AGREEMENT":  DocTypeNDA,
		"CONFIDENTIALITY AGREEMENT": DocTypeNDA,
		"AGREEMENT":                 DocTypeContract,
		"MSA":                       DocTypeContract,
	}
	if dt, ok := synonyms[normalized]; ok {
		return dt, true
	}

	for _, dt := range allDocumentTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}
	return DocTypeContract, false
}

// IsInvoice reports whether the type uses the invoice-specific field shape
// (vendor/customer parties, invoice number, line items).
func (d DocumentType) IsInvoice() bool { return d == DocTypeInvoice }

// IsContractFamily reports whether the type carries clause fields
// (confidentiality, termination, liability, indemnity).
func (d DocumentType) IsContractFamily() bool {
	return d == DocTypeLease || d == DocTypeNDA || d == DocTypeContract
}
