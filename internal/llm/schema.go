package llm

import "github.com/docuflow/docintel/constants"

// BuildDocumentJSONSchema returns a JSON-Schema (draft 2020-12 subset) for
// one document type's raw field map, as a generic map. Passed to the model
// as a structured-output constraint and used locally to validate.
func BuildDocumentJSONSchema(dt constants.DocumentType) map[string]any {
	props := map[string]any{
		"document_type": map[string]any{"type": "string", "enum": constants.DocumentTypes()},
		"start_date":    isoDateProp(),
		"due_date":      isoDateProp(),
		"amount":        map[string]any{"type": "string"},
		"currency":      map[string]any{"type": "string"},
		"frequency":     map[string]any{"type": "string"},
		"party_names": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "string",
			},
		},
		"additional_parties": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"document_ids": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "string",
			},
		},
		"account_type":                   map[string]any{"type": "string"},
		"rules_and_compliance_violation": map[string]any{"type": "string"},
	}

	if dt.IsInvoice() {
		props["line_items"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"description": map[string]any{"type": "string"},
					"quantity":    map[string]any{"type": "string"},
					"unit_price":  map[string]any{"type": "string"},
					"amount":      map[string]any{"type": "string"},
				},
			},
		}
		props["tax_breakdown"] = map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "string",
			},
		}
	}
	if dt.IsContractFamily() {
		props["clauses"] = map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties": map[string]any{
				"confidentiality": map[string]any{"type": "string"},
				"termination":     map[string]any{"type": "string"},
				"liability":       map[string]any{"type": "string"},
				"indemnity":       map[string]any{"type": "string"},
			},
		}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"document_type"},
	}
}

func isoDateProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}
}
