package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
)

// numberToString renders a JSON number without exponent notation, so large
// amounts survive the string coercion digit-for-digit.
func numberToString(v any) (string, bool) {
	switch t := v.(type) {
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case int:
		return strconv.Itoa(t), true
	}
	return "", false
}

// NormalizeAndSanitizeJSON
// - Renames known synonyms (total -> amount, invoice_date -> start_date)
// - Drops null/empty optionals
// - Coerces numeric -> string for money-ish fields
// - Removes unknown keys (strict additionalProperties = false friendliness)
func NormalizeAndSanitizeJSON(raw []byte, logger *slog.Logger) ([]byte, []string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 8)
	renamed := func(from, to string) {
		if v, ok := m[from]; ok {
			// don't overwrite existing value if already present
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			dropped = append(dropped, from+"->"+to)
		}
	}

	// 1) rename synonyms to our schema
	renamed("total", "amount")
	renamed("total_amount", "amount")
	renamed("invoice_date", "start_date")
	renamed("effective_date", "start_date")
	renamed("expiry_date", "due_date")
	renamed("end_date", "due_date")
	renamed("payment_frequency", "frequency")
	renamed("currency_code", "currency")
	renamed("parties", "party_names")
	renamed("account_head", "account_type")
	renamed("compliance_violation", "rules_and_compliance_violation")

	// 2) drop null / "" ; coerce money fields to strings
	moneyFields := []string{"amount"}
	coerceMoney := func(k string) {
		v, ok := m[k]
		if !ok {
			return
		}
		if s, numeric := numberToString(v); numeric {
			m[k] = s
			return
		}
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		case nil:
			delete(m, k)
			dropped = append(dropped, k+"(null)")
		default:
			// unexpected type -> drop
			delete(m, k)
			dropped = append(dropped, k+"(type)")
		}
	}
	for _, k := range moneyFields {
		coerceMoney(k)
	}

	// nested money-ish fields: a numeric line-item amount must not break
	// record decoding
	if items, ok := m["line_items"].([]any); ok {
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			for _, k := range []string{"amount", "unit_price", "quantity"} {
				if s, numeric := numberToString(obj[k]); numeric {
					obj[k] = s
					dropped = append(dropped, "line_items."+k+"(coerced)")
				}
			}
		}
	}
	if tb, ok := m["tax_breakdown"].(map[string]any); ok {
		for k, v := range tb {
			if s, numeric := numberToString(v); numeric {
				tb[k] = s
				dropped = append(dropped, "tax_breakdown."+k+"(coerced)")
			}
		}
	}

	// 3) normalize currency casing
	if v, ok := m["currency"].(string); ok {
		code := strings.ToUpper(strings.TrimSpace(v))
		if code != "" {
			m["currency"] = code
		} else {
			delete(m, "currency")
			dropped = append(dropped, "currency(empty)")
		}
	}

	// 4) remove unknown keys (everything not in the schema set below)
	allowed := map[string]struct{}{
		"document_type": {}, "party_names": {}, "additional_parties": {},
		"start_date": {}, "due_date": {}, "amount": {}, "currency": {},
		"frequency": {}, "document_ids": {}, "account_type": {},
		"line_items": {}, "tax_breakdown": {}, "clauses": {},
		"rules_and_compliance_violation": {},
		"confidence":                     {}, // harmless if the model added it
	}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	// 5) trim obvious strings
	trimKeys := []string{"document_type", "start_date", "due_date", "frequency", "account_type", "rules_and_compliance_violation"}
	for _, k := range trimKeys {
		if v, ok := m[k].(string); ok {
			s := strings.TrimSpace(v)
			if s == "" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	if len(dropped) > 0 {
		logger.Warn("llm.extract.normalize_sanitize", "dropped", dropped)
	}
	return out, dropped, nil
}
