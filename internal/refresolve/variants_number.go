package refresolve

import (
	"regexp"
	"strings"
)

// currencyPrefixes are common renderings prepended to amounts in source
// documents. Applied to both the grouped and plain number forms.
var currencyPrefixes = []string{
	"$", "USD ", "US$ ", "Rs.", "Rs. ", "Rs ", "INR ", "₹", "€", "EUR ", "£", "GBP ", "QAR ", "AED ",
}

// NumberVariants generates renderings a canonical plain number might take:
// comma, space and dot (EU style) thousands grouping, and common
// currency-symbol/code prefixes.
func NumberVariants(value string) []string {
	intPart, fracPart, ok := splitNumber(value)
	if !ok {
		return nil
	}

	var variants []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	comma := groupDigits(intPart, ",")
	bases := []string{value}
	if comma != intPart {
		withFrac := func(grouped, decSep string) string {
			if fracPart == "" {
				return grouped
			}
			return grouped + decSep + fracPart
		}
		bases = append(bases,
			withFrac(comma, "."),
			withFrac(groupDigits(intPart, " "), "."),
			// EU style: dot grouping, comma decimal
			withFrac(groupDigits(intPart, "."), ","),
		)
	}
	for _, base := range bases {
		add(base)
		for _, prefix := range currencyPrefixes {
			add(prefix + base)
		}
	}
	return variants
}

// InterleavedNumberPattern builds a regex matching the number with
// arbitrary separator characters injected every three digits from the
// right, catching OCR-mangled grouping ("12,688", "12 688", "12.688").
// Returns nil when the value is not a plain number.
func InterleavedNumberPattern(value string) *regexp.Regexp {
	intPart, fracPart, ok := splitNumber(value)
	if !ok || len(intPart) <= 3 {
		return nil
	}

	groups := digitGroups(intPart)
	pattern := strings.Join(groups, `[\s,.']?`)
	if fracPart != "" {
		pattern += `[.,]` + fracPart
	}
	re, err := regexp.Compile(`\b` + pattern + `\b`)
	if err != nil {
		return nil
	}
	return re
}

func splitNumber(value string) (intPart, fracPart string, ok bool) {
	if value == "" {
		return "", "", false
	}
	parts := strings.SplitN(value, ".", 2)
	intPart = parts[0]
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return intPart, fracPart, intPart != ""
}

// groupDigits inserts sep every three digits from the right.
func groupDigits(digits, sep string) string {
	return strings.Join(digitGroups(digits), sep)
}

func digitGroups(digits string) []string {
	n := len(digits)
	if n <= 3 {
		return []string{digits}
	}
	first := n % 3
	var groups []string
	if first > 0 {
		groups = append(groups, digits[:first])
	}
	for i := first; i < n; i += 3 {
		groups = append(groups, digits[i:i+3])
	}
	return groups
}
