package refresolve

import (
	"fmt"
	"time"
)

// DateVariants generates the human renderings an ISO date might take in
// source text: numeric forms with /, - and . separators in both day-first
// and month-first order, padded and unpadded, long and abbreviated month
// names with and without commas, and ordinal-suffixed days. Returns nil for
// anything that does not parse as YYYY-MM-DD.
func DateVariants(isoDate string) []string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return nil
	}
	day := t.Day()
	month := int(t.Month())
	year := t.Year()
	monthName := t.Month().String()
	monthAbbr := monthName[:3]

	var variants []string
	seen := make(map[string]struct{})
	add := func(v string) {
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}

	// numeric, both orders, padded and unpadded
	for _, sep := range []string{"/", "-", "."} {
		add(fmt.Sprintf("%02d%s%02d%s%d", month, sep, day, sep, year)) // 11/06/2025
		add(fmt.Sprintf("%02d%s%02d%s%d", day, sep, month, sep, year)) // 06/11/2025
		add(fmt.Sprintf("%d%s%d%s%d", month, sep, day, sep, year))     // 11/6/2025
		add(fmt.Sprintf("%d%s%d%s%d", day, sep, month, sep, year))     // 6/11/2025
	}
	add(fmt.Sprintf("%d/%02d/%02d", year, month, day))
	add(fmt.Sprintf("%d-%02d-%02d", year, month, day))
	add(fmt.Sprintf("%d.%02d.%02d", year, month, day))

	// long month name
	add(fmt.Sprintf("%s %d, %d", monthName, day, year))   // November 6, 2025
	add(fmt.Sprintf("%s %02d, %d", monthName, day, year)) // November 06, 2025
	add(fmt.Sprintf("%s %d %d", monthName, day, year))    // November 6 2025
	add(fmt.Sprintf("%d %s %d", day, monthName, year))    // 6 November 2025
	add(fmt.Sprintf("%02d %s %d", day, monthName, year))  // 06 November 2025

	// abbreviated month name
	add(fmt.Sprintf("%s %d, %d", monthAbbr, day, year))        // Nov 6, 2025
	add(fmt.Sprintf("%s %d %d", monthAbbr, day, year))         // Nov 6 2025
	add(fmt.Sprintf("%d %s %d", day, monthAbbr, year))         // 6 Nov 2025
	add(fmt.Sprintf("%02d %s %d", day, monthAbbr, year))       // 06 Nov 2025
	add(fmt.Sprintf("%02d-%s-%d", day, monthAbbr, year))       // 06-Nov-2025
	add(fmt.Sprintf("%d-%s-%d", day, monthAbbr, year))         // 6-Nov-2025
	add(fmt.Sprintf("%s-%02d-%d", monthAbbr, day, year))       // Nov-06-2025
	add(fmt.Sprintf("%02d-%s-%02d", day, monthAbbr, year%100)) // 06-Nov-25
	add(fmt.Sprintf("%d.%s.%d", day, monthAbbr, year))         // 6.Nov.2025

	// ordinal day
	ord := ordinal(day)
	add(fmt.Sprintf("%d%s %s %d", day, ord, monthName, year))  // 6th November 2025
	add(fmt.Sprintf("%s %d%s, %d", monthName, day, ord, year)) // November 6th, 2025
	add(fmt.Sprintf("%d%s of %s %d", day, ord, monthName, year))
	add(fmt.Sprintf("%d%s of %s, %d", day, ord, monthName, year)) // 6th of November, 2025

	return variants
}

func ordinal(day int) string {
	switch {
	case day%100 >= 11 && day%100 <= 13:
		return "th"
	case day%10 == 1:
		return "st"
	case day%10 == 2:
		return "nd"
	case day%10 == 3:
		return "rd"
	default:
		return "th"
	}
}
