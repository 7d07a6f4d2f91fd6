package normalize

import (
	"regexp"
	"strings"
	"sync"

	"github.com/docuflow/docintel/internal/common"
	"github.com/docuflow/docintel/internal/entity"
)

// DefaultCurrency is the documented fallback when no indicator resolves.
const DefaultCurrency = "USD"

// currencyEntry describes one resolvable currency: the code itself,
// keywords (code, full name, abbreviations), symbols, and location/demonym
// hints used as a last resort over document text.
type currencyEntry struct {
	Code      string
	Keywords  []string
	Symbols   []string
	Locations []string
}

// currencyTable is static configuration, not branching logic. Codes must be
// 3 uppercase letters and carry at least one keyword; checkCurrencyTable
// enforces that once at first use.
var currencyTable = []currencyEntry{
	{"USD", []string{"USD", "US Dollar", "US Dollars", "United States Dollar"}, []string{"US$", "$"}, []string{"United States", "USA", "America"}},
	{"EUR", []string{"EUR", "Euro", "Euros"}, []string{"€"}, []string{"Eurozone", "Germany", "France", "Spain", "Italy", "Netherlands"}},
	{"GBP", []string{"GBP", "Pound Sterling", "British Pound"}, []string{"£"}, []string{"United Kingdom", "UK", "Britain", "London"}},
	{"INR", []string{"INR", "Indian Rupee", "Rupees", "Rupee"}, []string{"₹", "Rs.", "Rs"}, []string{"India", "Mumbai", "Delhi", "Bengaluru"}},
	{"QAR", []string{"QAR", "Qatari Riyal", "QR"}, []string{}, []string{"Qatar", "Doha"}},
	{"AED", []string{"AED", "UAE Dirham", "Dirham", "Dirhams"}, []string{"د.إ"}, []string{"United Arab Emirates", "UAE", "Dubai", "Abu Dhabi"}},
	{"SAR", []string{"SAR", "Saudi Riyal"}, []string{}, []string{"Saudi Arabia", "Riyadh", "Jeddah"}},
	{"KWD", []string{"KWD", "Kuwaiti Dinar"}, []string{}, []string{"Kuwait"}},
	{"BHD", []string{"BHD", "Bahraini Dinar"}, []string{}, []string{"Bahrain", "Manama"}},
	{"OMR", []string{"OMR", "Omani Rial"}, []string{}, []string{"Oman", "Muscat"}},
	{"JPY", []string{"JPY", "Japanese Yen", "Yen"}, []string{"¥"}, []string{"Japan", "Tokyo", "Osaka"}},
	{"CNY", []string{"CNY", "Chinese Yuan", "Yuan", "Renminbi", "RMB"}, []string{}, []string{"China", "Beijing", "Shanghai"}},
	{"HKD", []string{"HKD", "Hong Kong Dollar"}, []string{"HK$"}, []string{"Hong Kong"}},
	{"SGD", []string{"SGD", "Singapore Dollar"}, []string{"S$"}, []string{"Singapore"}},
	{"AUD", []string{"AUD", "Australian Dollar"}, []string{"A$"}, []string{"Australia", "Sydney", "Melbourne"}},
	{"NZD", []string{"NZD", "New Zealand Dollar"}, []string{"NZ$"}, []string{"New Zealand", "Auckland"}},
	{"CAD", []string{"CAD", "Canadian Dollar"}, []string{"C$"}, []string{"Canada", "Toronto", "Vancouver"}},
	{"CHF", []string{"CHF", "Swiss Franc", "Francs"}, []string{}, []string{"Switzerland", "Zurich", "Geneva"}},
	{"SEK", []string{"SEK", "Swedish Krona"}, []string{}, []string{"Sweden", "Stockholm"}},
	{"NOK", []string{"NOK", "Norwegian Krone"}, []string{}, []string{"Norway", "Oslo"}},
	{"DKK", []string{"DKK", "Danish Krone"}, []string{}, []string{"Denmark", "Copenhagen"}},
	{"RUB", []string{"RUB", "Russian Ruble", "Rouble"}, []string{"₽"}, []string{"Russia", "Moscow"}},
	{"TRY", []string{"TRY", "Turkish Lira", "Lira"}, []string{"₺"}, []string{"Turkey", "Istanbul", "Ankara"}},
	{"ZAR", []string{"ZAR", "South African Rand", "Rand"}, []string{}, []string{"South Africa", "Johannesburg", "Cape Town"}},
	{"BRL", []string{"BRL", "Brazilian Real", "Reais"}, []string{"R$"}, []string{"Brazil", "Sao Paulo", "Rio de Janeiro"}},
	{"MXN", []string{"MXN", "Mexican Peso"}, []string{"Mex$"}, []string{"Mexico"}},
	{"KRW", []string{"KRW", "South Korean Won", "Won"}, []string{"₩"}, []string{"South Korea", "Korea", "Seoul"}},
	{"THB", []string{"THB", "Thai Baht", "Baht"}, []string{"฿"}, []string{"Thailand", "Bangkok"}},
	{"MYR", []string{"MYR", "Malaysian Ringgit", "Ringgit"}, []string{"RM"}, []string{"Malaysia", "Kuala Lumpur"}},
	{"IDR", []string{"IDR", "Indonesian Rupiah", "Rupiah"}, []string{"Rp"}, []string{"Indonesia", "Jakarta"}},
	{"PHP", []string{"PHP", "Philippine Peso"}, []string{"₱"}, []string{"Philippines", "Manila"}},
	{"VND", []string{"VND", "Vietnamese Dong", "Dong"}, []string{"₫"}, []string{"Vietnam", "Hanoi"}},
	{"PKR", []string{"PKR", "Pakistani Rupee"}, []string{}, []string{"Pakistan", "Karachi", "Lahore"}},
	{"BDT", []string{"BDT", "Bangladeshi Taka", "Taka"}, []string{"৳"}, []string{"Bangladesh", "Dhaka"}},
	{"LKR", []string{"LKR", "Sri Lankan Rupee"}, []string{}, []string{"Sri Lanka", "Colombo"}},
	{"EGP", []string{"EGP", "Egyptian Pound"}, []string{}, []string{"Egypt", "Cairo"}},
	{"NGN", []string{"NGN", "Nigerian Naira", "Naira"}, []string{"₦"}, []string{"Nigeria", "Lagos", "Abuja"}},
}

var (
	tableCheckOnce sync.Once
	tableCheckErr  error
	codeShape      = regexp.MustCompile(`^[A-Z]{3}$`)
)

// checkCurrencyTable validates the static table. A failure is a code
// defect and surfaces as a typed error instead of being degraded.
func checkCurrencyTable() error {
	tableCheckOnce.Do(func() {
		seen := make(map[string]struct{}, len(currencyTable))
		for _, entry := range currencyTable {
			if !codeShape.MatchString(entry.Code) {
				tableCheckErr = common.TableError("currency", entry.Code, "code must be 3 uppercase letters")
				return
			}
			if len(entry.Keywords) == 0 {
				tableCheckErr = common.TableError("currency", entry.Code, "at least one keyword required")
				return
			}
			if _, dup := seen[entry.Code]; dup {
				tableCheckErr = common.TableError("currency", entry.Code, "duplicate code")
				return
			}
			seen[entry.Code] = struct{}{}
		}
	})
	return tableCheckErr
}

// KnownCurrency reports whether code is in the table (case-insensitive).
func KnownCurrency(code string) bool {
	upper := strings.ToUpper(strings.TrimSpace(code))
	for _, entry := range currencyTable {
		if entry.Code == upper {
			return true
		}
	}
	return false
}

func containsWord(haystackLower, needle string) bool {
	needleLower := strings.ToLower(needle)
	idx := 0
	for {
		pos := strings.Index(haystackLower[idx:], needleLower)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(needleLower)
		beforeOK := start == 0 || !isWordByte(haystackLower[start-1])
		afterOK := end == len(haystackLower) || !isWordByte(haystackLower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// matchCurrencyText matches keywords (word-bounded) then symbols (plain
// substring) against text.
func matchCurrencyText(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lowered := strings.ToLower(text)
	for _, entry := range currencyTable {
		for _, kw := range entry.Keywords {
			if containsWord(lowered, kw) {
				return entry.Code, true
			}
		}
	}
	// Multi-char symbols first so "HK$" wins over the bare "$".
	for _, entry := range currencyTable {
		for _, sym := range entry.Symbols {
			if len(sym) > 1 && strings.Contains(text, sym) {
				return entry.Code, true
			}
		}
	}
	for _, entry := range currencyTable {
		for _, sym := range entry.Symbols {
			if len(sym) == 1 && strings.Contains(text, sym) {
				return entry.Code, true
			}
		}
	}
	return "", false
}

// matchCurrencyLocation matches location/demonym hints against text.
func matchCurrencyLocation(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lowered := strings.ToLower(text)
	for _, entry := range currencyTable {
		for _, loc := range entry.Locations {
			if containsWord(lowered, loc) {
				return entry.Code, true
			}
		}
	}
	return "", false
}

// reExplicitCurrency catches patterns like "CURRENCY: QAR" in document text.
var reExplicitCurrency = regexp.MustCompile(`(?i)\bcurrency\s*[:\-]?\s*([A-Za-z]{3})\b`)

// ResolveCurrency runs the resolution cascade, each step attempted only
// when the previous found nothing:
//
//  1. keyword/symbol match against the raw amount string itself
//  2. same match against nested amount-bearing sub-fields
//  3. an oracle-provided currency, if it is a known code
//  4. document text: explicit CURRENCY pattern, keyword/symbol scan,
//     location/demonym scan
//  5. DefaultCurrency
func ResolveCurrency(rec *entity.ExtractedRecord, rawAmount, documentText string) (string, error) {
	if err := checkCurrencyTable(); err != nil {
		return "", err
	}

	if code, ok := matchCurrencyText(rawAmount); ok {
		return code, nil
	}

	for _, item := range rec.LineItems {
		if code, ok := matchCurrencyText(item.Amount); ok {
			return code, nil
		}
		if code, ok := matchCurrencyText(item.UnitPrice); ok {
			return code, nil
		}
	}
	for _, v := range rec.TaxBreakdown {
		if code, ok := matchCurrencyText(v); ok {
			return code, nil
		}
	}

	if KnownCurrency(rec.Currency) {
		return strings.ToUpper(strings.TrimSpace(rec.Currency)), nil
	}

	if m := reExplicitCurrency.FindStringSubmatch(documentText); m != nil {
		candidate := strings.ToUpper(m[1])
		if KnownCurrency(candidate) {
			return candidate, nil
		}
	}
	if code, ok := matchCurrencyText(documentText); ok {
		return code, nil
	}
	if code, ok := matchCurrencyLocation(documentText); ok {
		return code, nil
	}

	return DefaultCurrency, nil
}
