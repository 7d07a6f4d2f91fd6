package constants

import "strings"

// AccountHead is the expense classification assigned to a record when the
// oracle leaves account_type empty.
type AccountHead string

const (
	RentAndLeasing       AccountHead = "Rent & Leasing"
	ProfessionalServices AccountHead = "Professional Services"
	SoftwareSubscription AccountHead = "Software & Subscriptions"
	Utilities            AccountHead = "Utilities"
	Insurance            AccountHead = "Insurance"
	LegalAndCompliance   AccountHead = "Legal & Compliance"
	LogisticsAndFreight  AccountHead = "Logistics & Freight"
	RawMaterials         AccountHead = "Raw Materials"
	MaintenanceRepairs   AccountHead = "Maintenance & Repairs"
	Miscellaneous        AccountHead = "Miscellaneous"
)

var allAccountHeads = []AccountHead{
	RentAndLeasing,
	ProfessionalServices,
	SoftwareSubscription,
	Utilities,
	Insurance,
	LegalAndCompliance,
	LogisticsAndFreight,
	RawMaterials,
	MaintenanceRepairs,
	Miscellaneous,
}

// AccountHeads returns the heads as strings.
func AccountHeads() []string {
	result := make([]string, len(allAccountHeads))
	for i, head := range allAccountHeads {
		result[i] = string(head)
	}
	return result
}

// accountHeadKeywords drive the document-text scan when assigning a head.
// Order matters: first head whose keyword appears wins.
var accountHeadKeywords = []struct {
	Head     AccountHead
	Keywords []string
}{
	{RentAndLeasing, []string{"lease", "rent", "tenancy", "premises"}},
	{SoftwareSubscription, []string{"saas", "subscription", "license fee", "software"}},
	{Utilities, []string{"electricity", "water supply", "internet service", "utility"}},
	{Insurance, []string{"insurance", "premium", "policy number"}},
	{LegalAndCompliance, []string{"legal services", "attorney", "counsel", "compliance"}},
	{LogisticsAndFreight, []string{"freight", "shipping", "transport", "courier"}},
	{RawMaterials, []string{"raw material", "supply of goods", "procurement"}},
	{MaintenanceRepairs, []string{"maintenance", "repair", "servicing"}},
	{ProfessionalServices, []string{"consulting", "professional services", "advisory"}},
}

// ClassifyAccountHead picks a head by scanning document text for known
// keywords. Falls back to Miscellaneous.
func ClassifyAccountHead(documentText string) AccountHead {
	lowered := strings.ToLower(documentText)
	for _, entry := range accountHeadKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(lowered, kw) {
				return entry.Head
			}
		}
	}
	return Miscellaneous
}
