package refresolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docuflow/docintel/internal/entity"
)

func newTestResolver() *Resolver {
	return NewResolver(Config{}, nil, nil)
}

func TestFindReferenceExactMatch(t *testing.T) {
	pm := entity.PageMap{
		1: "This agreement is made between the parties hereto.",
		2: "All payments are payable to ACME   CORPORATION within thirty days.",
	}
	ref := newTestResolver().FindReference(pm, "vendor", "Acme Corporation")
	require.NotNil(t, ref)
	require.NotNil(t, ref.Page)
	assert.Equal(t, 2, *ref.Page)
	// the snippet quotes the page as printed, ragged spacing included
	assert.Contains(t, ref.Text, "ACME   CORPORATION")
}

func TestFindReferenceDateVariants(t *testing.T) {
	filler := "This agreement is made between the parties hereto."
	for _, variant := range []string{
		"November 6, 2025",
		"11/06/2025",
		"6/11/2025",
		"06-Nov-2025",
	} {
		pm := entity.PageMap{
			1: filler,
			2: "Signed on " + variant + " in the presence of witnesses.",
		}
		ref := newTestResolver().FindReference(pm, "start_date", "2025-11-06")
		require.NotNil(t, ref, variant)
		require.NotNil(t, ref.Page, variant)
		assert.Equal(t, 2, *ref.Page, variant)
		assert.Contains(t, ref.Text, variant)
	}
}

func TestFindReferenceNumberVariantSpaceGrouping(t *testing.T) {
	pm := entity.PageMap{
		1: "This agreement is made between the parties hereto.",
		2: "Amount payable 12 688.76 only, net of taxes.",
	}
	ref := newTestResolver().FindReference(pm, "amount", "12688.76")
	require.NotNil(t, ref)
	require.NotNil(t, ref.Page)
	assert.Equal(t, 2, *ref.Page)
}

func TestFindReferenceFuzzyOCRErrors(t *testing.T) {
	pm := entity.PageMap{
		1: "This deed binds Quantum Edqe Solutlons Prlvate Limited and its successors.",
		2: "Standard boilerplate continues here without names.",
	}
	ref := newTestResolver().FindReference(pm, "party_1", "Quantum Edge Solutions Private Limited")
	require.NotNil(t, ref)
	require.NotNil(t, ref.Page)
	assert.Equal(t, 1, *ref.Page)
	assert.Contains(t, ref.Text, "Edqe")
}

func TestFindReferenceWordTruncation(t *testing.T) {
	pm := entity.PageMap{
		1: "Introductory recitals without any names.",
		2: "International Business Machines shall deliver the goods.",
	}
	value := "International Business Machines Corporation incorporated in New York"
	ref := newTestResolver().FindReference(pm, "party_2", value)
	require.NotNil(t, ref)
	require.NotNil(t, ref.Page)
	assert.Equal(t, 2, *ref.Page)
	assert.Contains(t, ref.Text, "International Business Machines")
}

func TestFindReferenceFullDocumentFallback(t *testing.T) {
	pm := entity.PageMap{
		1: "The schedule ends with Alpha",
		2: "Beta continues the schedule on the next page.",
	}
	ref := newTestResolver().FindReference(pm, "contract_id", "Alpha\nBeta")
	require.NotNil(t, ref)
	require.NotNil(t, ref.Page)
	assert.Equal(t, 1, *ref.Page)
}

func TestFindReferenceSinglePageShortcut(t *testing.T) {
	pm := entity.PageMap{1: "Nothing in here resembles the value at all."}
	ref := newTestResolver().FindReference(pm, "invoice_id", "ZXV-40412")
	require.NotNil(t, ref)
	require.NotNil(t, ref.Page)
	assert.Equal(t, 1, *ref.Page)
	assert.Equal(t, "ZXV-40412", ref.Text)
}

func TestFindReferenceMultiPageMiss(t *testing.T) {
	pm := entity.PageMap{
		1: "Nothing in here resembles the value.",
		2: "Nor anything on this page either.",
	}
	ref := newTestResolver().FindReference(pm, "invoice_id", "ZXV-40412")
	assert.Nil(t, ref)
}

func TestFindReferenceEmptyInputs(t *testing.T) {
	r := newTestResolver()
	assert.Nil(t, r.FindReference(entity.PageMap{1: "text"}, "amount", "  "))
	assert.Nil(t, r.FindReference(entity.PageMap{}, "amount", "100"))
}

func TestFindReferenceSnippetCapped(t *testing.T) {
	long := strings.Repeat("lorem ipsum dolor sit amet ", 20)
	pm := entity.PageMap{
		1: long + "REF-CODE-XK99215 " + long,
		2: "Another page with nothing relevant.",
	}
	ref := newTestResolver().FindReference(pm, "registration_number", "REF-CODE-XK99215")
	require.NotNil(t, ref)
	assert.LessOrEqual(t, len(ref.Text), 200)
	assert.Contains(t, ref.Text, "REF-CODE-XK99215")
	require.NotNil(t, ref.Page)
	assert.Equal(t, 1, *ref.Page)
}

func TestFindReferenceEarlierPageWinsPerTechnique(t *testing.T) {
	pm := entity.PageMap{
		1: "Grand total 4,500.00 appears here first.",
		2: "Grand total 4,500.00 appears here again.",
	}
	ref := newTestResolver().FindReference(pm, "amount", "4500.00")
	require.NotNil(t, ref)
	require.NotNil(t, ref.Page)
	assert.Equal(t, 1, *ref.Page)
}

func TestFindReferenceInvoicePage(t *testing.T) {
	pm := entity.PageMap{
		1: "INVOICE\nInvoice Date: 06/11/2025\nVendor: Globex Pte Ltd\nTotal: $12,688.76\nCurrency: USD",
	}
	r := newTestResolver()

	dateRef := r.FindReference(pm, "start_date", "2025-11-06")
	require.NotNil(t, dateRef)
	require.NotNil(t, dateRef.Page)
	assert.Equal(t, 1, *dateRef.Page)
	assert.Contains(t, dateRef.Text, "06/11/2025")

	amtRef := r.FindReference(pm, "amount", "12688.76")
	require.NotNil(t, amtRef)
	require.NotNil(t, amtRef.Page)
	assert.Equal(t, 1, *amtRef.Page)
	assert.Contains(t, amtRef.Text, "12,688.76")
}

func TestFindReferenceSnippetQuotesSourceVerbatim(t *testing.T) {
	pm := entity.PageMap{
		1: "Wire the balance of $12,688.76 to the account below.\nBeneficiary: Globex   Pte. Ltd.",
	}
	r := newTestResolver()

	amtRef := r.FindReference(pm, "amount", "12688.76")
	require.NotNil(t, amtRef)
	assert.Contains(t, amtRef.Text, "$12,688.76")
	assert.NotContains(t, amtRef.Text, "1268876")

	vendorRef := r.FindReference(pm, "vendor", "Globex Pte Ltd")
	require.NotNil(t, vendorRef)
	assert.Contains(t, vendorRef.Text, "Globex   Pte. Ltd")
}
