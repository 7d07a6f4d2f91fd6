package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docuflow/docintel/internal/entity"
)

func TestNormalizeDocumentIDs(t *testing.T) {
	rec := &entity.ExtractedRecord{
		DocumentIDs: map[string]string{
			"Invoice Number": "INV-2209",
			"GSTIN":          "29ABCDE1234F1Z5",
			"mystery_ref":    "X-17",
			"po_number":      "  PO-88 ",
			"blank":          "   ",
		},
	}
	NormalizeDocumentIDs(rec)

	assert.Equal(t, map[string]string{
		"invoice_id": "INV-2209",
		"gst_number": "29ABCDE1234F1Z5",
		"po_number":  "PO-88",
	}, rec.DocumentIDs)
	assert.Equal(t, []string{"mystery_ref: X-17"}, rec.OtherIDs)
}

func TestNormalizeDocumentIDsSynonymCollision(t *testing.T) {
	rec := &entity.ExtractedRecord{
		DocumentIDs: map[string]string{
			"invoice_id": "INV-1",
			"invoice_no": "INV-2",
		},
	}
	NormalizeDocumentIDs(rec)
	// sorted key order makes invoice_id the first writer
	assert.Equal(t, "INV-1", rec.DocumentIDs["invoice_id"])
	assert.Len(t, rec.DocumentIDs, 1)
}

func TestNormalizeDocumentIDsEmptyMap(t *testing.T) {
	rec := &entity.ExtractedRecord{}
	NormalizeDocumentIDs(rec)
	assert.Nil(t, rec.DocumentIDs)
	assert.Nil(t, rec.OtherIDs)
}

func TestAssignAccountHeadKeepsExisting(t *testing.T) {
	rec := &entity.ExtractedRecord{AccountType: "Rent & Leasing"}
	AssignAccountHead(rec, "professional services consulting")
	assert.Equal(t, "Rent & Leasing", rec.AccountType)
}

func TestAssignAccountHeadClassifies(t *testing.T) {
	rec := &entity.ExtractedRecord{}
	AssignAccountHead(rec, "Monthly rent for the leased premises at Tower B.")
	assert.Equal(t, "Rent & Leasing", rec.AccountType)
}
