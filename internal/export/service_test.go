package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/docuflow/docintel/constants"
	"github.com/docuflow/docintel/internal/entity"
)

func TestWriteRecordsXLSX(t *testing.T) {
	rec := entity.NewRecord()
	rec.DocumentType = constants.DocTypeInvoice
	rec.Parties = entity.Parties{Vendor: "Globex Pte Ltd", Customer: "Initech LLC"}
	rec.StartDate = "2025-11-06"
	rec.Amount = "12688.76"
	rec.Currency = "USD"
	rec.AccountType = "Professional Services"
	rec.Risk = &entity.RiskScore{Score: 30, Level: "Medium", Category: "Medium Risk"}

	data, err := NewService(nil).WriteRecordsXLSX([]*entity.ExtractedRecord{rec})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extractions")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Document Type", rows[0][0])
	assert.Equal(t, "INVOICE", rows[1][0])
	assert.Equal(t, "Globex Pte Ltd", rows[1][1])
	assert.Equal(t, "Initech LLC", rows[1][2])
	assert.Equal(t, "12688.76", rows[1][5])
	assert.Equal(t, "30", rows[1][10])
	assert.Equal(t, "Medium", rows[1][11])
}

func TestWriteRecordsXLSXContractParties(t *testing.T) {
	rec := entity.NewRecord()
	rec.DocumentType = constants.DocTypeNDA
	rec.Parties = entity.Parties{Party1: "Alpha", Party2: "Beta"}

	data, err := NewService(nil).WriteRecordsXLSX([]*entity.ExtractedRecord{rec})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extractions")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[1][1])
	assert.Equal(t, "Beta", rows[1][2])
}

func TestWriteRecordsXLSXEmpty(t *testing.T) {
	data, err := NewService(nil).WriteRecordsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Extractions")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
