package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/docuflow/docintel/internal/entity"
)

// Service produces XLSX bytes for extracted records, consumed read-only by
// the reporting layer.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// WriteRecordsXLSX returns an XLSX workbook (as bytes) with one row per
// record.
func (s *Service) WriteRecordsXLSX(records []*entity.ExtractedRecord) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Extractions"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Document Type",
		"Party / Vendor",
		"Counterparty / Customer",
		"Start Date",
		"Due Date",
		"Amount",
		"Currency",
		"Frequency",
		"Per Month",
		"Account Head",
		"Risk Score",
		"Risk Level",
		"Compliance",
		"References",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for rowIdx, rec := range records {
		party1, party2 := primaryParties(rec)
		score, level := "", ""
		if rec.Risk != nil {
			score = fmt.Sprintf("%d", rec.Risk.Score)
			level = rec.Risk.Level
		}
		values := []any{
			string(rec.DocumentType),
			party1,
			party2,
			rec.StartDate,
			rec.DueDate,
			rec.Amount,
			rec.Currency,
			rec.Frequency,
			rec.PerMonthAmount,
			rec.AccountType,
			score,
			level,
			rec.ComplianceViolation,
			len(rec.References),
		}
		for colIdx, v := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", rowIdx+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	s.logger.Info("export.xlsx.ok",
		"records", len(records),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func primaryParties(rec *entity.ExtractedRecord) (string, string) {
	if rec.DocumentType.IsInvoice() {
		return rec.Parties.Vendor, rec.Parties.Customer
	}
	return rec.Parties.Party1, rec.Parties.Party2
}
