package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/amirhossein-jamali/sms-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/sms-ledger/internal/domain/port/report"
)

const (
	// SheetName is the worksheet holding the transaction rows
	SheetName = "Transactions"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout      = "2006-01-02 15:04"
	numFmtTwoPlaces = 2 // built-in "0.00"
)

var headers = []any{
	"Date", "Amount", "Direction", "Category", "Merchant", "Account", "Reference", "Auto Captured", "Description",
}

// ExcelWriter renders transactions as a single-sheet XLSX workbook
type ExcelWriter struct {
	location *time.Location
}

// NewExcelWriter creates a writer that prints dates in loc
func NewExcelWriter(loc *time.Location) *ExcelWriter {
	if loc == nil {
		loc = time.UTC
	}
	return &ExcelWriter{location: loc}
}

// Write renders one header row followed by one row per transaction
func (x *ExcelWriter) Write(w io.Writer, transactions []*entity.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, txn := range transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			txn.OccurredTime(x.location).Format(dateLayout),
			txn.Amount.InexactFloat64(),
			string(txn.Direction),
			string(txn.Category),
			txn.Merchant,
			string(txn.Account),
			txn.Reference(),
			yesNo(txn.AutoCaptured),
			txn.Description,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoPlaces})
	if err != nil {
		return fmt.Errorf("create amount style: %w", err)
	}
	if len(transactions) > 0 {
		lastAmount := fmt.Sprintf("B%d", len(transactions)+1)
		if err := f.SetCellStyle(SheetName, "B2", lastAmount, style); err != nil {
			return fmt.Errorf("style amounts: %w", err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 18); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "E", "E", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "I", "I", 60); err != nil {
		return err
	}

	return f.Write(w)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// ContentType returns the XLSX MIME type
func (x *ExcelWriter) ContentType() string {
	return xlsxContentType
}

// Extension returns ".xlsx"
func (x *ExcelWriter) Extension() string {
	return ".xlsx"
}

var _ report.Writer = (*ExcelWriter)(nil)
