// Package statement renders a month of records as a single-page tabular
// PDF document.
package statement

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/budgetbuddy/internal/domain"
)

var columns = []struct {
	title string
	width float64
}{
	{"Date", 25},
	{"Category", 30},
	{"Income", 25},
	{"Expenditure", 30},
	{"Remarks", 80},
}

// Render produces the statement PDF for one month of records: a title,
// the generation date, and one table row per transaction. Amounts are
// written as plain numbers, no currency symbols.
func Render(records []domain.Record, month string, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Statement %s", month), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Statement for %s", month), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated: %s", generatedAt.Format(domain.DateLayout)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, rec := range records {
		pdf.CellFormat(columns[0].width, 7, rec.Date.Format(domain.DateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[1].width, 7, string(rec.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[2].width, 7, FormatAmount(rec.Income), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[3].width, 7, FormatAmount(rec.Expenditure), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[4].width, 7, truncate(rec.Remarks, 48), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("Render: write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatAmount renders an amount as a plain number without float noise.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
