/*
Package export renders a calculation result as a printable PDF report.

PURPOSE:
  Purely a formatting concern: consumes a finished schedule.Result plus
  the config and worker profile that produced it, and writes the monthly
  report - schedule table, quincena summaries with estimated paydays,
  monthly totals. Nothing here feeds back into the engine.

LAYOUT:
  Portrait A4. Header with period and worker category, then the per-day
  table (date, weekday, shift, hours, gross), then the two quincena
  blocks, then the monthly totals.

SEE ALSO:
  - schedule/result.go: The structure being rendered
  - api/: Serves the report over HTTP
*/
package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-payroll/schedule"
)

// =============================================================================
// REPORT
// =============================================================================

// WriteReport renders the monthly report PDF to w. profile may be nil.
func WriteReport(w io.Writer, cfg schedule.Config, profile *schedule.WorkerProfile, result schedule.Result) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Monthly Shift Payroll", false)
	pdf.AddPage()

	writeHeader(pdf, cfg, profile)
	writeDayTable(pdf, result)
	writeQuincenas(pdf, result)
	writeTotals(pdf, result)

	return pdf.Output(w)
}

func writeHeader(pdf *gofpdf.Fpdf, cfg schedule.Config, profile *schedule.WorkerProfile) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Shift Payroll Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s %d", cfg.Month.String(), cfg.Year))
	pdf.Ln(6)
	if profile != nil && profile.Category != "" {
		pdf.Cell(0, 7, fmt.Sprintf("Category: %s", profile.Category))
		pdf.Ln(6)
	}
	pdf.Cell(0, 7, fmt.Sprintf("Hourly rate: %s   Withholding: %s%%",
		money(cfg.HourlyRate), cfg.DiscountRate.Mul(decimal.NewFromInt(100)).StringFixed(1)))
	pdf.Ln(9)
}

func writeDayTable(pdf *gofpdf.Fpdf, result schedule.Result) {
	headers := []struct {
		label string
		width float64
	}{
		{"Date", 24},
		{"Day", 22},
		{"Shift", 42},
		{"Hours", 18},
		{"Overtime", 20},
		{"Final", 18},
		{"Gross", 28},
	}

	pdf.SetFont("Helvetica", "B", 9)
	for _, h := range headers {
		pdf.CellFormat(h.width, 7, h.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, day := range result.Days {
		pdf.CellFormat(24, 6, day.Date.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(22, 6, day.Weekday.String()[:3], "1", 0, "C", false, 0, "")
		pdf.CellFormat(42, 6, day.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(18, 6, day.BaseEquivalentHours.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, day.OvertimeRealHours.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(18, 6, day.FinalEquivalentHours.StringFixed(1), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, money(day.GrossPay), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func writeQuincenas(pdf *gofpdf.Fpdf, result schedule.Result) {
	writeQuincena(pdf, 1, result.Quincena1)
	writeQuincena(pdf, 2, result.Quincena2)
}

func writeQuincena(pdf *gofpdf.Fpdf, number int, q schedule.QuincenaSummary) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Payment %d (cutoff %s)", number, q.CutoffDate))
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Gross: %s   Withheld: %s   Net: %s",
		money(q.Gross), money(q.Withheld), money(q.Net)))
	pdf.Ln(5)
	if q.BonusApplied.IsPositive() {
		pdf.Cell(0, 6, fmt.Sprintf("Includes technician bonus: %s", money(q.BonusApplied)))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Estimated payday: %s", q.EstimatedPayday))
	pdf.Ln(8)
}

func writeTotals(pdf *gofpdf.Fpdf, result schedule.Result) {
	t := result.Totals
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Monthly totals")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Equivalent hours: %s   Overtime (real): %s",
		t.EquivalentHours.StringFixed(1), t.OvertimeRealHours.StringFixed(1)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Gross: %s   Withheld (%s%%): %s   Net: %s",
		money(t.Gross), t.DiscountPercent.StringFixed(1), money(t.Withheld), money(t.Net)))
	pdf.Ln(5)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
