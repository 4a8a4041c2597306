package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PayslipPDF renders a one-page A4 payslip.
func PayslipPDF(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, p.Company)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Payslip")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Employee: %s (%s)", p.EmployeeName, p.EmployeeCode))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s", p.PeriodLabel))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Hourly rate: %s", p.HourlyRate))
	pdf.Ln(10)

	if len(p.Days) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		for _, h := range []string{"Day", "In", "Out", "Regular", "Overtime"} {
			pdf.CellFormat(30, 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 10)
		for _, d := range p.Days {
			pdf.CellFormat(30, 6, fmt.Sprintf("%d", d.Day), "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, d.In, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, d.Out, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", d.Regular), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", d.Overtime), "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	writeLines(pdf, "Earnings", p.Earnings)
	writeLines(pdf, "Deductions", p.Deductions)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(100, 8, "Gross pay", "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, p.GrossPay, "", 1, "R", false, 0, "")
	pdf.CellFormat(100, 8, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, p.NetPay, "T", 1, "R", false, 0, "")

	if !p.Processed {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 6, "DRAFT - not yet processed")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeLines(pdf *gofpdf.Fpdf, title string, lines []PayslipLine) {
	if len(lines) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, title)
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	for _, l := range lines {
		pdf.CellFormat(100, 6, l.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, l.Amount, "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}
