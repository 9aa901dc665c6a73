package output

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/nhspension/benefits-calculator/internal/domain"
)

const (
	pdfPageWidth    = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfContentWidth = pdfPageWidth - pdfMarginLeft - pdfMarginRight
)

// pdfText converts UTF-8 text to PDF-safe encoding. The core fonts use
// Latin-1, so the pound sign must be mapped to its code page byte.
func pdfText(s string) string {
	return strings.ReplaceAll(s, "£", "\xa3")
}

func pdfCurrency(amount decimal.Decimal) string {
	return pdfText(FormatCurrency(amount))
}

// PDFFormatter renders the benefit statement as a printable A4 document.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(statement *domain.BenefitStatement) ([]byte, error) {
	in := statement.Input
	r := statement.Result

	rules, err := domain.RulesFor(r.Scheme)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pdfContentWidth, 12, "NHS Pension Benefit Statement", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(pdfContentWidth, 8,
		fmt.Sprintf("%s Section (%s)", r.Scheme, rules.Description), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(pdfContentWidth, 6,
		fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	pdf.Ln(8)

	writeRow := func(label, value string) {
		pdf.SetFont("Arial", "", 11)
		pdf.SetTextColor(50, 50, 50)
		pdf.CellFormat(pdfContentWidth*0.6, 7, pdfText(label), "LR", 0, "L", true, 0, "")
		pdf.CellFormat(pdfContentWidth*0.4, 7, value, "LR", 1, "R", true, 0, "")
	}
	writeSection := func(title string) {
		pdf.SetFillColor(245, 247, 250)
		pdf.SetDrawColor(200, 200, 200)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 51, 102)
		pdf.CellFormat(pdfContentWidth, 8, title, "1", 1, "L", true, 0, "")
	}
	closeSection := func() {
		pdf.CellFormat(pdfContentWidth, 1, "", "LRB", 1, "C", true, 0, "")
		pdf.Ln(6)
	}

	writeSection("Scenario")
	writeRow("Current age", fmt.Sprintf("%d", in.CurrentAge))
	writeRow("Retirement age", fmt.Sprintf("%d", in.RetirementAge))
	writeRow("Normal pension age", fmt.Sprintf("%d", in.NormalPensionAge))
	writeRow("Service at retirement", in.ServiceYears.StringFixed(1)+" years")
	writeRow("Current salary", pdfCurrency(in.CurrentSalary))
	if r.YearsToRetirement > 0 {
		writeRow("Projected salary", pdfCurrency(r.ProjectedSalary))
	}
	closeSection()

	writeSection("Pension Calculation")
	writeRow("Pensionable pay", pdfCurrency(r.PensionablePay))
	writeRow("Base annual pension", pdfCurrency(r.BasePension))
	if !r.AdjustmentFactor.Equal(one()) {
		writeRow("Early/late retirement factor", FormatFactor(r.AdjustmentFactor))
		writeRow("Adjusted pension", pdfCurrency(r.AdjustedPension))
	}
	if r.CommutedPension.IsPositive() {
		writeRow("Pension exchanged for lump sum", pdfCurrency(r.CommutedPension))
	}
	closeSection()

	writeSection("Benefits at Retirement")
	writeRow("Annual pension", pdfCurrency(r.AnnualPension))
	writeRow("Monthly pension", pdfText(FormatMonthly(r.AnnualPension)))
	if r.AutomaticLumpSum.IsPositive() {
		writeRow("Automatic lump sum", pdfCurrency(r.AutomaticLumpSum))
	}
	if r.CommutationLumpSum.IsPositive() {
		writeRow("Commutation lump sum", pdfCurrency(r.CommutationLumpSum))
	}
	writeRow("Total lump sum", pdfCurrency(r.TotalLumpSum))
	if r.YearsToRetirement > 0 {
		writeRow(fmt.Sprintf("Pension in today's money (%s inflation)", FormatPercentage(in.InflationRate)),
			pdfCurrency(r.RealAnnualPension))
		writeRow("Lump sum in today's money", pdfCurrency(r.RealTotalLumpSum))
	}
	closeSection()

	if len(statement.Comparison) > 0 {
		writeSection("Scheme Comparison")
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(50, 50, 50)
		colW := pdfContentWidth / 3
		pdf.CellFormat(colW, 7, "Scheme", "LR", 0, "L", true, 0, "")
		pdf.CellFormat(colW, 7, "Annual pension", "LR", 0, "R", true, 0, "")
		pdf.CellFormat(colW, 7, "Total lump sum", "LR", 1, "R", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, row := range statement.Comparison {
			pdf.CellFormat(colW, 7, string(row.Scheme), "LR", 0, "L", true, 0, "")
			pdf.CellFormat(colW, 7, pdfCurrency(row.Result.AnnualPension), "LR", 0, "R", true, 0, "")
			pdf.CellFormat(colW, 7, pdfCurrency(row.Result.TotalLumpSum), "LR", 1, "R", true, 0, "")
		}
		closeSection()
	}

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(pdfContentWidth, 4,
		"Figures are illustrative projections based on the assumptions entered and do not "+
			"constitute financial advice. Actual benefits depend on scheme rules in force at retirement.",
		"", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
