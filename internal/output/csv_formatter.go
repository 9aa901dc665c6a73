package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/nhspension/benefits-calculator/internal/domain"
)

// CSVFormatter produces a flat summary suitable for spreadsheets. The
// statement's own scheme comes first, followed by any comparison rows.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(statement *domain.BenefitStatement) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"scheme", "years_to_retirement", "projected_salary", "pensionable_pay",
		"base_pension", "adjustment_factor", "annual_pension", "automatic_lump_sum",
		"commutation_lump_sum", "total_lump_sum", "real_annual_pension", "real_total_lump_sum",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	if err := w.Write(resultRow(statement.Result)); err != nil {
		return nil, err
	}
	for _, row := range statement.Comparison {
		if row.Result.Scheme == statement.Result.Scheme {
			continue
		}
		if err := w.Write(resultRow(row.Result)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resultRow(r domain.BenefitResult) []string {
	return []string{
		string(r.Scheme),
		strconv.Itoa(r.YearsToRetirement),
		r.ProjectedSalary.StringFixed(2),
		r.PensionablePay.StringFixed(2),
		r.BasePension.StringFixed(2),
		r.AdjustmentFactor.StringFixed(4),
		r.AnnualPension.StringFixed(2),
		r.AutomaticLumpSum.StringFixed(2),
		r.CommutationLumpSum.StringFixed(2),
		r.TotalLumpSum.StringFixed(2),
		r.RealAnnualPension.StringFixed(2),
		r.RealTotalLumpSum.StringFixed(2),
	}
}
