package output

import (
	"bytes"
	"fmt"

	"github.com/nhspension/benefits-calculator/internal/domain"
)

// ConsoleFormatter renders a benefit statement as plain text.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(statement *domain.BenefitStatement) ([]byte, error) {
	var buf bytes.Buffer
	in := statement.Input
	r := statement.Result

	rules, err := domain.RulesFor(r.Scheme)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(&buf, "NHS PENSION BENEFIT STATEMENT")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Scheme: %s Section (%s)\n", r.Scheme, rules.Description)
	fmt.Fprintf(&buf, "Current age %d, retiring at %d (%d years to go)\n",
		in.CurrentAge, in.RetirementAge, r.YearsToRetirement)
	fmt.Fprintf(&buf, "Service at retirement: %s years\n", in.ServiceYears.StringFixed(1))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Current salary:      %s\n", FormatCurrency(in.CurrentSalary))
	if r.YearsToRetirement > 0 {
		fmt.Fprintf(&buf, "Projected salary:    %s\n", FormatCurrency(r.ProjectedSalary))
	}
	fmt.Fprintf(&buf, "Pensionable pay:     %s\n", FormatCurrency(r.PensionablePay))
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "Base annual pension: %s\n", FormatCurrency(r.BasePension))
	if !r.AdjustmentFactor.Equal(one()) {
		fmt.Fprintf(&buf, "Early/late factor:   %s\n", FormatFactor(r.AdjustmentFactor))
		fmt.Fprintf(&buf, "Adjusted pension:    %s\n", FormatCurrency(r.AdjustedPension))
	}
	if r.CommutedPension.IsPositive() {
		fmt.Fprintf(&buf, "Pension exchanged:   %s\n", FormatCurrency(r.CommutedPension))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "ANNUAL PENSION:      %s (%s/month)\n",
		FormatCurrency(r.AnnualPension), FormatMonthly(r.AnnualPension))
	fmt.Fprintf(&buf, "TOTAL LUMP SUM:      %s\n", FormatCurrency(r.TotalLumpSum))
	if r.YearsToRetirement > 0 {
		fmt.Fprintf(&buf, "In today's money:    %s pension, %s lump sum (%s inflation)\n",
			FormatCurrency(r.RealAnnualPension), FormatCurrency(r.RealTotalLumpSum),
			FormatPercentage(in.InflationRate))
	}

	if len(statement.Comparison) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "SCHEME COMPARISON (same inputs, each scheme's own NPA)")
		for _, row := range statement.Comparison {
			fmt.Fprintf(&buf, "  %s: pension %s, lump sum %s\n",
				row.Scheme, FormatCurrency(row.Result.AnnualPension), FormatCurrency(row.Result.TotalLumpSum))
		}
	}

	return buf.Bytes(), nil
}
