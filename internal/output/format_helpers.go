package output

import (
	"github.com/shopspring/decimal"

	money "github.com/nhspension/benefits-calculator/pkg/decimal"
)

// FormatCurrency formats a decimal as GBP currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatPercentage formats a fractional rate as a percentage with 2 decimals.
func FormatPercentage(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// FormatFactor formats an adjustment factor with 4 decimals.
func FormatFactor(factor decimal.Decimal) string { return factor.StringFixed(4) }

// FormatMonthly renders one twelfth of an annual amount as GBP.
func FormatMonthly(annual decimal.Decimal) string {
	return money.NewMoneyFromDecimal(annual).Monthly().Round().Format()
}

func one() decimal.Decimal { return decimal.NewFromInt(1) }
