package calculation

import (
	"github.com/shopspring/decimal"
)

// CAREInputs carries the inputs for a career-average pension
// calculation.
type CAREInputs struct {
	// CareerAveragePay is the pensionable earnings figure each future
	// year's accrual starts from (current salary scaled by the CARE
	// earnings factor).
	CareerAveragePay decimal.Decimal
	// ServiceYears is total pensionable service at retirement,
	// including years already served.
	ServiceYears decimal.Decimal
	// YearsToRetirement bounds how many of those years are still to be
	// earned.
	YearsToRetirement int
	AccrualFraction   decimal.Decimal
	SalaryGrowthRate  decimal.Decimal
	RevaluationRate   decimal.Decimal
}

// CalculateCAREPension calculates the unadjusted annual pension for the
// 2015 career-average scheme. Each year of service accrues a slice of
// pension (that year's pay times the accrual fraction) which is then
// revalued forward to retirement independently. Service already served
// enters as an opening accrued amount revalued over the full remaining
// period. This is deliberately not the final-salary shortcut of one
// blended multiplier: slices earned earlier revalue for longer.
func CalculateCAREPension(in CAREInputs) decimal.Decimal {
	one := decimal.NewFromInt(1)
	growth := one.Add(in.SalaryGrowthRate)
	revaluation := one.Add(in.RevaluationRate)

	ytr := int64(in.YearsToRetirement)
	futureYears := decimal.Min(in.ServiceYears, decimal.NewFromInt(ytr))
	pastYears := in.ServiceYears.Sub(futureYears)

	// Opening accrued pension from service already served, revalued
	// from now to retirement.
	total := in.CareerAveragePay.
		Mul(in.AccrualFraction).
		Mul(pastYears).
		Mul(pow(revaluation, ytr))

	// One slice per remaining year of service. The slice earned during
	// year i revalues for the years left after it is earned.
	wholeYears := futureYears.IntPart()
	for i := int64(1); i <= wholeYears; i++ {
		yearPay := in.CareerAveragePay.Mul(pow(growth, i-1))
		slice := yearPay.Mul(in.AccrualFraction)
		total = total.Add(slice.Mul(pow(revaluation, ytr-i)))
	}

	// A fractional final year accrues a proportionate slice.
	fraction := futureYears.Sub(decimal.NewFromInt(wholeYears))
	if fraction.IsPositive() && wholeYears < ytr {
		yearPay := in.CareerAveragePay.Mul(pow(growth, wholeYears))
		slice := yearPay.Mul(in.AccrualFraction).Mul(fraction)
		total = total.Add(slice.Mul(pow(revaluation, ytr-wholeYears-1)))
	}

	return total
}
