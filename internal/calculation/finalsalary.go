package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nhspension/benefits-calculator/internal/domain"
)

// ProjectSalary compounds a salary forward at the given annual growth
// rate for a number of whole years.
func ProjectSalary(salary, growthRate decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return salary
	}
	return salary.Mul(pow(decimal.NewFromInt(1).Add(growthRate), int64(years)))
}

// CalculateFinalSalaryPension calculates the unadjusted annual pension
// for the 1995 and 2008 Sections: pensionable pay at retirement times
// total service times the accrual fraction.
func CalculateFinalSalaryPension(pensionablePay, serviceYears, accrualFraction decimal.Decimal) decimal.Decimal {
	return pensionablePay.Mul(serviceYears).Mul(accrualFraction)
}

// AdjustmentFactor returns the early/late retirement factor for taking
// benefits away from the scheme's normal pension age. Retiring a year
// early compounds a policy-defined reduction; retiring a year late
// compounds a symmetric uplift. At NPA the factor is exactly 1.
func AdjustmentFactor(retirementAge, normalPensionAge int, policy domain.PolicyConstants) decimal.Decimal {
	one := decimal.NewFromInt(1)
	yearsDiff := retirementAge - normalPensionAge
	switch {
	case yearsDiff < 0:
		return pow(one.Sub(policy.EarlyReductionPerYear), int64(-yearsDiff))
	case yearsDiff > 0:
		return pow(one.Add(policy.LateUpliftPerYear), int64(yearsDiff))
	default:
		return one
	}
}

// pow raises a decimal to a non-negative integer exponent.
func pow(d decimal.Decimal, n int64) decimal.Decimal {
	if n <= 0 {
		return decimal.NewFromInt(1)
	}
	return d.Pow(decimal.NewFromInt(n))
}
