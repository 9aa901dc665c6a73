package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func careAccrual() decimal.Decimal {
	return decimal.NewFromInt(1).Div(decimal.NewFromInt(54))
}

func TestCalculateCAREPensionFlatSalaryNoGrowth(t *testing.T) {
	// Worked example: flat £40,000, 10 years of future service, no
	// growth and no revaluation: 40000 * 10 / 54 = 7407.41
	pension := CalculateCAREPension(CAREInputs{
		CareerAveragePay:  decimal.NewFromInt(40000),
		ServiceYears:      decimal.NewFromInt(10),
		YearsToRetirement: 10,
		AccrualFraction:   careAccrual(),
		SalaryGrowthRate:  decimal.Zero,
		RevaluationRate:   decimal.Zero,
	})
	assert.InDelta(t, 7407.41, pension.InexactFloat64(), 0.01)
}

func TestCalculateCAREPensionRevaluesSlicesIndependently(t *testing.T) {
	// £54,000 at 1/54th accrues a £1,000 slice per year. With two years
	// to retirement and 10% revaluation, the first year's slice
	// revalues once and the second year's not at all:
	// 1000*1.1 + 1000 = 2100.
	pension := CalculateCAREPension(CAREInputs{
		CareerAveragePay:  decimal.NewFromInt(54000),
		ServiceYears:      decimal.NewFromInt(2),
		YearsToRetirement: 2,
		AccrualFraction:   careAccrual(),
		SalaryGrowthRate:  decimal.Zero,
		RevaluationRate:   decimal.NewFromFloat(0.10),
	})
	assert.InDelta(t, 2100, pension.InexactFloat64(), 0.001)
}

func TestCalculateCAREPensionIsNotABlendedMultiplier(t *testing.T) {
	// With growth and revaluation both non-zero, summing independently
	// revalued slices must differ from applying one blended multiplier
	// to the final salary.
	in := CAREInputs{
		CareerAveragePay:  decimal.NewFromInt(40000),
		ServiceYears:      decimal.NewFromInt(10),
		YearsToRetirement: 10,
		AccrualFraction:   careAccrual(),
		SalaryGrowthRate:  decimal.NewFromFloat(0.02),
		RevaluationRate:   decimal.NewFromFloat(0.05),
	}
	slices := CalculateCAREPension(in)

	finalSalary := ProjectSalary(in.CareerAveragePay, in.SalaryGrowthRate, in.YearsToRetirement)
	blended := CalculateFinalSalaryPension(finalSalary, in.ServiceYears, in.AccrualFraction)

	assert.False(t, slices.Equal(blended),
		"slice-by-slice CARE total %s must not equal blended final-salary total %s", slices, blended)
	// Earlier slices revalue for longer at 5% while salary only grows
	// at 2%, so the slice total is the larger of the two.
	assert.True(t, slices.GreaterThan(blended))
}

func TestCalculateCAREPensionPastService(t *testing.T) {
	// 15 years already served, retiring immediately: the opening pot is
	// simply pay * accrual * years with no revaluation window.
	pension := CalculateCAREPension(CAREInputs{
		CareerAveragePay:  decimal.NewFromInt(40500),
		ServiceYears:      decimal.NewFromInt(15),
		YearsToRetirement: 0,
		AccrualFraction:   careAccrual(),
		SalaryGrowthRate:  decimal.NewFromFloat(0.02),
		RevaluationRate:   decimal.NewFromFloat(0.05),
	})
	assert.InDelta(t, 11250, pension.InexactFloat64(), 0.001) // 40500*15/54
}

func TestCalculateCAREPensionFractionalServiceYear(t *testing.T) {
	// 1.5 years of future service with no growth: one full slice plus
	// half a slice.
	pension := CalculateCAREPension(CAREInputs{
		CareerAveragePay:  decimal.NewFromInt(54000),
		ServiceYears:      decimal.NewFromFloat(1.5),
		YearsToRetirement: 2,
		AccrualFraction:   careAccrual(),
		SalaryGrowthRate:  decimal.Zero,
		RevaluationRate:   decimal.Zero,
	})
	assert.InDelta(t, 1500, pension.InexactFloat64(), 0.001)
}

func TestCalculateCAREPensionMonotonicInService(t *testing.T) {
	base := CAREInputs{
		CareerAveragePay:  decimal.NewFromInt(40000),
		YearsToRetirement: 10,
		AccrualFraction:   careAccrual(),
		SalaryGrowthRate:  decimal.NewFromFloat(0.02),
		RevaluationRate:   decimal.NewFromFloat(0.04),
	}

	previous := decimal.Zero
	for years := 1; years <= 40; years += 3 {
		in := base
		in.ServiceYears = decimal.NewFromInt(int64(years))
		pension := CalculateCAREPension(in)
		assert.True(t, pension.GreaterThan(previous),
			"pension with %d service years should exceed %s", years, previous)
		previous = pension
	}
}
