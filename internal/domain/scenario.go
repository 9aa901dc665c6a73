package domain

import (
	"github.com/shopspring/decimal"
)

// ScenarioInput is an immutable snapshot of calculator inputs. It is
// constructed fresh on every recalculation; nothing holds onto one
// between invocations. Rates are annual fractions (0.02 = 2%).
type ScenarioInput struct {
	Scheme           Scheme          `yaml:"scheme" json:"scheme"`
	CurrentAge       int             `yaml:"current_age" json:"current_age"`
	RetirementAge    int             `yaml:"retirement_age" json:"retirement_age"`
	NormalPensionAge int             `yaml:"normal_pension_age,omitempty" json:"normal_pension_age,omitempty"`
	CurrentSalary    decimal.Decimal `yaml:"current_salary" json:"current_salary"`
	ServiceYears     decimal.Decimal `yaml:"service_years" json:"service_years"`

	SalaryGrowthRate     decimal.Decimal `yaml:"salary_growth_rate" json:"salary_growth_rate"`
	InvestmentGrowthRate decimal.Decimal `yaml:"investment_growth_rate" json:"investment_growth_rate"`
	InflationRate        decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"`

	// CommutationProportion is the fraction of annual pension exchanged
	// for an additional lump sum (0 disables commutation).
	CommutationProportion decimal.Decimal `yaml:"commutation_proportion,omitempty" json:"commutation_proportion,omitempty"`

	// CareEarningsFactor scales current pay to career-average earnings
	// for the 2015 scheme. Zero means 1.0 (career average equals
	// current pay).
	CareEarningsFactor decimal.Decimal `yaml:"care_earnings_factor,omitempty" json:"care_earnings_factor,omitempty"`
}

// WithDefaults returns a copy with zero-valued optional fields filled
// in: the scheme's normal pension age and a CARE earnings factor of 1.
func (in ScenarioInput) WithDefaults() ScenarioInput {
	out := in
	if out.NormalPensionAge == 0 {
		if rules, err := RulesFor(out.Scheme); err == nil {
			out.NormalPensionAge = rules.NormalPensionAge
		}
	}
	if out.CareEarningsFactor.IsZero() {
		out.CareEarningsFactor = decimal.NewFromInt(1)
	}
	return out
}

// YearsToRetirement returns the whole years between current age and
// retirement age.
func (in ScenarioInput) YearsToRetirement() int {
	years := in.RetirementAge - in.CurrentAge
	if years < 0 {
		return 0
	}
	return years
}

// Validate checks the scenario against the calculator's contract and
// returns a ValidationError naming the first offending field. Policy
// constants bound the commutation proportion.
func (in ScenarioInput) Validate(policy PolicyConstants) error {
	if _, err := RulesFor(in.Scheme); err != nil {
		return err
	}
	if in.CurrentAge <= 0 {
		return NewValidationError("current_age", "NON_POSITIVE",
			"current age must be positive")
	}
	if in.RetirementAge < in.CurrentAge {
		return NewValidationError("retirement_age", "BEFORE_CURRENT_AGE",
			"retirement age cannot be before current age")
	}
	if in.NormalPensionAge <= 0 {
		return NewValidationError("normal_pension_age", "NON_POSITIVE",
			"normal pension age must be positive")
	}
	if in.CurrentSalary.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("current_salary", "NON_POSITIVE",
			"current salary must be positive")
	}
	if in.ServiceYears.IsNegative() {
		return NewValidationError("service_years", "NEGATIVE",
			"service years cannot be negative")
	}
	if in.SalaryGrowthRate.IsNegative() {
		return NewValidationError("salary_growth_rate", "NEGATIVE_RATE",
			"salary growth rate cannot be negative")
	}
	if in.InvestmentGrowthRate.IsNegative() {
		return NewValidationError("investment_growth_rate", "NEGATIVE_RATE",
			"investment growth rate cannot be negative")
	}
	if in.InflationRate.IsNegative() {
		return NewValidationError("inflation_rate", "NEGATIVE_RATE",
			"inflation rate cannot be negative")
	}
	if in.CommutationProportion.IsNegative() {
		return NewValidationError("commutation_proportion", "NEGATIVE",
			"commutation proportion cannot be negative")
	}
	if in.CommutationProportion.GreaterThan(policy.MaxCommutationProportion) {
		return NewValidationError("commutation_proportion", "ABOVE_MAXIMUM",
			"commutation proportion exceeds the scheme maximum of "+
				policy.MaxCommutationProportion.Mul(decimal.NewFromInt(100)).StringFixed(0)+"%")
	}
	if in.CareEarningsFactor.IsNegative() {
		return NewValidationError("care_earnings_factor", "NEGATIVE",
			"CARE earnings factor cannot be negative")
	}
	return nil
}

// BenefitResult is the full set of derived benefit figures for one
// scenario. It is recomputed from scratch on every calculation and never
// mutated in place.
type BenefitResult struct {
	Scheme            Scheme `json:"scheme"`
	YearsToRetirement int    `json:"years_to_retirement"`

	// Salary figures
	ProjectedSalary decimal.Decimal `json:"projected_salary"`
	PensionablePay  decimal.Decimal `json:"pensionable_pay"`

	// Pension before and after adjustment
	BasePension      decimal.Decimal `json:"base_pension"`
	AdjustmentFactor decimal.Decimal `json:"adjustment_factor"`
	AdjustedPension  decimal.Decimal `json:"adjusted_pension"`

	// Commutation
	CommutedPension    decimal.Decimal `json:"commuted_pension"`
	AnnualPension      decimal.Decimal `json:"annual_pension"`
	AutomaticLumpSum   decimal.Decimal `json:"automatic_lump_sum"`
	CommutationLumpSum decimal.Decimal `json:"commutation_lump_sum"`
	TotalLumpSum       decimal.Decimal `json:"total_lump_sum"`

	// Real-terms (today's money) equivalents
	RealAnnualPension decimal.Decimal `json:"real_annual_pension"`
	RealTotalLumpSum  decimal.Decimal `json:"real_total_lump_sum"`
}

// BenefitStatement pairs a scenario with its result for reporting.
type BenefitStatement struct {
	Input      ScenarioInput    `json:"input"`
	Result     BenefitResult    `json:"result"`
	Comparison []SchemeBenefits `json:"comparison,omitempty"`
}

// SchemeBenefits is one row of a cross-scheme comparison: the same
// personal inputs evaluated under a different scheme section.
type SchemeBenefits struct {
	Scheme Scheme        `json:"scheme"`
	Result BenefitResult `json:"result"`
}
