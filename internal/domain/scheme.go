package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scheme identifies an NHS pension scheme section.
type Scheme string

const (
	Scheme1995 Scheme = "1995"
	Scheme2008 Scheme = "2008"
	Scheme2015 Scheme = "2015"
)

// SchemeKind distinguishes how pensionable pay is determined.
type SchemeKind string

const (
	FinalSalary   SchemeKind = "final_salary"
	CareerAverage SchemeKind = "career_average"
)

// ParseScheme converts a scheme identifier into a Scheme.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case Scheme1995, Scheme2008, Scheme2015:
		return Scheme(s), nil
	}
	return "", NewValidationError("scheme", "UNKNOWN_SCHEME",
		fmt.Sprintf("unknown scheme %q: must be one of 1995, 2008, 2015", s))
}

// String returns the scheme identifier.
func (s Scheme) String() string {
	return string(s)
}

// SchemeRules holds the constant parameters of a scheme section. These
// are scheme-administration data, not user inputs.
type SchemeRules struct {
	Scheme              Scheme          `yaml:"scheme" json:"scheme"`
	Kind                SchemeKind      `yaml:"kind" json:"kind"`
	AccrualFraction     decimal.Decimal `yaml:"accrual_fraction" json:"accrual_fraction"`
	AutomaticLumpFactor decimal.Decimal `yaml:"automatic_lump_factor" json:"automatic_lump_factor"`
	NormalPensionAge    int             `yaml:"normal_pension_age" json:"normal_pension_age"`
	Description         string          `yaml:"description" json:"description"`
}

// RulesFor returns the rules for a scheme.
func RulesFor(s Scheme) (SchemeRules, error) {
	rules, ok := schemeRules[s]
	if !ok {
		return SchemeRules{}, NewValidationError("scheme", "UNKNOWN_SCHEME",
			fmt.Sprintf("unknown scheme %q", s))
	}
	return rules, nil
}

// AllSchemeRules returns the rules for every scheme in a stable order.
func AllSchemeRules() []SchemeRules {
	return []SchemeRules{
		schemeRules[Scheme1995],
		schemeRules[Scheme2008],
		schemeRules[Scheme2015],
	}
}

var schemeRules = map[Scheme]SchemeRules{
	Scheme1995: {
		Scheme:              Scheme1995,
		Kind:                FinalSalary,
		AccrualFraction:     decimal.NewFromInt(1).Div(decimal.NewFromInt(80)),
		AutomaticLumpFactor: decimal.NewFromInt(3),
		NormalPensionAge:    60,
		Description:         "Final salary, 1/80th pension plus 3x automatic lump sum",
	},
	Scheme2008: {
		Scheme:              Scheme2008,
		Kind:                FinalSalary,
		AccrualFraction:     decimal.NewFromInt(1).Div(decimal.NewFromInt(60)),
		AutomaticLumpFactor: decimal.Zero,
		NormalPensionAge:    65,
		Description:         "Final salary, 1/60th pension, no automatic lump sum",
	},
	Scheme2015: {
		Scheme:              Scheme2015,
		Kind:                CareerAverage,
		AccrualFraction:     decimal.NewFromInt(1).Div(decimal.NewFromInt(54)),
		AutomaticLumpFactor: decimal.Zero,
		NormalPensionAge:    67,
		Description:         "Career average (CARE), 1/54th of pensionable earnings each year",
	},
}

// PolicyConstants holds scheme-administration parameters that are
// subject to change and must never be hard-coded in formulas. Rates are
// fractions (0.04 = 4% per year).
type PolicyConstants struct {
	EarlyReductionPerYear    decimal.Decimal `yaml:"early_reduction_per_year" json:"early_reduction_per_year"`
	LateUpliftPerYear        decimal.Decimal `yaml:"late_uplift_per_year" json:"late_uplift_per_year"`
	CommutationFactor        decimal.Decimal `yaml:"commutation_factor" json:"commutation_factor"`
	MaxCommutationProportion decimal.Decimal `yaml:"max_commutation_proportion" json:"max_commutation_proportion"`
}

// DefaultPolicyConstants returns the illustrative defaults used when a
// configuration file does not override them. Confirm against current
// NHS scheme rules before relying on exact figures.
func DefaultPolicyConstants() PolicyConstants {
	return PolicyConstants{
		EarlyReductionPerYear:    decimal.NewFromFloat(0.04),
		LateUpliftPerYear:        decimal.NewFromFloat(0.03),
		CommutationFactor:        decimal.NewFromInt(12),
		MaxCommutationProportion: decimal.NewFromFloat(0.30),
	}
}

// Validate checks the policy constants for out-of-range values.
func (pc *PolicyConstants) Validate() error {
	if pc.EarlyReductionPerYear.IsNegative() || pc.EarlyReductionPerYear.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return NewValidationError("early_reduction_per_year", "RATE_OUT_OF_RANGE",
			"early reduction per year must be between 0 and 1")
	}
	if pc.LateUpliftPerYear.IsNegative() {
		return NewValidationError("late_uplift_per_year", "NEGATIVE_RATE",
			"late uplift per year cannot be negative")
	}
	if pc.CommutationFactor.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("commutation_factor", "NON_POSITIVE",
			"commutation factor must be positive")
	}
	if pc.MaxCommutationProportion.IsNegative() || pc.MaxCommutationProportion.GreaterThan(decimal.NewFromInt(1)) {
		return NewValidationError("max_commutation_proportion", "RATE_OUT_OF_RANGE",
			"max commutation proportion must be between 0 and 1")
	}
	return nil
}
