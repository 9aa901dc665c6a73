package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/nhspension/benefits-calculator/internal/domain"
	money "github.com/nhspension/benefits-calculator/pkg/decimal"
)

// CalculationEngine maps a scenario to its benefit figures. It is a
// pure, synchronous calculator: no I/O, no caching, no state beyond the
// policy constants it was constructed with. Invalid inputs are rejected
// with a domain.ValidationError and no partial result.
type CalculationEngine struct {
	Policy domain.PolicyConstants
	Logger Logger
}

// NewCalculationEngine creates an engine with default policy constants.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithPolicy(domain.DefaultPolicyConstants())
}

// NewCalculationEngineWithPolicy creates an engine with configured
// policy constants (commutation factor, early/late adjustment rates).
func NewCalculationEngineWithPolicy(policy domain.PolicyConstants) *CalculationEngine {
	return &CalculationEngine{
		Policy: policy,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op
// logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate produces the benefit figures for one scenario.
func (ce *CalculationEngine) Calculate(input domain.ScenarioInput) (*domain.BenefitResult, error) {
	if err := ce.Policy.Validate(); err != nil {
		return nil, err
	}

	in := input.WithDefaults()
	if err := in.Validate(ce.Policy); err != nil {
		return nil, err
	}

	rules, err := domain.RulesFor(in.Scheme)
	if err != nil {
		return nil, err
	}

	years := in.YearsToRetirement()
	projectedSalary := ProjectSalary(in.CurrentSalary, in.SalaryGrowthRate, years)

	var pensionablePay, basePension decimal.Decimal
	switch rules.Kind {
	case domain.CareerAverage:
		pensionablePay = in.CurrentSalary.Mul(in.CareEarningsFactor)
		basePension = CalculateCAREPension(CAREInputs{
			CareerAveragePay:  pensionablePay,
			ServiceYears:      in.ServiceYears,
			YearsToRetirement: years,
			AccrualFraction:   rules.AccrualFraction,
			SalaryGrowthRate:  in.SalaryGrowthRate,
			RevaluationRate:   in.InvestmentGrowthRate,
		})
	default:
		pensionablePay = projectedSalary
		basePension = CalculateFinalSalaryPension(pensionablePay, in.ServiceYears, rules.AccrualFraction)
	}

	factor := AdjustmentFactor(in.RetirementAge, in.NormalPensionAge, ce.Policy)
	adjustedPension := money.NewMoneyFromDecimal(basePension.Mul(factor))

	automaticLump := adjustedPension.Mul(rules.AutomaticLumpFactor)
	commutedPension := adjustedPension.Mul(in.CommutationProportion)
	commutationLump := commutedPension.Commute(ce.Policy.CommutationFactor)
	annualPension := adjustedPension.Sub(commutedPension)
	totalLump := automaticLump.Add(commutationLump)

	ce.Logger.Debugf("calculated %s scheme benefits: base=%s factor=%s annual=%s",
		in.Scheme, basePension.StringFixed(2), factor.StringFixed(4), annualPension.StringFixed(2))

	return &domain.BenefitResult{
		Scheme:             in.Scheme,
		YearsToRetirement:  years,
		ProjectedSalary:    projectedSalary,
		PensionablePay:     pensionablePay,
		BasePension:        basePension,
		AdjustmentFactor:   factor,
		AdjustedPension:    adjustedPension.Decimal,
		CommutedPension:    commutedPension.Decimal,
		AnnualPension:      annualPension.Decimal,
		AutomaticLumpSum:   automaticLump.Decimal,
		CommutationLumpSum: commutationLump.Decimal,
		TotalLumpSum:       totalLump.Decimal,
		RealAnnualPension:  annualPension.Discount(in.InflationRate, years).Decimal,
		RealTotalLumpSum:   totalLump.Discount(in.InflationRate, years).Decimal,
	}, nil
}

// CompareSchemes evaluates the same personal inputs under each scheme
// section, using each scheme's own normal pension age.
func (ce *CalculationEngine) CompareSchemes(input domain.ScenarioInput) ([]domain.SchemeBenefits, error) {
	rows := make([]domain.SchemeBenefits, 0, 3)
	for _, rules := range domain.AllSchemeRules() {
		in := input
		in.Scheme = rules.Scheme
		in.NormalPensionAge = rules.NormalPensionAge

		result, err := ce.Calculate(in)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.SchemeBenefits{Scheme: rules.Scheme, Result: *result})
	}
	return rows, nil
}
