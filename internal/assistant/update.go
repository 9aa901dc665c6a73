package assistant

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nhspension/benefits-calculator/internal/domain"
)

// FieldUpdate is one scenario field change requested by the model.
// Values carry the raw JSON decoding (string, float64 or int-shaped
// float64) and are converted during Apply.
type FieldUpdate struct {
	Field string
	Value any
}

var fieldLabels = map[string]string{
	"scheme":                 "Pension scheme",
	"current_age":            "Current age",
	"retirement_age":         "Retirement age",
	"normal_pension_age":     "Normal pension age",
	"current_salary":         "Current salary",
	"service_years":          "Years of service",
	"salary_growth_rate":     "Salary growth rate",
	"investment_growth_rate": "Investment growth rate",
	"inflation_rate":         "Inflation rate",
	"commutation_proportion": "Commutation proportion",
	"care_earnings_factor":   "CARE earnings factor",
}

// ParseUpdates converts decoded tool-call arguments into field updates.
// Unknown field names are rejected outright; the model's output is not
// trusted to be well-formed.
func ParseUpdates(args map[string]any) ([]FieldUpdate, error) {
	updates := make([]FieldUpdate, 0, len(args))
	for field, value := range args {
		if _, ok := fieldLabels[field]; !ok {
			return nil, domain.NewValidationError(field, "UNKNOWN_FIELD",
				fmt.Sprintf("unknown calculator field %q", field))
		}
		if value == nil {
			continue
		}
		updates = append(updates, FieldUpdate{Field: field, Value: value})
	}
	sort.Slice(updates, func(i, j int) bool { return updates[i].Field < updates[j].Field })
	return updates, nil
}

// Validate checks the update's value type without touching any scenario.
func (u FieldUpdate) Validate() error {
	_, err := u.converted()
	return err
}

// Apply writes the update into the scenario. The caller is expected to
// work on a copy and re-validate the whole scenario afterwards.
func (u FieldUpdate) Apply(in *domain.ScenarioInput) error {
	v, err := u.converted()
	if err != nil {
		return err
	}
	switch u.Field {
	case "scheme":
		in.Scheme = v.(domain.Scheme)
	case "current_age":
		in.CurrentAge = v.(int)
	case "retirement_age":
		in.RetirementAge = v.(int)
	case "normal_pension_age":
		in.NormalPensionAge = v.(int)
	case "current_salary":
		in.CurrentSalary = v.(decimal.Decimal)
	case "service_years":
		in.ServiceYears = v.(decimal.Decimal)
	case "salary_growth_rate":
		in.SalaryGrowthRate = v.(decimal.Decimal)
	case "investment_growth_rate":
		in.InvestmentGrowthRate = v.(decimal.Decimal)
	case "inflation_rate":
		in.InflationRate = v.(decimal.Decimal)
	case "commutation_proportion":
		in.CommutationProportion = v.(decimal.Decimal)
	case "care_earnings_factor":
		in.CareEarningsFactor = v.(decimal.Decimal)
	}
	return nil
}

// converted maps the raw JSON value to the field's domain type.
func (u FieldUpdate) converted() (any, error) {
	switch u.Field {
	case "scheme":
		s, ok := u.Value.(string)
		if !ok {
			return nil, domain.NewValidationError(u.Field, "BAD_TYPE", "scheme must be a string")
		}
		return domain.ParseScheme(s)
	case "current_age", "retirement_age", "normal_pension_age":
		f, ok := u.Value.(float64)
		if !ok || f != float64(int(f)) {
			return nil, domain.NewValidationError(u.Field, "BAD_TYPE",
				fmt.Sprintf("%s must be a whole number", u.Field))
		}
		return int(f), nil
	default:
		f, ok := u.Value.(float64)
		if !ok {
			return nil, domain.NewValidationError(u.Field, "BAD_TYPE",
				fmt.Sprintf("%s must be a number", u.Field))
		}
		return decimal.NewFromFloat(f), nil
	}
}

// describe renders a before/after line for the change summary.
func (u FieldUpdate) describe(before domain.ScenarioInput) string {
	label := fieldLabels[u.Field]
	switch u.Field {
	case "scheme":
		return fmt.Sprintf("%s: %s -> %v", label, before.Scheme, u.Value)
	case "current_age":
		return fmt.Sprintf("%s: %d -> %v", label, before.CurrentAge, u.Value)
	case "retirement_age":
		return fmt.Sprintf("%s: %d -> %v", label, before.RetirementAge, u.Value)
	case "normal_pension_age":
		return fmt.Sprintf("%s: %d -> %v", label, before.NormalPensionAge, u.Value)
	case "current_salary":
		return fmt.Sprintf("%s: £%s -> £%v", label, before.CurrentSalary.StringFixed(0), u.Value)
	case "service_years":
		return fmt.Sprintf("%s: %s -> %v", label, before.ServiceYears.String(), u.Value)
	case "salary_growth_rate":
		return fmt.Sprintf("%s: %s -> %v", label, before.SalaryGrowthRate.String(), u.Value)
	case "investment_growth_rate":
		return fmt.Sprintf("%s: %s -> %v", label, before.InvestmentGrowthRate.String(), u.Value)
	case "inflation_rate":
		return fmt.Sprintf("%s: %s -> %v", label, before.InflationRate.String(), u.Value)
	case "commutation_proportion":
		return fmt.Sprintf("%s: %s -> %v", label, before.CommutationProportion.String(), u.Value)
	case "care_earnings_factor":
		return fmt.Sprintf("%s: %s -> %v", label, before.CareEarningsFactor.String(), u.Value)
	}
	return label
}

// ApplyUpdates applies field updates to a copy of the scenario and
// accepts the result only if it passes full scenario validation. On any
// error the original scenario is returned unchanged. The returned slice
// holds one human-readable line per change.
func ApplyUpdates(in domain.ScenarioInput, policy domain.PolicyConstants, updates []FieldUpdate) (domain.ScenarioInput, []string, error) {
	next := in
	changes := make([]string, 0, len(updates))
	for _, u := range updates {
		if err := u.Apply(&next); err != nil {
			return in, nil, err
		}
		changes = append(changes, u.describe(in))
	}
	if err := next.WithDefaults().Validate(policy); err != nil {
		return in, nil, err
	}
	return next, changes, nil
}
