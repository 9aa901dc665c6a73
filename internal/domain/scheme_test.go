package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseScheme(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  Scheme
		expectErr bool
	}{
		{name: "1995 Section", input: "1995", expected: Scheme1995},
		{name: "2008 Section", input: "2008", expected: Scheme2008},
		{name: "2015 Scheme", input: "2015", expected: Scheme2015},
		{name: "Unknown scheme", input: "2022", expectErr: true},
		{name: "Empty string", input: "", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme, err := ParseScheme(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				_, ok := IsValidationError(err)
				assert.True(t, ok)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, scheme)
		})
	}
}

func TestRulesFor(t *testing.T) {
	tests := []struct {
		name             string
		scheme           Scheme
		accrualDenom     int64
		lumpFactor       int64
		normalPensionAge int
		kind             SchemeKind
	}{
		{name: "1995: 1/80th, 3x lump, NPA 60", scheme: Scheme1995, accrualDenom: 80, lumpFactor: 3, normalPensionAge: 60, kind: FinalSalary},
		{name: "2008: 1/60th, no lump, NPA 65", scheme: Scheme2008, accrualDenom: 60, lumpFactor: 0, normalPensionAge: 65, kind: FinalSalary},
		{name: "2015: 1/54th, no lump, NPA 67", scheme: Scheme2015, accrualDenom: 54, lumpFactor: 0, normalPensionAge: 67, kind: CareerAverage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := RulesFor(tt.scheme)
			assert.NoError(t, err)

			expectedAccrual := decimal.NewFromInt(1).Div(decimal.NewFromInt(tt.accrualDenom))
			assert.True(t, rules.AccrualFraction.Equal(expectedAccrual),
				"Expected accrual %s, got %s", expectedAccrual, rules.AccrualFraction)
			assert.True(t, rules.AutomaticLumpFactor.Equal(decimal.NewFromInt(tt.lumpFactor)))
			assert.Equal(t, tt.normalPensionAge, rules.NormalPensionAge)
			assert.Equal(t, tt.kind, rules.Kind)
		})
	}

	_, err := RulesFor(Scheme("1948"))
	assert.Error(t, err)
}

func TestAllSchemeRules(t *testing.T) {
	rules := AllSchemeRules()
	assert.Len(t, rules, 3)
	assert.Equal(t, Scheme1995, rules[0].Scheme)
	assert.Equal(t, Scheme2008, rules[1].Scheme)
	assert.Equal(t, Scheme2015, rules[2].Scheme)
}

func TestDefaultPolicyConstantsValidate(t *testing.T) {
	policy := DefaultPolicyConstants()
	assert.NoError(t, policy.Validate())

	policy.CommutationFactor = decimal.Zero
	err := policy.Validate()
	assert.Error(t, err)
	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "commutation_factor", ve.Field)
}
