package decimal

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount in pounds sterling with proper
// financial precision.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the money amount to pence using banker's rounding
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// Commute exchanges this amount of annual pension for a lump sum at the
// given commutation factor (pounds of lump sum per pound of pension).
func (m Money) Commute(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Discount divides the amount by (1+rate)^years to express it in
// today's purchasing power.
func (m Money) Discount(rate decimal.Decimal, years int) Money {
	if years <= 0 {
		return m
	}
	factor := decimal.NewFromInt(1).Add(rate).Pow(decimal.NewFromInt(int64(years)))
	return Money{m.Decimal.Div(factor)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal checks if this amount equals another
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// IsZero checks if the amount is zero
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// IsPositive checks if the amount is positive
func (m Money) IsPositive() bool {
	return m.Decimal.IsPositive()
}

// IsNegative checks if the amount is negative
func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// String returns the string representation with proper formatting
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the money amount with proper currency formatting
func (m Money) Format() string {
	return "£" + m.String()
}
