// Package money holds dollar amounts as decimals and renders them the way the
// calculator page shows them.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Amount is a USD amount. Arithmetic stays in decimal; float64 only appears at
// the projection boundary and in Float64 for display.
type Amount struct {
	d decimal.Decimal
}

var (
	million = decimal.NewFromInt(1_000_000)
	hundred = decimal.NewFromInt(100)
	printer = message.NewPrinter(language.AmericanEnglish)
)

// FromFloat converts a projected dollar value into an Amount rounded to cents.
func FromFloat(v float64) Amount {
	return Amount{d: decimal.NewFromFloat(v).Round(2)}
}

// FromDecimal wraps d without rounding.
func FromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// Zero is $0.
func Zero() Amount { return Amount{d: decimal.Zero} }

// Decimal returns the underlying value.
func (a Amount) Decimal() decimal.Decimal { return a.d }

// Float64 returns the amount as float64. Use for display and JSON only.
func (a Amount) Float64() float64 {
	f, _ := a.d.Float64()
	return f
}

// DivFloat divides by a float scalar and rounds to cents.
func (a Amount) DivFloat(divisor float64) Amount {
	return Amount{d: a.d.Div(decimal.NewFromFloat(divisor)).Round(2)}
}

// MulFloat multiplies by a float scalar and rounds to cents.
func (a Amount) MulFloat(factor float64) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromFloat(factor)).Round(2)}
}

// Percent returns pct percent of the amount (pct=5 means 5%).
func (a Amount) Percent(pct float64) Amount {
	return Amount{d: a.d.Mul(decimal.NewFromFloat(pct)).Div(hundred).Round(2)}
}

// Cmp compares two amounts.
func (a Amount) Cmp(b Amount) int { return a.d.Cmp(b.d) }

// Equal reports whether both amounts hold the same value.
func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

// String renders the full amount with thousands separators, e.g. "$1,234,567".
func (a Amount) String() string { return Full(a) }

// MarshalJSON emits the amount as a JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts a JSON number or quoted number.
func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.d.UnmarshalJSON(b)
}

// MarshalYAML emits the amount as a float so YAML output stays numeric.
func (a Amount) MarshalYAML() (interface{}, error) {
	return a.Float64(), nil
}

// Millions renders whole millions, e.g. "$115M".
func Millions(a Amount) string {
	m := a.d.Div(million).Round(0)
	return "$" + m.String() + "M"
}

// Full renders rounded whole dollars with en-US grouping, e.g. "$1,234,567".
func Full(a Amount) string {
	whole := a.d.Round(0).IntPart()
	if whole < 0 {
		return printer.Sprintf("-$%d", -whole)
	}
	return printer.Sprintf("$%d", whole)
}

// Pct renders a probability as a whole percentage, e.g. 0.424 -> "42%".
func Pct(p float64) string {
	return decimal.NewFromFloat(p).Mul(hundred).Round(0).String() + "%"
}
