package finance

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used to display amounts when none is configured.
const DefaultCurrency = "INR"

// Money is an amount labeled with a currency, for display only.
//
// There is no conversion between currencies: the currency only selects the
// symbol and the number of decimals.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns the amount labeled with currency.
func M(value decimal.Decimal, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{value: value, cur: currency}
}

// currency returns the go-money currency, never nil even for unknown codes.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with the currency symbol and thousand separators,
// rounded to the currency fraction.
func (m Money) String() string {
	cur := m.currency()
	fraction := int32(cur.Fraction)
	return cur.Formatter().Format(m.value.Round(fraction).Shift(fraction).IntPart())
}

// SignedString is like String with an explicit sign. Zero is "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string       { return m.cur }
func (m Money) Value() decimal.Decimal { return m.value }
func (m Money) IsZero() bool           { return m.value.IsZero() }
func (m Money) Neg() Money             { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Equal(n Money) bool     { return m.value.Equal(n.value) && m.cur == n.cur }
