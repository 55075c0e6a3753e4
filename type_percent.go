package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage, 12.5 means 12.5%.
type Percent float64

var hundred = decimal.NewFromInt(100)

// PercentOf returns part as a percentage of total. It returns false if total is zero.
func PercentOf(part, total decimal.Decimal) (Percent, bool) {
	if total.IsZero() {
		return 0, false
	}
	return Percent(part.Div(total).Mul(hundred).InexactFloat64()), true
}

// Equal compares percentages to a hundredth of a percent.
func (p Percent) Equal(q Percent) bool {
	d := float64(p - q)
	return d > -0.01 && d < 0.01
}

func (p Percent) String() string { return fmt.Sprintf("%.1f%%", float64(p)) }
