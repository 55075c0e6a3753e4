package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvestmentKind is a typed string identifying the variant of an Investment.
type InvestmentKind string

const (
	KindSIP InvestmentKind = "SIP"
	KindFD  InvestmentKind = "FD"
)

var (
	// FDRate is the annual rate of a fixed deposit, compounded yearly.
	FDRate = decimal.RequireFromString("0.071")
	// SIPRate is the annual rate of a systematic investment plan, compounded monthly.
	SIPRate = decimal.RequireFromString("0.096")

	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// Investment is a principal committed for a fixed number of years.
//
// The set of investments is closed: SIP and FD are the only implementations.
type Investment interface {
	What() InvestmentKind // What returns the variant of the investment.
	When() Date           // When returns the start date.
	Value() decimal.Decimal
	Years() int
	Maturity() decimal.Decimal // Maturity returns the value at the end of the duration.
	Equal(Investment) bool
	Validate() (Investment, error)
	investment()
}

// position holds the fields shared by all investments.
type position struct {
	Principal decimal.Decimal
	Duration  int // in years
	StartDate Date
}

func (p position) When() Date             { return p.StartDate }
func (p position) Value() decimal.Decimal { return p.Principal }
func (p position) Years() int             { return p.Duration }
func (position) investment()              {}

func (p position) validate() (position, error) {
	if p.StartDate.IsZero() {
		p.StartDate = Today()
	}
	if !p.Principal.IsPositive() {
		return p, fmt.Errorf("%w: principal %s", ErrInvalidAmount, p.Principal)
	}
	if p.Duration <= 0 {
		return p, fmt.Errorf("%w: got %d", ErrInvalidDuration, p.Duration)
	}
	return p, nil
}

func (p position) equal(x position) bool {
	return p.Principal.Equal(x.Principal) && p.Duration == x.Duration && p.StartDate == x.StartDate
}

// SIP is a systematic investment plan: a principal plus a monthly contribution.
type SIP struct {
	position
	Monthly decimal.Decimal // Monthly is the contribution added every month.
}

// NewSIP creates a SIP.
func NewSIP(on Date, principal decimal.Decimal, years int, monthly decimal.Decimal) SIP {
	return SIP{position{Principal: principal, Duration: years, StartDate: on}, monthly}
}

func (SIP) What() InvestmentKind { return KindSIP }

// Maturity compounds the principal monthly at SIPRate and adds the monthly
// contributions without interest.
func (s SIP) Maturity() decimal.Decimal {
	months := int64(s.Duration) * 12
	rate := one.Add(SIPRate.Div(twelve))
	grown := s.Principal.Mul(pow(rate, months))
	return grown.Add(s.Monthly.Mul(decimal.NewFromInt(months)))
}

func (s SIP) Equal(i Investment) bool {
	o, ok := i.(SIP)
	return ok && s.position.equal(o.position) && s.Monthly.Equal(o.Monthly)
}

func (s SIP) Validate() (Investment, error) {
	p, err := s.position.validate()
	s.position = p
	if err != nil {
		return s, err
	}
	if !s.Monthly.IsPositive() {
		return s, fmt.Errorf("%w: monthly contribution %s", ErrInvalidAmount, s.Monthly)
	}
	return s, nil
}

// FD is a fixed deposit.
type FD struct{ position }

// NewFD creates a FD.
func NewFD(on Date, principal decimal.Decimal, years int) FD {
	return FD{position{Principal: principal, Duration: years, StartDate: on}}
}

func (FD) What() InvestmentKind { return KindFD }

// Maturity compounds the principal yearly at FDRate.
func (f FD) Maturity() decimal.Decimal {
	return f.Principal.Mul(pow(one.Add(FDRate), int64(f.Duration)))
}

func (f FD) Equal(i Investment) bool {
	o, ok := i.(FD)
	return ok && f.position.equal(o.position)
}

func (f FD) Validate() (Investment, error) {
	p, err := f.position.validate()
	return FD{p}, err
}

// MaturityAmount returns the value of the investment at the end of its duration.
func MaturityAmount(inv Investment) decimal.Decimal {
	switch v := inv.(type) {
	case SIP:
		return v.Maturity()
	case FD:
		return v.Maturity()
	default:
		panic(fmt.Sprintf("unknown investment type %T", inv))
	}
}

// pow raises base to a non negative integer power by squaring. The result is exact.
func pow(base decimal.Decimal, exp int64) decimal.Decimal {
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}
