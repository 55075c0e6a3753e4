package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RecordKind is a typed string identifying the variant of a Record.
type RecordKind string

const (
	KindIncome      RecordKind = "Income"
	KindExpenditure RecordKind = "Expenditure"
)

// Record is an income or expenditure event recorded in the ledger.
//
// The set of records is closed: Income and Expenditure are the only
// implementations. The amount is always a positive magnitude, the direction is
// carried by the variant.
type Record interface {
	What() RecordKind       // What returns the variant of the record.
	When() Date             // When returns the date of the record.
	Value() decimal.Decimal // Value returns the positive amount of the record.
	Memo() string           // Memo returns the free text description.
	Group() Category        // Group returns the category of the record.
	Equal(Record) bool
	Validate() (Record, error) // Validate returns the record with quick fixes applied, or an error.
	record()
}

// entry holds the fields shared by all records.
type entry struct {
	Amount      decimal.Decimal
	Description string
	Date        Date
	Category    Category
}

func (e entry) When() Date             { return e.Date }
func (e entry) Value() decimal.Decimal { return e.Amount }
func (e entry) Memo() string           { return e.Description }
func (e entry) Group() Category        { return e.Category }
func (entry) record()                  {}

// validate checks the entry fields. It sets the date to today if it's zero.
func (e entry) validate() (entry, error) {
	if e.Date.IsZero() {
		e.Date = Today()
	}
	if !e.Amount.IsPositive() {
		return e, fmt.Errorf("%w: got %s", ErrInvalidAmount, e.Amount)
	}
	return e, nil
}

func (e entry) equal(x entry) bool {
	return e.Amount.Equal(x.Amount) &&
		e.Description == x.Description &&
		e.Date == x.Date &&
		e.Category == x.Category
}

// Income is money coming in.
type Income struct{ entry }

// NewIncome creates an Income in the Income category.
func NewIncome(on Date, amount decimal.Decimal, description string) Income {
	return Income{entry{Amount: amount, Description: description, Date: on, Category: CategoryIncome}}
}

// WithCategory returns a copy of the income assigned to another category.
func (i Income) WithCategory(c Category) Income {
	i.Category = c
	return i
}

func (Income) What() RecordKind { return KindIncome }

func (i Income) Equal(r Record) bool {
	o, ok := r.(Income)
	return ok && i.entry.equal(o.entry)
}

func (i Income) Validate() (Record, error) {
	e, err := i.entry.validate()
	return Income{e}, err
}

// Expenditure is money going out.
type Expenditure struct{ entry }

// NewExpenditure creates an Expenditure. The zero category is replaced by
// Other, as income is not a valid expenditure category by default.
func NewExpenditure(on Date, amount decimal.Decimal, description string, category Category) Expenditure {
	if category == CategoryIncome {
		category = CategoryOther
	}
	return Expenditure{entry{Amount: amount, Description: description, Date: on, Category: category}}
}

func (Expenditure) What() RecordKind { return KindExpenditure }

func (e Expenditure) Equal(r Record) bool {
	o, ok := r.(Expenditure)
	return ok && e.entry.equal(o.entry)
}

func (e Expenditure) Validate() (Record, error) {
	v, err := e.entry.validate()
	return Expenditure{v}, err
}

// signed returns the amount as it impacts the balance: positive for income,
// negative for expenditure.
func signed(r Record) decimal.Decimal {
	switch v := r.(type) {
	case Income:
		return v.Amount
	case Expenditure:
		return v.Amount.Neg()
	default:
		panic(fmt.Sprintf("unknown record type %T", r))
	}
}
