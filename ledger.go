package finance

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/shopspring/decimal"
)

// Ledger holds the records and investments of a single user.
//
// Records are append only: there is no edit or delete operation. A Ledger is
// not safe for concurrent use.
type Ledger struct {
	records     []Record
	ids         []string // ids[i] is the identifier of records[i].
	investments []Investment

	index    *recordIndex
	names    *trie
	schedule *scheduleQueue
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		index:    newRecordIndex(),
		names:    newTrie(),
		schedule: &scheduleQueue{},
	}
}

// State is the persisted content of a Ledger.
type State struct {
	Records     []Record
	Investments []Investment
	Obligations []Obligation
}

// AddRecord validates r, appends it to the ledger and returns its identifier.
//
// The caller is responsible for adjusting its balance.
func (l *Ledger) AddRecord(r Record) (string, error) {
	if r == nil {
		return "", fmt.Errorf("%w: nil record", ErrInvalidAmount)
	}
	r, err := r.Validate()
	if err != nil {
		return "", fmt.Errorf("invalid %s record on %v: %w", r.What(), r.When(), err)
	}
	id := l.append(r)
	slog.Debug("add-record", "id", id, "type", r.What(), "amount", r.Value(), "category", r.Group())
	return id, nil
}

func (l *Ledger) append(r Record) string {
	id := l.index.register(len(l.records))
	l.records = append(l.records, r)
	l.ids = append(l.ids, id)
	l.names.insert(r.Memo())
	return id
}

// AddInvestment validates inv and appends it to the ledger.
func (l *Ledger) AddInvestment(inv Investment) error {
	if inv == nil {
		return fmt.Errorf("%w: nil investment", ErrInvalidAmount)
	}
	inv, err := inv.Validate()
	if err != nil {
		return fmt.Errorf("invalid %s investment on %v: %w", inv.What(), inv.When(), err)
	}
	l.investments = append(l.investments, inv)
	slog.Debug("add-investment", "type", inv.What(), "principal", inv.Value(), "years", inv.Years())
	return nil
}

// Schedule adds an obligation to the pending ones.
func (l *Ledger) Schedule(o Obligation) error {
	if err := o.Validate(); err != nil {
		return fmt.Errorf("invalid obligation %q: %w", o.Description, err)
	}
	l.schedule.push(o)
	return nil
}

// Upcoming returns the pending obligations, soonest first.
func (l *Ledger) Upcoming() []Obligation { return l.schedule.snapshot() }

// Next returns the soonest pending obligation.
func (l *Ledger) Next() (Obligation, bool) { return l.schedule.next() }

// Suggest returns every recorded description starting with prefix, in lexicographic order.
func (l *Ledger) Suggest(prefix string) []string { return l.names.suggestions(prefix) }

// Lookup returns the record with that identifier.
//
// Identifiers issued before the last Replace (or Load) are stale and not found.
func (l *Ledger) Lookup(id string) (Record, bool) {
	pos, ok := l.index.lookup(id)
	if !ok {
		return nil, false
	}
	return l.records[pos], true
}

// Records iterates over records and their identifier, in insertion order.
func (l *Ledger) Records() iter.Seq2[string, Record] {
	return func(yield func(string, Record) bool) {
		for i, r := range l.records {
			if !yield(l.ids[i], r) {
				return
			}
		}
	}
}

// Investments iterates over investments in insertion order.
func (l *Ledger) Investments() iter.Seq[Investment] {
	return func(yield func(Investment) bool) {
		for _, inv := range l.investments {
			if !yield(inv) {
				return
			}
		}
	}
}

// Len returns the number of records and investments.
func (l *Ledger) Len() (records, investments int) { return len(l.records), len(l.investments) }

// State returns a copy of the ledger content.
func (l *Ledger) State() State {
	return State{
		Records:     append([]Record(nil), l.records...),
		Investments: append([]Investment(nil), l.investments...),
		Obligations: l.schedule.snapshot(),
	}
}

// Replace validates s and replaces the whole content of the ledger with it.
//
// On error the ledger is left untouched. On success every identifier
// previously issued becomes stale, and loaded records get fresh ones.
func (l *Ledger) Replace(s State) error {
	records := make([]Record, 0, len(s.Records))
	for i, r := range s.Records {
		if r == nil {
			return fmt.Errorf("record #%d: %w: nil record", i+1, ErrMalformed)
		}
		v, err := r.Validate()
		if err != nil {
			return fmt.Errorf("record #%d: %w", i+1, err)
		}
		records = append(records, v)
	}
	investments := make([]Investment, 0, len(s.Investments))
	for i, inv := range s.Investments {
		if inv == nil {
			return fmt.Errorf("investment #%d: %w: nil investment", i+1, ErrMalformed)
		}
		v, err := inv.Validate()
		if err != nil {
			return fmt.Errorf("investment #%d: %w", i+1, err)
		}
		investments = append(investments, v)
	}
	for i, o := range s.Obligations {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("obligation #%d: %w", i+1, err)
		}
	}

	l.index.reset()
	l.records, l.ids = nil, nil
	l.names = newTrie()
	for _, r := range records {
		l.append(r)
	}
	l.investments = investments
	l.schedule.reset()
	for _, o := range s.Obligations {
		l.schedule.push(o)
	}
	return nil
}

// BalanceDelta returns the balance change implied by s: incomes minus
// expenditures minus invested principals.
func BalanceDelta(s State) decimal.Decimal {
	delta := decimal.Zero
	for _, r := range s.Records {
		delta = delta.Add(signed(r))
	}
	for _, inv := range s.Investments {
		delta = delta.Sub(inv.Value())
	}
	return delta
}

// Balance returns the balance change implied by the ledger content.
func (l *Ledger) Balance() decimal.Decimal {
	return BalanceDelta(State{Records: l.records, Investments: l.investments})
}
