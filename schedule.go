package finance

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Obligation is a future payment or investment due date, tracked as a reminder.
type Obligation struct {
	Due         Date
	Description string
	Amount      decimal.Decimal
	Investment  bool // Investment is true for an investment due date, false for a payment.
}

// Type returns "Investment" or "Payment".
func (o Obligation) Type() string {
	if o.Investment {
		return "Investment"
	}
	return "Payment"
}

// Validate checks the obligation amount.
func (o Obligation) Validate() error {
	if !o.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, o.Amount)
	}
	return nil
}

func (o Obligation) Equal(x Obligation) bool {
	return o.Due == x.Due && o.Description == x.Description && o.Amount.Equal(x.Amount) && o.Investment == x.Investment
}

// scheduled is an obligation with its insertion sequence, used to break ties.
type scheduled struct {
	Obligation
	seq int
}

func (a scheduled) compare(b scheduled) int {
	if c := a.Due.Compare(b.Due); c != 0 {
		return c
	}
	return cmpInt(a.seq, b.seq)
}

// scheduleQueue keeps pending obligations ordered by due date, soonest first.
// Obligations due the same day keep their insertion order.
type scheduleQueue struct {
	items []scheduled
	seq   int
}

// heap.Interface implementation. Use push and snapshot instead.
func (q *scheduleQueue) Len() int           { return len(q.items) }
func (q *scheduleQueue) Less(i, j int) bool { return q.items[i].compare(q.items[j]) < 0 }
func (q *scheduleQueue) Swap(i, j int)      { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *scheduleQueue) Push(x any)         { q.items = append(q.items, x.(scheduled)) }
func (q *scheduleQueue) Pop() any {
	last := len(q.items) - 1
	x := q.items[last]
	q.items = q.items[:last]
	return x
}

// push inserts o in O(log n).
func (q *scheduleQueue) push(o Obligation) {
	q.seq++
	heap.Push(q, scheduled{o, q.seq})
}

// next returns the soonest obligation without removing it.
func (q *scheduleQueue) next() (Obligation, bool) {
	if len(q.items) == 0 {
		return Obligation{}, false
	}
	return q.items[0].Obligation, true
}

// snapshot returns all obligations in due date order. The queue is left untouched.
func (q *scheduleQueue) snapshot() []Obligation {
	sorted := slices.Clone(q.items)
	slices.SortFunc(sorted, scheduled.compare)
	result := make([]Obligation, len(sorted))
	for i, s := range sorted {
		result[i] = s.Obligation
	}
	return result
}

// reset empties the queue.
func (q *scheduleQueue) reset() {
	q.items = q.items[:0]
}
