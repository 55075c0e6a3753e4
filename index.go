package finance

import "strconv"

// idPrefix prefixes every record identifier.
const idPrefix = "TXN"

// recordIndex issues unique identifiers and resolves them to positions in the
// ledger's record list.
//
// Identifiers are never reused during the life of the index, even across reset.
type recordIndex struct {
	next  int
	slots map[string]int
}

func newRecordIndex() *recordIndex {
	return &recordIndex{slots: make(map[string]int)}
}

// register returns a fresh identifier bound to the record at position pos.
func (x *recordIndex) register(pos int) string {
	x.next++
	id := idPrefix + strconv.Itoa(x.next)
	x.slots[id] = pos
	return id
}

// lookup returns the position bound to id, or false for unknown and stale identifiers.
func (x *recordIndex) lookup(id string) (int, bool) {
	pos, ok := x.slots[id]
	return pos, ok
}

// reset drops every binding. Previously issued identifiers become stale, the
// counter keeps going.
func (x *recordIndex) reset() {
	clear(x.slots)
}
