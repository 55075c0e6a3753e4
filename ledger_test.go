package finance

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
)

// sampleLedger returns a ledger with a few records, investments and obligations.
func sampleLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	records := []Record{
		NewIncome(NewDate(2024, 3, 1), dec("500"), "March salary"),
		NewExpenditure(NewDate(2024, 3, 5), dec("200"), "Groceries", CategoryFood),
		NewExpenditure(NewDate(2024, 4, 2), dec("100"), "Groceries", CategoryFood),
		NewExpenditure(NewDate(2024, 3, 10), dec("49.99"), `Cinema "Dune"`, CategoryEntertainment),
		NewIncome(NewDate(2024, 3, 20), dec("75.5"), "gift").WithCategory(CategoryOther),
	}
	for _, r := range records {
		if _, err := l.AddRecord(r); err != nil {
			t.Fatalf("AddRecord(%v) = %v", r, err)
		}
	}
	investments := []Investment{
		NewFD(NewDate(2024, 1, 1), dec("1000"), 1),
		NewSIP(NewDate(2024, 2, 1), dec("300"), 2, dec("25")),
	}
	for _, inv := range investments {
		if err := l.AddInvestment(inv); err != nil {
			t.Fatalf("AddInvestment(%v) = %v", inv, err)
		}
	}
	obligations := []Obligation{
		{Due: NewDate(2024, 5, 1), Description: "Rent", Amount: dec("800")},
		{Due: NewDate(2024, 4, 15), Description: "SIP installment", Amount: dec("25"), Investment: true},
	}
	for _, o := range obligations {
		if err := l.Schedule(o); err != nil {
			t.Fatalf("Schedule(%v) = %v", o, err)
		}
	}
	return l
}

func TestLedgerAddRecord(t *testing.T) {
	l := NewLedger()
	id1, err := l.AddRecord(NewIncome(NewDate(2024, 3, 1), dec("500"), "salary"))
	if err != nil {
		t.Fatalf("AddRecord() = %v", err)
	}
	id2, err := l.AddRecord(NewExpenditure(NewDate(2024, 3, 2), dec("20"), "sandwich", CategoryFood))
	if err != nil {
		t.Fatalf("AddRecord() = %v", err)
	}
	if id1 != "TXN1" || id2 != "TXN2" {
		t.Errorf("AddRecord() ids = %q, %q, want TXN1, TXN2", id1, id2)
	}

	r, ok := l.Lookup(id2)
	if !ok {
		t.Fatalf("Lookup(%q) not found", id2)
	}
	if r.Memo() != "sandwich" || r.Group() != CategoryFood || r.What() != KindExpenditure {
		t.Errorf("Lookup(%q) = %v", id2, r)
	}
	if _, ok := l.Lookup("TXN3"); ok {
		t.Errorf("Lookup(TXN3) found a never issued identifier")
	}

	if got := l.Suggest("sa"); !slices.Equal(got, []string{"salary", "sandwich"}) {
		t.Errorf("Suggest(sa) = %q", got)
	}
}

func TestLedgerRejectsInvalid(t *testing.T) {
	l := NewLedger()
	if _, err := l.AddRecord(NewIncome(NewDate(2024, 3, 1), decimal.Zero, "nothing")); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("AddRecord(zero amount) = %v, want ErrInvalidAmount", err)
	}
	if _, err := l.AddRecord(NewExpenditure(NewDate(2024, 3, 1), dec("-3"), "refund", CategoryFood)); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("AddRecord(negative amount) = %v, want ErrInvalidAmount", err)
	}
	if err := l.AddInvestment(NewFD(NewDate(2024, 3, 1), dec("100"), 0)); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("AddInvestment(zero duration) = %v, want ErrInvalidDuration", err)
	}
	if err := l.Schedule(Obligation{Due: NewDate(2024, 3, 1), Amount: decimal.Zero}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Schedule(zero amount) = %v, want ErrInvalidAmount", err)
	}
	if n, m := l.Len(); n != 0 || m != 0 {
		t.Errorf("Len() = %d, %d, want 0, 0", n, m)
	}
	if got := l.Suggest(""); len(got) != 0 {
		t.Errorf("Suggest() = %q, want none", got)
	}
}

func TestLedgerRecordDefaults(t *testing.T) {
	l := NewLedger()
	id, err := l.AddRecord(NewExpenditure(Date{}, dec("10"), "coffee", CategoryIncome))
	if err != nil {
		t.Fatalf("AddRecord() = %v", err)
	}
	r, _ := l.Lookup(id)
	if r.When() != Today() {
		t.Errorf("When() = %v, want today", r.When())
	}
	if r.Group() != CategoryOther {
		t.Errorf("Group() = %v, want Other", r.Group())
	}
	if got := NewIncome(Today(), dec("1"), "x").Group(); got != CategoryIncome {
		t.Errorf("NewIncome().Group() = %v, want Income", got)
	}
}

func TestLedgerRoundTrip(t *testing.T) {
	l := sampleLedger(t)
	path := filepath.Join(t.TempDir(), "alice_finance_data.txt")
	if err := l.Save(path); err != nil {
		t.Fatalf("Save() = %v", err)
	}

	loaded := NewLedger()
	balance := decimal.Zero
	if err := loaded.Load(path, &balance); err != nil {
		t.Fatalf("Load() = %v", err)
	}

	want, got := l.State(), loaded.State()
	if len(got.Records) != len(want.Records) {
		t.Fatalf("loaded %d records, want %d", len(got.Records), len(want.Records))
	}
	for i := range want.Records {
		if !got.Records[i].Equal(want.Records[i]) {
			t.Errorf("record #%d = %v, want %v", i, got.Records[i], want.Records[i])
		}
	}
	if len(got.Investments) != len(want.Investments) {
		t.Fatalf("loaded %d investments, want %d", len(got.Investments), len(want.Investments))
	}
	for i := range want.Investments {
		if !got.Investments[i].Equal(want.Investments[i]) {
			t.Errorf("investment #%d = %v, want %v", i, got.Investments[i], want.Investments[i])
		}
	}
	if len(got.Obligations) != len(want.Obligations) {
		t.Fatalf("loaded %d obligations, want %d", len(got.Obligations), len(want.Obligations))
	}
	for i := range want.Obligations {
		if !got.Obligations[i].Equal(want.Obligations[i]) {
			t.Errorf("obligation #%d = %v, want %v", i, got.Obligations[i], want.Obligations[i])
		}
	}

	// 500 - 200 - 100 - 49.99 + 75.5 - 1000 - 300
	if wantBalance := dec("-1074.49"); !balance.Equal(wantBalance) {
		t.Errorf("balance after Load() = %s, want %s", balance, wantBalance)
	}
	if !balance.Equal(l.Balance()) {
		t.Errorf("balance after Load() = %s, Balance() = %s", balance, l.Balance())
	}
	if got := loaded.Suggest("Gro"); !slices.Equal(got, []string{"Groceries"}) {
		t.Errorf("Suggest(Gro) after Load() = %q", got)
	}
}

func TestLedgerLoadInvalidatesIdentifiers(t *testing.T) {
	l := sampleLedger(t)
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := l.Save(path); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	var old []string
	for id := range l.Records() {
		old = append(old, id)
	}

	if err := l.Load(path, nil); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	for _, id := range old {
		if _, ok := l.Lookup(id); ok {
			t.Errorf("Lookup(%q) after Load(): want stale identifier", id)
		}
	}
	n := 0
	for id, r := range l.Records() {
		n++
		if slices.Contains(old, id) {
			t.Errorf("Load() reused identifier %q", id)
		}
		got, ok := l.Lookup(id)
		if !ok || !got.Equal(r) {
			t.Errorf("Lookup(%q) = %v, %v, want %v", id, got, ok, r)
		}
	}
	if n != len(old) {
		t.Errorf("Records() after Load() yields %d records, want %d", n, len(old))
	}
}

func TestLedgerLoadFailureIsNonDestructive(t *testing.T) {
	l := sampleLedger(t)
	before := l.State()
	balance := dec("2000")

	err := l.Load(filepath.Join(t.TempDir(), "missing.txt"), &balance)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want fs.ErrNotExist", err)
	}
	if !balance.Equal(dec("2000")) {
		t.Errorf("balance after failed Load() = %s, want 2000", balance)
	}
	after := l.State()
	if len(after.Records) != len(before.Records) || len(after.Investments) != len(before.Investments) || len(after.Obligations) != len(before.Obligations) {
		t.Errorf("failed Load() modified the ledger")
	}
	if _, ok := l.Lookup("TXN1"); !ok {
		t.Errorf("Lookup(TXN1) after failed Load(): want found")
	}
}

func TestLedgerReplaceIsAtomic(t *testing.T) {
	l := sampleLedger(t)
	err := l.Replace(State{
		Records: []Record{
			NewIncome(NewDate(2024, 1, 1), dec("10"), "ok"),
			NewIncome(NewDate(2024, 1, 1), dec("0"), "not ok"),
		},
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Replace() = %v, want ErrInvalidAmount", err)
	}
	if n, m := l.Len(); n != 5 || m != 2 {
		t.Errorf("Len() after failed Replace() = %d, %d, want 5, 2", n, m)
	}
}

func TestLedgerUpcoming(t *testing.T) {
	l := sampleLedger(t)
	got := l.Upcoming()
	if len(got) != 2 {
		t.Fatalf("Upcoming() = %v, want 2 obligations", got)
	}
	if got[0].Description != "SIP installment" || got[1].Description != "Rent" {
		t.Errorf("Upcoming() = %v, want soonest first", got)
	}
	if next, ok := l.Next(); !ok || !next.Equal(got[0]) {
		t.Errorf("Next() = %v, %v, want %v", next, ok, got[0])
	}
}
