package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/finance"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleLedger(t *testing.T) *finance.Ledger {
	t.Helper()
	l := finance.NewLedger()
	for _, r := range []finance.Record{
		finance.NewIncome(finance.NewDate(2024, 3, 1), dec("1500"), "March salary"),
		finance.NewExpenditure(finance.NewDate(2024, 3, 4), dec("300"), "Groceries", finance.CategoryFood),
		finance.NewExpenditure(finance.NewDate(2024, 3, 9), dec("100"), "Bus pass", finance.CategoryTransportation),
	} {
		if _, err := l.AddRecord(r); err != nil {
			t.Fatalf("AddRecord() = %v", err)
		}
	}
	if err := l.AddInvestment(finance.NewFD(finance.NewDate(2024, 1, 1), dec("1000"), 1)); err != nil {
		t.Fatalf("AddInvestment() = %v", err)
	}
	return l
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestRecordsMarkdown(t *testing.T) {
	l := sampleLedger(t)
	got := RecordsMarkdown(l, dec("2100"), "USD")
	assertContains(t, got,
		"# Finance Information",
		"Current Balance: $2,100.00",
		"TXN1", "March salary", "+$1,500.00",
		"TXN2", "Groceries", "Food", "-$300.00",
		"4/3/2024",
	)
}

func TestRecordsMarkdownEmpty(t *testing.T) {
	got := RecordsMarkdown(finance.NewLedger(), dec("2000"), "USD")
	assertContains(t, got, "No transactions recorded.")
}

func TestInvestmentsMarkdown(t *testing.T) {
	got := InvestmentsMarkdown(sampleLedger(t), "USD")
	assertContains(t, got, "# Investments", "FD", "$1,000.00", "$1,071.00", "Total at maturity: $1,071.00")
}

func TestMonthlyReportMarkdown(t *testing.T) {
	r := sampleLedger(t).MonthlyReport(time.March, 2024)
	got := MonthlyReportMarkdown(r, "USD")
	assertContains(t, got,
		"# Monthly Report March 2024",
		"$1,500.00", "$400.00", "$1,100.00",
		"Food", "75.0%",
		"Transportation", "25.0%",
	)
	if strings.Contains(got, "Housing") {
		t.Errorf("output lists a category without expense:\n%s", got)
	}
}

func TestMonthlyReportMarkdownNoExpense(t *testing.T) {
	r := sampleLedger(t).MonthlyReport(time.April, 2024)
	got := MonthlyReportMarkdown(r, "USD")
	assertContains(t, got, "No expenses this month.")
}

func TestUpcomingMarkdown(t *testing.T) {
	obligations := []finance.Obligation{
		{Due: finance.NewDate(2024, 4, 1), Description: "Rent", Amount: dec("800")},
		{Due: finance.NewDate(2024, 5, 1), Description: "SIP", Amount: dec("100"), Investment: true},
	}
	got := UpcomingMarkdown(obligations, finance.NewDate(2024, 4, 15), "USD")
	assertContains(t, got, "1/4/2024 (overdue)", "Payment", "Rent", "$800.00", "1/5/2024", "Investment")
	if strings.Contains(got, "1/5/2024 (overdue)") {
		t.Errorf("future obligation flagged as overdue:\n%s", got)
	}
	assertContains(t, UpcomingMarkdown(nil, finance.Today(), "USD"), "Nothing scheduled.")
}

func TestSuggestionsMarkdown(t *testing.T) {
	got := SuggestionsMarkdown("Gr", []string{"Groceries", "Gym"})
	assertContains(t, got, "Groceries", "Gym")
	assertContains(t, SuggestionsMarkdown("zz", nil), "No matching description.")
}

func TestHTML(t *testing.T) {
	got, err := HTML(MonthlyReportMarkdown(sampleLedger(t).MonthlyReport(time.March, 2024), "USD"))
	if err != nil {
		t.Fatalf("HTML() = %v", err)
	}
	assertContains(t, got, "<h1", "Monthly Report March 2024", "<table>", "Food</td>")
}

func TestMonthName(t *testing.T) {
	if m, err := MonthName(3); err != nil || m != time.March {
		t.Errorf("MonthName(3) = %v, %v", m, err)
	}
	if _, err := MonthName(13); err == nil {
		t.Errorf("MonthName(13): want error")
	}
}

func TestRecordsMarkdownEscapesDescriptions(t *testing.T) {
	l := finance.NewLedger()
	if _, err := l.AddRecord(finance.NewIncome(finance.NewDate(2024, 3, 1), dec("10"), "gift|bonus\nfrom\r\nmom")); err != nil {
		t.Fatalf("AddRecord() = %v", err)
	}
	got := RecordsMarkdown(l, dec("2010"), "USD")

	var row string
	for _, line := range strings.Split(got, "\n") {
		if strings.Contains(line, "TXN1") {
			row = line
		}
	}
	if !strings.Contains(row, "gift") || !strings.Contains(row, `\|bonus from mom`) {
		t.Errorf("row = %q, want the description escaped on a single line\n%s", row, got)
	}
	if strings.Count(got, "TXN1") != 1 {
		t.Errorf("the record spans more than one row:\n%s", got)
	}
}
