// Package renderer renders ledger views as markdown.
package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/finance"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// RecordsMarkdown lists every record of the ledger with the current balance.
func RecordsMarkdown(l *finance.Ledger, balance decimal.Decimal, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Finance Information")
	doc.PlainText(fmt.Sprintf("Current Balance: %s", finance.M(balance, currency)))

	doc.H2("Transactions")
	var rows [][]string
	for id, r := range l.Records() {
		rows = append(rows, recordRow(id, r, currency))
	}
	if len(rows) == 0 {
		doc.PlainText("No transactions recorded.")
	} else {
		doc.Table(md.TableSet{
			Header: []string{"ID", "Date", "Type", "Category", "Description", "Amount"},
			Rows:   rows,
		})
	}
	return doc.String()
}

// RecordMarkdown renders a single record found by its identifier.
func RecordMarkdown(id string, r finance.Record, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2(fmt.Sprintf("Transaction %s", id))
	doc.Table(md.TableSet{
		Header: []string{"ID", "Date", "Type", "Category", "Description", "Amount"},
		Rows:   [][]string{recordRow(id, r, currency)},
	})
	return doc.String()
}

func recordRow(id string, r finance.Record, currency string) []string {
	amount := finance.M(r.Value(), currency)
	if r.What() == finance.KindExpenditure {
		amount = amount.Neg()
	}
	return []string{id, r.When().String(), string(r.What()), r.Group().String(), cell(r.Memo()), amount.SignedString()}
}

// cell escapes text for a single markdown table cell.
func cell(s string) string {
	return cellReplacer.Replace(s)
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

// InvestmentsMarkdown lists every investment with its maturity amount.
func InvestmentsMarkdown(l *finance.Ledger, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Investments")
	var rows [][]string
	total := decimal.Zero
	for inv, maturity := range l.Maturities() {
		monthly := "-"
		if sip, ok := inv.(finance.SIP); ok {
			monthly = finance.M(sip.Monthly, currency).String()
		}
		rows = append(rows, []string{
			string(inv.What()),
			inv.When().String(),
			finance.M(inv.Value(), currency).String(),
			fmt.Sprintf("%d", inv.Years()),
			monthly,
			finance.M(maturity, currency).String(),
		})
		total = total.Add(maturity)
	}
	if len(rows) == 0 {
		doc.PlainText("No investments recorded.")
		return doc.String()
	}
	doc.Table(md.TableSet{
		Header: []string{"Type", "Start", "Principal", "Years", "Monthly", "Maturity"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("Total at maturity: %s", finance.M(total, currency)))
	return doc.String()
}

// MonthlyReportMarkdown renders the totals of a month and the expense breakdown per category.
func MonthlyReportMarkdown(r *finance.MonthlyReport, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Monthly Report %s %d", r.Month, r.Year))
	doc.Table(md.TableSet{
		Header: []string{"Total", "Amount"},
		Rows: [][]string{
			{"Income", finance.M(r.TotalIncome, currency).String()},
			{"Expenses", finance.M(r.TotalExpense, currency).String()},
			{"Net Savings", finance.M(r.NetSavings, currency).String()},
		},
	})

	doc.H2("Expenses by Category")
	var rows [][]string
	for c, amount := range r.Expenses() {
		share := "-"
		if p, ok := r.Share(c); ok {
			share = p.String()
		}
		rows = append(rows, []string{c.String(), finance.M(amount, currency).String(), share})
	}
	if len(rows) == 0 {
		doc.PlainText("No expenses this month.")
		return doc.String()
	}
	doc.Table(md.TableSet{
		Header: []string{"Category", "Amount", "Share"},
		Rows:   rows,
	})
	return doc.String()
}

// UpcomingMarkdown lists pending obligations, soonest first. Obligations due
// before today are flagged as overdue.
func UpcomingMarkdown(obligations []finance.Obligation, today finance.Date, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Upcoming Payments and Investments")
	if len(obligations) == 0 {
		doc.PlainText("Nothing scheduled.")
		return doc.String()
	}
	rows := make([][]string, 0, len(obligations))
	for _, o := range obligations {
		due := o.Due.String()
		if o.Due.Before(today) {
			due += " (overdue)"
		}
		rows = append(rows, []string{due, o.Type(), cell(o.Description), finance.M(o.Amount, currency).String()})
	}
	doc.Table(md.TableSet{
		Header: []string{"Due", "Type", "Description", "Amount"},
		Rows:   rows,
	})
	return doc.String()
}

// SuggestionsMarkdown lists the descriptions matching prefix.
func SuggestionsMarkdown(prefix string, suggestions []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(fmt.Sprintf("Suggestions for %q", prefix))
	if len(suggestions) == 0 {
		doc.PlainText("No matching description.")
		return doc.String()
	}
	doc.BulletList(suggestions...)
	return doc.String()
}

// HTML converts markdown produced by this package to a standalone HTML fragment.
func HTML(markdown string) (string, error) {
	gm := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := gm.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

// MonthName returns the English name of a month number, or an error if out of range.
func MonthName(month int) (time.Month, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("invalid month %d: must be between 1 and 12", month)
	}
	return time.Month(month), nil
}
