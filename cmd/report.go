package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

// --- Report Command ---

type reportCmd struct {
	month int
	year  int
	html  bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "monthly income, expenses and savings by category" }
func (*reportCmd) Usage() string {
	return `fms report [-month <1-12>] [-year <yyyy>] [-html]

  Shows the total income, expenses and net savings of a month, and the
  expenses broken down by category. Defaults to the current month.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	today := finance.Today()
	f.IntVar(&c.month, "month", int(today.Month()), "Month number")
	f.IntVar(&c.year, "year", today.Year(), "Year")
	f.BoolVar(&c.html, "html", false, "Print the report as HTML")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := renderer.MonthName(c.month)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		md := renderer.MonthlyReportMarkdown(s.Ledger.MonthlyReport(month, c.year), s.cfg.Currency)
		if !c.html {
			printMarkdown(md)
			return false, subcommands.ExitSuccess
		}
		html, err := renderer.HTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false, subcommands.ExitFailure
		}
		fmt.Fprint(stdout, html)
		return false, subcommands.ExitSuccess
	})
}

// --- Query Command ---

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "evaluate a JSONPath expression on the ledger" }
func (*queryCmd) Usage() string {
	return `fms query <jsonpath>

  Evaluates a JSONPath expression against the JSON form of the ledger, with the
  fields "balance", "records", "investments" and "obligations".

Usage Examples:
# Amounts spent on food.
$ fms query '$.records[?(@.category=="Food")].amount'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		v, err := s.Ledger.Query(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false, subcommands.ExitFailure
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false, subcommands.ExitFailure
		}
		return false, subcommands.ExitSuccess
	})
}
