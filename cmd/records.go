package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

// --- Income Command ---

type incomeCmd struct {
	on     string
	amount string
	desc   string
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "record money coming in" }
func (*incomeCmd) Usage() string {
	return `fms income -amount <amount> -desc <description> [-on <date>]

  Records an income. The amount is credited to the balance.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "0d", "Date of the income (d/m/yyyy, yyyy-mm-dd or relative like -1d)")
	f.StringVar(&c.amount, "amount", "", "Amount received")
	f.StringVar(&c.desc, "desc", "", "Description")
}

func (c *incomeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := finance.ParseDate(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		id, err := s.RecordIncome(on, amount, c.desc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false, subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Income %s recorded. Balance: %s\n", id, finance.M(s.Balance, s.cfg.Currency))
		return true, subcommands.ExitSuccess
	})
}

// --- Expense Command ---

type expenseCmd struct {
	on       string
	amount   string
	desc     string
	category string
}

func (*expenseCmd) Name() string     { return "expense" }
func (*expenseCmd) Synopsis() string { return "record money going out" }
func (*expenseCmd) Usage() string {
	return `fms expense -amount <amount> -desc <description> [-category <category>] [-on <date>]

  Records an expenditure. The amount is debited from the balance, that cannot
  go below the minimum balance. See "fms topic categories".
`
}

func (c *expenseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "0d", "Date of the expenditure (d/m/yyyy, yyyy-mm-dd or relative like -1d)")
	f.StringVar(&c.amount, "amount", "", "Amount spent")
	f.StringVar(&c.desc, "desc", "", "Description")
	f.StringVar(&c.category, "category", "Other", "Category name or number (1 Food ... 8 Other)")
}

func (c *expenseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := finance.ParseDate(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	category, err := finance.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		id, err := s.RecordExpenditure(on, amount, c.desc, category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false, subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "Expenditure %s recorded. Balance: %s\n", id, finance.M(s.Balance, s.cfg.Currency))
		return true, subcommands.ExitSuccess
	})
}

// --- Show Command ---

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "list all records with the current balance" }
func (*showCmd) Usage() string {
	return `fms show

  Lists every income and expenditure with its identifier, and the current balance.
`
}

func (*showCmd) SetFlags(f *flag.FlagSet) {}

func (*showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		printMarkdown(renderer.RecordsMarkdown(s.Ledger, s.Balance, s.cfg.Currency))
		return false, subcommands.ExitSuccess
	})
}

// --- Lookup Command ---

type lookupCmd struct{}

func (*lookupCmd) Name() string     { return "lookup" }
func (*lookupCmd) Synopsis() string { return "show a record by its identifier" }
func (*lookupCmd) Usage() string {
	return `fms lookup <id>

  Shows the record with the given identifier, as listed by "fms show".
`
}

func (*lookupCmd) SetFlags(f *flag.FlagSet) {}

func (*lookupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	id := strings.ToUpper(f.Arg(0))
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		r, ok := s.Ledger.Lookup(id)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: no transaction %q\n", id)
			return false, subcommands.ExitFailure
		}
		printMarkdown(renderer.RecordMarkdown(id, r, s.cfg.Currency))
		return false, subcommands.ExitSuccess
	})
}

// --- Suggest Command ---

type suggestCmd struct{}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "list recorded descriptions starting with a prefix" }
func (*suggestCmd) Usage() string {
	return `fms suggest [<prefix>]

  Lists every recorded description starting with prefix, or all of them.
`
}

func (*suggestCmd) SetFlags(f *flag.FlagSet) {}

func (*suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	prefix := strings.Join(f.Args(), " ")
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		printMarkdown(renderer.SuggestionsMarkdown(prefix, s.Ledger.Suggest(prefix)))
		return false, subcommands.ExitSuccess
	})
}
