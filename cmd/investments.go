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

// --- Invest Command ---

type investCmd struct {
	on      string
	kind    string
	amount  string
	years   int
	monthly string
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "open a SIP or a FD" }
func (*investCmd) Usage() string {
	return `fms invest -type <sip|fd> -amount <principal> -years <n> [-monthly <amount>] [-on <date>]

  Opens an investment. The principal is debited from the balance, that cannot
  go below the minimum balance. A SIP requires a monthly contribution.
  See "fms topic investments".
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "0d", "Start date (d/m/yyyy, yyyy-mm-dd or relative like -1d)")
	f.StringVar(&c.kind, "type", "", "Investment type: sip or fd")
	f.StringVar(&c.amount, "amount", "", "Principal")
	f.IntVar(&c.years, "years", 0, "Duration in years")
	f.StringVar(&c.monthly, "monthly", "", "Monthly contribution, SIP only")
}

func (c *investCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.years <= 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := finance.ParseDate(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	principal, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var inv finance.Investment
	switch finance.InvestmentKind(strings.ToUpper(c.kind)) {
	case finance.KindSIP:
		monthly, err := parseAmount(c.monthly)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: monthly contribution: %v\n", err)
			return subcommands.ExitUsageError
		}
		inv = finance.NewSIP(on, principal, c.years, monthly)
	case finance.KindFD:
		inv = finance.NewFD(on, principal, c.years)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown investment type %q, want sip or fd\n", c.kind)
		return subcommands.ExitUsageError
	}

	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		if err := s.Invest(inv); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false, subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "%s of %s recorded, maturity amount %s. Balance: %s\n",
			inv.What(),
			finance.M(inv.Value(), s.cfg.Currency),
			finance.M(finance.MaturityAmount(inv), s.cfg.Currency),
			finance.M(s.Balance, s.cfg.Currency))
		return true, subcommands.ExitSuccess
	})
}

// --- Maturity Command ---

type maturityCmd struct{}

func (*maturityCmd) Name() string     { return "maturity" }
func (*maturityCmd) Synopsis() string { return "list investments with their maturity amount" }
func (*maturityCmd) Usage() string {
	return `fms maturity

  Lists every investment with the amount it will be worth at the end of its duration.
`
}

func (*maturityCmd) SetFlags(f *flag.FlagSet) {}

func (*maturityCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		printMarkdown(renderer.InvestmentsMarkdown(s.Ledger, s.cfg.Currency))
		return false, subcommands.ExitSuccess
	})
}
