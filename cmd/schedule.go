package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

// --- Schedule Command ---

type scheduleCmd struct {
	on         string
	amount     string
	desc       string
	investment bool
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "remind a future payment or investment" }
func (*scheduleCmd) Usage() string {
	return `fms schedule -on <date> -amount <amount> -desc <description> [-investment]

  Schedules a reminder for a payment, or an investment with -investment.
  The balance is not changed. See "fms topic schedule".
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "on", "", "Due date (d/m/yyyy, yyyy-mm-dd or relative like +1m)")
	f.StringVar(&c.amount, "amount", "", "Amount due")
	f.StringVar(&c.desc, "desc", "", "Description")
	f.BoolVar(&c.investment, "investment", false, "The reminder is for an investment")
}

func (c *scheduleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.on == "" || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	due, err := finance.ParseDate(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	o := finance.Obligation{Due: due, Description: c.desc, Amount: amount, Investment: c.investment}
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		if err := s.Ledger.Schedule(o); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return false, subcommands.ExitFailure
		}
		fmt.Fprintf(stdout, "%s of %s scheduled on %s\n", o.Type(), finance.M(o.Amount, s.cfg.Currency), o.Due)
		return true, subcommands.ExitSuccess
	})
}

// --- Upcoming Command ---

type upcomingCmd struct{}

func (*upcomingCmd) Name() string     { return "upcoming" }
func (*upcomingCmd) Synopsis() string { return "list scheduled payments and investments, soonest first" }
func (*upcomingCmd) Usage() string {
	return `fms upcoming

  Lists scheduled reminders by due date, soonest first.
`
}

func (*upcomingCmd) SetFlags(f *flag.FlagSet) {}

func (*upcomingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		printMarkdown(renderer.UpcomingMarkdown(s.Ledger.Upcoming(), finance.Today(), s.cfg.Currency))
		return false, subcommands.ExitSuccess
	})
}
