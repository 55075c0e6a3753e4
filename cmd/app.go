// Package cmd implements the fms command line subcommands.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/store/sqlite"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&incomeCmd{}, "records")
	c.Register(&expenseCmd{}, "records")
	c.Register(&showCmd{}, "records")
	c.Register(&lookupCmd{}, "records")
	c.Register(&suggestCmd{}, "records")

	c.Register(&investCmd{}, "investments")
	c.Register(&maturityCmd{}, "investments")

	c.Register(&scheduleCmd{}, "schedule")
	c.Register(&upcomingCmd{}, "schedule")

	c.Register(&reportCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")

	c.Register(&fmtCmd{}, "maintenance")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
// Empty flags fall back to the environment, see config.Load.

var (
	dataDir  = flag.String("data-dir", "", "Folder holding the data files (env FMS_DATA_DIR)")
	user     = flag.String("user", "", "User name, selects the data file (env FMS_USER)")
	backend  = flag.String("backend", "", "Storage backend: file or sqlite (env FMS_BACKEND)")
	currency = flag.String("currency", "", "Currency used to display amounts (env FMS_CURRENCY)")
	plain    = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")
	Verbose  = flag.Bool("v", false, "Print debug logs on stderr (env FMS_VERBOSE)")
)

// stdout receives the output of the subcommands.
var stdout io.Writer = os.Stdout

// Settings returns the configuration from the environment, overridden by the global flags.
func Settings() (*config.Config, error) {
	c := config.Load()
	if *dataDir != "" {
		c.DataDir = *dataDir
	}
	if *user != "" {
		c.User = *user
	}
	if *backend != "" {
		c.Backend = *backend
	}
	if *currency != "" {
		c.Currency = *currency
	}
	if *Verbose {
		c.Verbose = true
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// session is an open account with the settings used to open it.
type session struct {
	*finance.Account
	cfg   *config.Config
	close func() error
}

// openSession opens the account of the configured user.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := Settings()
	if err != nil {
		return nil, err
	}

	var st finance.Storage
	closer := func() error { return nil }
	path := cfg.LedgerPath()
	switch cfg.Backend {
	case config.BackendSQLite:
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		st, closer = db, db.Close
	default:
		st = finance.FileStorage{Path: path}
	}

	account, err := finance.OpenAccount(ctx, st, cfg.User, cfg.InitialBalance)
	if err != nil {
		closer()
		return nil, err
	}
	account.Minimum = cfg.MinimumBalance
	if account.Fresh {
		slog.Info("new-account", "user", cfg.User, "path", path)
	}
	return &session{Account: account, cfg: cfg, close: closer}, nil
}

// withSession opens the account, runs f, saves the account if f reports a change, and closes it.
func withSession(ctx context.Context, f func(s *session) (changed bool, status subcommands.ExitStatus)) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open account: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	changed, status := f(s)
	if !changed || status != subcommands.ExitSuccess {
		return status
	}
	if err := s.Save(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return status
}

// printMarkdown renders markdown on the terminal, or prints it raw with -plain.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// parseAmount parses a strictly positive amount.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return d, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if !d.IsPositive() {
		return d, fmt.Errorf("invalid amount %q: %w", s, finance.ErrInvalidAmount)
	}
	return d, nil
}
