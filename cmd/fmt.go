package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the data file in its canonical form"
}
func (*fmtCmd) Usage() string {
	return `fms fmt

  Validates the data file of the user and writes it back in the canonical
  format: quoted descriptions and the obligations section. Older files with
  unquoted descriptions are upgraded.

Usage Examples:
# Upgrade the data file of alice.
$ fms -user alice fmt

`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withSession(ctx, func(s *session) (bool, subcommands.ExitStatus) {
		if s.Fresh {
			fmt.Fprintf(os.Stderr, "Warning: no data for user %q, nothing to format.\n", s.Username)
			return false, subcommands.ExitSuccess
		}
		records, investments := s.Ledger.Len()
		fmt.Fprintf(os.Stderr, "Formatting %d records, %d investments and %d obligations of %q...\n",
			records, investments, len(s.Ledger.Upcoming()), s.Username)
		return true, subcommands.ExitSuccess
	})
}
