package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/jmsanchez/fondos"
)

type importCmd struct {
	kind string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "bulk load pipe separated records" }
func (*importCmd) Usage() string {
	return `import -t <funds|accounts|quotes|subscriptions|redemptions|transfers> [file]:
  Load pipe separated records from a file, or from stdin when no file is
  given. Lines starting with # and blank lines are skipped.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "t", "", "record type of the input")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var load func(*fondos.Ledger, io.Reader) error
	switch c.kind {
	case "funds":
		load = (*fondos.Ledger).ImportFunds
	case "accounts":
		load = (*fondos.Ledger).ImportAccounts
	case "quotes":
		load = (*fondos.Ledger).ImportQuotes
	case "subscriptions":
		load = (*fondos.Ledger).ImportSubscriptions
	case "redemptions":
		load = (*fondos.Ledger).ImportRedemptions
	case "transfers":
		load = (*fondos.Ledger).ImportTransfers
	default:
		return usage(fmt.Sprintf("unknown record type %q", c.kind))
	}

	in := io.Reader(os.Stdin)
	if f.NArg() > 1 {
		return usage("import expects at most one file")
	}
	if f.NArg() == 1 {
		file, err := os.Open(f.Arg(0))
		if err != nil {
			return fail(err)
		}
		defer file.Close()
		in = file
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	if err := load(l, in); err != nil {
		return fail(err)
	}
	if err := saveLedger(l); err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stderr, "imported %s into %q\n", c.kind, ledgerFile)
	return subcommands.ExitSuccess
}
