package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type openAccountCmd struct {
	broker string
}

func (*openAccountCmd) Name() string     { return "open-account" }
func (*openAccountCmd) Synopsis() string { return "open an account holding one fund at a broker" }
func (*openAccountCmd) Usage() string {
	return `open-account [-broker <broker>] <account-id> <isin>:
  Open an account. An account holds lots of a single fund.
`
}

func (c *openAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.broker, "broker", "", "broker holding the account")
}

func (c *openAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("open-account expects an account id and an ISIN")
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	a, err := l.AddAccount(f.Arg(0), f.Arg(1), c.broker)
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(l); err != nil {
		return fail(err)
	}
	fmt.Printf("opened account %s holding %s\n", a.ID, a.Fund().DisplayName())
	return subcommands.ExitSuccess
}
