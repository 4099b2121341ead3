package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jmsanchez/fondos"
)

type declareFundCmd struct {
	name     string
	alias    string
	manager  string
	currency string
	risk     int
	inactive bool
}

func (*declareFundCmd) Name() string     { return "declare-fund" }
func (*declareFundCmd) Synopsis() string { return "declare a fund in the catalog" }
func (*declareFundCmd) Usage() string {
	return `declare-fund -name <name> [-alias <alias>] [-manager <manager>] [-risk <1..7>] [-currency <code>] [-inactive] <isin>:
  Declare a fund so that accounts and quotes can reference it.
`
}

func (c *declareFundCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "full fund name")
	f.StringVar(&c.alias, "alias", "", "short display name")
	f.StringVar(&c.manager, "manager", "", "fund management company")
	f.StringVar(&c.currency, "currency", "EUR", "quote currency")
	f.IntVar(&c.risk, "risk", 0, "risk class as published by the manager")
	f.BoolVar(&c.inactive, "inactive", false, "the fund is no longer open to subscriptions")
}

func (c *declareFundCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("declare-fund expects exactly one ISIN")
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	fund := fondos.Fund{
		ISIN:     f.Arg(0),
		Name:     c.name,
		Alias:    c.alias,
		Manager:  c.manager,
		Currency: c.currency,
		Risk:     c.risk,
		Active:   !c.inactive,
	}
	if err := l.AddFund(fund); err != nil {
		return fail(err)
	}
	if err := saveLedger(l); err != nil {
		return fail(err)
	}
	fmt.Printf("declared fund %s (%s)\n", fund.DisplayName(), fund.ISIN)
	return subcommands.ExitSuccess
}
