package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/jmsanchez/fondos/renderer"
)

type holdingCmd struct {
	day string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "show the portfolio valued on a date" }
func (*holdingCmd) Usage() string {
	return `holding [-d <date>]:
  Show every account with its units, capital and value on the given date.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "valuation date, defaults to today")
}

func (c *holdingCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.day)
	if err != nil {
		return fail(err)
	}
	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.HoldingMarkdown(l.NewHoldingReport(day)))
	return subcommands.ExitSuccess
}
