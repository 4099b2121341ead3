package cmd

import (
	"context"
	"flag"
	"time"

	"github.com/google/subcommands"

	"github.com/jmsanchez/fondos"
	"github.com/jmsanchez/fondos/date"
	"github.com/jmsanchez/fondos/renderer"
)

type gainsCmd struct {
	from string
	to   string
	year int
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "show the realized gains of a period" }
func (*gainsCmd) Usage() string {
	return `gains [-from <date>] [-to <date>] [-y <year>]:
  Show the realized gains, their holding time and annualized return. With no
  period, every divestment ever realized is listed.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "first sale date to include")
	f.StringVar(&c.to, "to", "", "last sale date to include")
	f.IntVar(&c.year, "y", 0, "shorthand for a full calendar year")
}

func (c *gainsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var period fondos.Range
	if c.year != 0 {
		period.From = date.New(c.year, time.January, 1)
		period.To = date.New(c.year, time.December, 31)
	}
	var err error
	if c.from != "" {
		if period.From, err = fondos.ParseDate(c.from); err != nil {
			return fail(err)
		}
	}
	if c.to != "" {
		if period.To, err = fondos.ParseDate(c.to); err != nil {
			return fail(err)
		}
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.GainsMarkdown(l.NewGainsReport(period)))
	return subcommands.ExitSuccess
}
