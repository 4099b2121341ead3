package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/google/subcommands"

	"github.com/jmsanchez/fondos"
	"github.com/jmsanchez/fondos/renderer"
)

type evolutionCmd struct {
	period string
	from   string
	to     string
}

func (*evolutionCmd) Name() string     { return "evolution" }
func (*evolutionCmd) Synopsis() string { return "sample the valuation of a divestment over time" }
func (*evolutionCmd) Usage() string {
	return `evolution [-p weekly|monthly] [-from <date>] [-to <date>] <divestment-id>:
  Sample the valuation of one divestment from its investment date on, across
  every transfer it went through.
`
}

func (c *evolutionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "monthly", "sampling period")
	f.StringVar(&c.from, "from", "", "first checkpoint, defaults to the investment date")
	f.StringVar(&c.to, "to", "", "last checkpoint, defaults to the terminal date or today")
}

func (c *evolutionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("evolution expects a divestment id")
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		return usage(fmt.Sprintf("invalid divestment id %q", f.Arg(0)))
	}

	var s fondos.Sampling
	if s.Period, err = fondos.ParsePeriod(c.period); err != nil {
		return fail(err)
	}
	if c.from != "" {
		if s.From, err = fondos.ParseDate(c.from); err != nil {
			return fail(err)
		}
	}
	if c.to != "" {
		if s.To, err = fondos.ParseDate(c.to); err != nil {
			return fail(err)
		}
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	for _, dv := range l.Divestments() {
		if dv.ID == id {
			printMarkdown(renderer.EvolutionMarkdown(dv, l.Evolution(dv, s)))
			return subcommands.ExitSuccess
		}
	}
	return fail(fmt.Errorf("unknown divestment %d, run history to list them", id))
}
