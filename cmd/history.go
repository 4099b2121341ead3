package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jmsanchez/fondos"
	"github.com/jmsanchez/fondos/renderer"
)

type historyCmd struct {
	account string
	lot     int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show where each investment came from and where it went" }
func (*historyCmd) Usage() string {
	return `history [-a <account>] [-lot <id>]:
  Show the divestments of the portfolio, each with its full transfer chain
  back to the original subscription.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "only divestments ending in this account")
	f.IntVar(&c.lot, "lot", 0, "only divestments ending in this lot")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}

	var dvs []fondos.Divestment
	switch {
	case c.lot != 0:
		s := l.Lot(c.lot)
		if s == nil {
			return fail(fmt.Errorf("unknown lot %d", c.lot))
		}
		dvs = l.Lineage(s)
	default:
		dvs = l.Divestments()
		if c.account != "" {
			kept := dvs[:0]
			for _, dv := range dvs {
				if dv.Lot.Account().ID == c.account {
					kept = append(kept, dv)
				}
			}
			dvs = kept
		}
	}

	printMarkdown(renderer.LineageMarkdown(dvs))
	return subcommands.ExitSuccess
}
