package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type subscribeCmd struct {
	account string
	day     string
	units   string
	cost    string
}

func (*subscribeCmd) Name() string     { return "subscribe" }
func (*subscribeCmd) Synopsis() string { return "record a subscription, opening a new lot" }
func (*subscribeCmd) Usage() string {
	return `subscribe -a <account> [-d <date>] [-u <units>] [-c <cost>]:
  Record a subscription. When units or cost are unknown they stay pending
  until a quote of the trade date arrives.
`
}

func (c *subscribeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account receiving the lot")
	f.StringVar(&c.day, "d", "", "trade date, defaults to today")
	f.StringVar(&c.units, "u", "", "units subscribed")
	f.StringVar(&c.cost, "c", "", "cash invested")
}

func (c *subscribeCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return usage("subscribe requires an account (-a)")
	}
	day, err := parseDay(c.day)
	if err != nil {
		return fail(err)
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	a := l.Account(c.account)
	if a == nil {
		return fail(fmt.Errorf("unknown account %q", c.account))
	}
	units, err := parseUnits(c.units)
	if err != nil {
		return fail(err)
	}
	cost, err := parseMoney(c.cost, a.Fund().Currency)
	if err != nil {
		return fail(err)
	}

	s, err := l.CreateLot(c.account, day, units, cost, nil)
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(l); err != nil {
		return fail(err)
	}

	if u, ok := s.Units(); ok {
		fmt.Printf("lot %d: %s units in account %s on %s\n", s.ID(), u, c.account, day)
	} else {
		fmt.Printf("lot %d in account %s on %s, units pending a quote\n", s.ID(), c.account, day)
	}
	return subcommands.ExitSuccess
}
