package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jmsanchez/fondos"
)

type sellCmd struct {
	account string
	day     string
	units   string
	amount  string
	comment string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale, consuming lots oldest first" }
func (*sellCmd) Usage() string {
	return `sell -a <account> [-d <date>] [-u <units> | -amount <cash>] [-comment <text>]:
  Record a sale. With -u the oldest lots cover the unit count, with -amount
  the whole account is sold and the cash is spread over the lots. With
  neither, every unit in the account is sold.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "account to sell from")
	f.StringVar(&c.day, "d", "", "order date, defaults to today")
	f.StringVar(&c.units, "u", "", "units to sell")
	f.StringVar(&c.amount, "amount", "", "cash obtained for the whole position")
	f.StringVar(&c.comment, "comment", "", "free text attached to the order")
}

func (c *sellCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		return usage("sell requires an account (-a)")
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
	amount, err := parseMoney(c.amount, a.Fund().Currency)
	if err != nil {
		return fail(err)
	}
	if units == nil && amount == nil {
		var total fondos.Units
		for _, s := range l.Lots(c.account) {
			if rem, ok := l.RemainingUnits(s); ok {
				total = total.Add(rem)
			}
		}
		if !total.IsPositive() {
			return fail(fmt.Errorf("account %s holds no resolved units", c.account))
		}
		units = &total
	}

	order, err := l.CreateOrder(nil, day, c.comment)
	if err != nil {
		return fail(err)
	}
	disposals, err := l.AllocateSale(c.account, order, units, amount)
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(l); err != nil {
		return fail(err)
	}

	for _, d := range disposals {
		if p, ok := d.Proceeds(); ok {
			fmt.Printf("sold %s units of lot %d for %s\n", d.Units(), d.Lot().ID(), p)
		} else {
			fmt.Printf("sold %s units of lot %d, proceeds pending a quote\n", d.Units(), d.Lot().ID())
		}
	}
	return subcommands.ExitSuccess
}
