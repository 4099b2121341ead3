package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jmsanchez/fondos"
)

type transferCmd struct {
	from    string
	to      string
	day     string
	arrival string
	units   string
	amount  string
	comment string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move a position to another account, keeping its investment date" }
func (*transferCmd) Usage() string {
	return `transfer -from <account> -to <account> [-d <date>] [-arrival <date>] [-u <units> | -amount <cash>] [-comment <text>]:
  Transfer a position. The new lots keep the investment date of the lots
  they come from. Between brokers on the same fund and day the unit count
  carries over unchanged.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "source account")
	f.StringVar(&c.to, "to", "", "destination account")
	f.StringVar(&c.day, "d", "", "order date, defaults to today")
	f.StringVar(&c.arrival, "arrival", "", "date the money reaches the destination, defaults to the order date")
	f.StringVar(&c.units, "u", "", "units to transfer")
	f.StringVar(&c.amount, "amount", "", "cash moved for the whole position")
	f.StringVar(&c.comment, "comment", "", "free text attached to the order")
}

func (c *transferCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" || c.to == "" {
		return usage("transfer requires a source (-from) and a destination (-to)")
	}
	day, err := parseDay(c.day)
	if err != nil {
		return fail(err)
	}
	var arrival fondos.Date
	if c.arrival != "" {
		if arrival, err = fondos.ParseDate(c.arrival); err != nil {
			return fail(err)
		}
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	a := l.Account(c.from)
	if a == nil {
		return fail(fmt.Errorf("unknown account %q", c.from))
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
		for _, s := range l.Lots(c.from) {
			if rem, ok := l.RemainingUnits(s); ok {
				total = total.Add(rem)
			}
		}
		if !total.IsPositive() {
			return fail(fmt.Errorf("account %s holds no resolved units", c.from))
		}
		units = &total
	}

	order, err := l.CreateOrder(nil, day, c.comment)
	if err != nil {
		return fail(err)
	}
	legs, err := l.AllocateTransfer(c.from, order, units, amount, c.to, arrival)
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(l); err != nil {
		return fail(err)
	}

	for _, leg := range legs {
		fmt.Printf("lot %d -> lot %d in account %s, invested since %s\n",
			leg.Disposal.Lot().ID(), leg.Lot.ID(), c.to, leg.Lot.InvestmentDate())
	}
	return subcommands.ExitSuccess
}
