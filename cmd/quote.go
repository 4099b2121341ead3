package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jmsanchez/fondos"
	"github.com/jmsanchez/fondos/renderer"
)

type quoteCmd struct {
	day string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "record the unit value of a fund" }
func (*quoteCmd) Usage() string {
	return `quote [-d <date>] <isin|alias> <price>:
  Record a quote. Lots and disposals waiting for it are resolved and listed.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.day, "d", "", "quote date, defaults to today")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("quote expects a fund and a price")
	}
	day, err := parseDay(c.day)
	if err != nil {
		return fail(err)
	}
	price, err := decimal.NewFromString(f.Arg(1))
	if err != nil {
		return fail(fmt.Errorf("invalid price %q: %w", f.Arg(1), err))
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	fund := findFund(l, f.Arg(0))
	if fund == nil {
		return fail(fmt.Errorf("unknown fund %q", f.Arg(0)))
	}

	backfill, err := l.PutQuote(fund.ISIN, day, fondos.M(price, fund.Currency))
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(l); err != nil {
		return fail(err)
	}

	fmt.Printf("%s: %s on %s\n", fund.DisplayName(), fondos.M(price, fund.Currency).RoundPrice(), day)
	reportBackfill(backfill)
	return subcommands.ExitSuccess
}

type quotesCmd struct {
	n int
}

func (*quotesCmd) Name() string     { return "quotes" }
func (*quotesCmd) Synopsis() string { return "list the recorded quotes of a fund" }
func (*quotesCmd) Usage() string {
	return `quotes [-n <count>] <isin|alias>:
  List the recorded quotes of a fund, most recent first.
`
}

func (c *quotesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.n, "n", 10, "number of quotes to list, 0 for all")
}

func (c *quotesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("quotes expects a fund")
	}

	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	fund := findFund(l, f.Arg(0))
	if fund == nil {
		return fail(fmt.Errorf("unknown fund %q", f.Arg(0)))
	}

	printMarkdown(renderer.QuotesMarkdown(fund, l.Quotes(fund.ISIN, c.n)))
	return subcommands.ExitSuccess
}
