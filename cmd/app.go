// Package cmd implements the CLI application as subcommands sharing a single
// ledger file.
//
// As a CLI application it has a very short lived lifecycle, so it is ok to
// keep the shared flags in global variables.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/jmsanchez/fondos"
)

var ledgerFile = "fondos.jsonl"

// Register declares every subcommand to the commander.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&declareFundCmd{}, "catalog")
	c.Register(&openAccountCmd{}, "catalog")

	c.Register(&subscribeCmd{}, "operations")
	c.Register(&sellCmd{}, "operations")
	c.Register(&transferCmd{}, "operations")
	c.Register(&importCmd{}, "operations")

	c.Register(&quoteCmd{}, "quotes")
	c.Register(&quotesCmd{}, "quotes")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&evolutionCmd{}, "reports")

	c.Register(&fmtCmd{}, "ledger")
}

// SetFlags declares the application level flags on the given flag set.
func SetFlags(f *flag.FlagSet) {
	f.StringVar(&ledgerFile, "ledger", ledgerFile, "path of the ledger file")
}

// Names lists the registered subcommand names, for shell completion.
func Names() []string {
	return []string{
		"declare-fund", "open-account",
		"subscribe", "sell", "transfer", "import",
		"quote", "quotes",
		"holding", "gains", "history", "evolution",
		"fmt",
	}
}

func init() {
	if p := os.Getenv("FONDOS_LEDGER"); p != "" {
		ledgerFile = p
	}
}

// loadLedger replays the ledger file. A missing file is not an error, the
// ledger starts empty and the file is created on the first write.
func loadLedger() (*fondos.Ledger, error) {
	f, err := os.Open(ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: %q does not exist, starting from an empty ledger\n", ledgerFile)
		return fondos.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", ledgerFile, err)
	}
	defer f.Close()

	l, err := fondos.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger %q: %w", ledgerFile, err)
	}
	return l, nil
}

// saveLedger writes the canonical encoding to a temp file first so a failed
// write never truncates the ledger.
func saveLedger(l *fondos.Ledger) error {
	tmp := ledgerFile + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("cannot write ledger %q: %w", ledgerFile, err)
	}
	if err := fondos.EncodeLedger(f, l); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot write ledger %q: %w", ledgerFile, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot write ledger %q: %w", ledgerFile, err)
	}
	return os.Rename(tmp, ledgerFile)
}

// printMarkdown renders a markdown document for the terminal, falling back
// to the raw text when rendering is not possible.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}

func usage(msg string) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", msg)
	return subcommands.ExitUsageError
}

// parseDay parses a -d flag value, defaulting to today when empty.
func parseDay(s string) (fondos.Date, error) {
	if s == "" {
		return fondos.Today(), nil
	}
	return fondos.ParseDate(s)
}

// parseUnits parses an optional unit count flag, empty means unknown.
func parseUnits(s string) (*fondos.Units, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid unit count %q: %w", s, err)
	}
	u := fondos.U(d)
	return &u, nil
}

// parseMoney parses an optional amount flag, empty means unknown.
func parseMoney(s, currency string) (*fondos.Money, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	m := fondos.M(d, currency)
	return &m, nil
}

// reportBackfill tells the user what a new quote resolved.
func reportBackfill(b fondos.Backfill) {
	for _, s := range b.Lots {
		units, _ := s.Units()
		cost, _ := s.Cost()
		fmt.Fprintf(os.Stderr, "resolved lot %d in account %s: %s units for %s\n",
			s.ID(), s.Account().ID, units, cost)
	}
	for _, d := range b.Disposals {
		proceeds, _ := d.Proceeds()
		fmt.Fprintf(os.Stderr, "resolved disposal %d of lot %d: %s units for %s\n",
			d.ID(), d.Lot().ID(), d.Units(), proceeds)
	}
}

// findFund resolves a fund by ISIN or by alias.
func findFund(l *fondos.Ledger, key string) *fondos.Fund {
	if f := l.Fund(key); f != nil {
		return f
	}
	for _, f := range l.Funds() {
		if f.Alias == key {
			return f
		}
	}
	return nil
}
