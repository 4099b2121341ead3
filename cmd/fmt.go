package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the ledger file in canonical form" }
func (*fmtCmd) Usage() string {
	return `fmt:
  Replay the ledger file and rewrite it in canonical command order. The
  result replays to the same state.
`
}

func (*fmtCmd) SetFlags(*flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := loadLedger()
	if err != nil {
		return fail(err)
	}
	if err := saveLedger(l); err != nil {
		return fail(err)
	}
	fmt.Fprintf(os.Stderr, "rewrote %q\n", ledgerFile)
	return subcommands.ExitSuccess
}
