// Command fondos tracks investment fund accounts: subscriptions, sales and
// transfers as lots, with quotes resolving the figures the bank statements
// leave out.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/jmsanchez/fondos/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.SetFlags(flag.CommandLine)
	cmd.Register(commander)
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion handles shell completion requests and returns immediately
// otherwise. Install with COMP_INSTALL=1 fondos.
func completion() {
	sub := make(map[string]*complete.Command)
	for _, name := range cmd.Names() {
		sub[name] = &complete.Command{}
	}
	root := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"ledger": predict.Files("*.jsonl"),
		},
	}
	root.Complete(path.Base(os.Args[0]))
}
