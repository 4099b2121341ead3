package renderer

import (
	"fmt"
	"strings"

	"github.com/jmsanchez/fondos"
)

// LineageMarkdown renders divestment chains: one section per divestment,
// hops ordered from the original funding lot to the terminal state.
func LineageMarkdown(dvs []fondos.Divestment) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Divestments\n")

	for _, dv := range dvs {
		switch {
		case dv.Order == nil:
			fmt.Fprintf(&b, "\n## %d: still held in account %s\n\n", dv.ID, dv.Lot.Account().ID)
		default:
			fmt.Fprintf(&b, "\n## %d: sold on %s from account %s\n\n", dv.ID, dv.TerminalDate, dv.Lot.Account().ID)
		}
		fmt.Fprintf(&b, "Invested %s on %s", dv.Capital, dv.InvestmentDate)
		if dv.Estimated {
			fmt.Fprintf(&b, ", worth %s at the last quote.\n\n", dv.Proceeds)
		} else if !dv.Proceeds.IsZero() {
			fmt.Fprintf(&b, ", realized %s.\n\n", dv.Proceeds)
		} else {
			fmt.Fprint(&b, ".\n\n")
		}

		fmt.Fprintln(&b, "| Lot | Account | From | To | Units | Cost | Proceeds |")
		fmt.Fprintln(&b, "|---:|:---|:---|:---|---:|---:|---:|")
		for _, hop := range dv.Chain {
			to := "held"
			if hop.Order != nil {
				to = hop.TerminalDate.String()
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s |\n",
				hop.Lot.ID(),
				hop.Lot.Account().ID,
				hop.TradeDate,
				to,
				hop.Units,
				hop.Cost,
				hop.Proceeds,
			)
		}
	}
	return b.String()
}
