package renderer

import (
	"fmt"
	"strings"

	"github.com/jmsanchez/fondos"
)

// EvolutionMarkdown renders the sampled valuation of one divestment.
func EvolutionMarkdown(dv fondos.Divestment, points []fondos.EvolutionPoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Evolution of divestment %d\n\n", dv.ID)
	fmt.Fprintf(&b, "Invested %s on %s.\n\n", dv.Capital, dv.InvestmentDate)

	if len(points) == 0 {
		fmt.Fprint(&b, "No quotes available in the period.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Value | Var. |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for i, p := range points {
		if i == 0 {
			fmt.Fprintf(&b, "| %s | %s | |\n", p.Date, p.Value)
			continue
		}
		prev := points[i-1].Value
		variation := 0.0
		if prev.IsPositive() {
			variation = p.Value.Sub(prev).Decimal().Div(prev.Decimal()).InexactFloat64() * 100
		}
		fmt.Fprintf(&b, "| %s | %s | %+.2f%% |\n", p.Date, p.Value, variation)
	}
	return b.String()
}
