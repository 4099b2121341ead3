package renderer

import (
	"fmt"
	"strings"

	"github.com/jmsanchez/fondos"
)

// GainsMarkdown renders the realized gains report.
func GainsMarkdown(r *fondos.GainsReport) string {
	var b strings.Builder

	switch {
	case r.Range.From.IsZero() && r.Range.To.IsZero():
		fmt.Fprint(&b, "# Realized Gains\n\n")
	case r.Range.From.IsZero():
		fmt.Fprintf(&b, "# Realized Gains up to %s\n\n", r.Range.To)
	default:
		fmt.Fprintf(&b, "# Realized Gains from %s to %s\n\n", r.Range.From, r.Range.To)
	}

	if len(r.Rows) == 0 {
		fmt.Fprint(&b, "No divestments in the period.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Sold | Account | Fund | Invested since | Capital | Proceeds | Gain | Annualized |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|---:|---:|---:|---:|")
	for _, row := range r.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %.2f%% |\n",
			row.SaleDate,
			row.AccountID,
			row.Fund,
			row.InvestmentDate,
			row.Capital,
			row.Proceeds,
			row.Gain.SignedString(),
			row.TAE,
		)
	}
	fmt.Fprintf(&b, "| **Total** | | | | **%s** | **%s** | **%s** | |\n",
		r.TotalCapital, r.TotalProceeds, r.TotalGain.SignedString())

	if len(r.Years) > 1 {
		fmt.Fprint(&b, "\n## Per Year\n\n")
		fmt.Fprintln(&b, "| Year | Capital | Proceeds | Gain |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|")
		for _, y := range r.Years {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", y.Year, y.Capital, y.Proceeds, y.Gain.SignedString())
		}
	}
	return b.String()
}
