// Package renderer turns ledger reports into markdown, suitable for the
// terminal or for piping into a file.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/jmsanchez/fondos"
)

// HoldingMarkdown renders the portfolio positions report.
func HoldingMarkdown(r *fondos.HoldingReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio on %s", r.Date))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Account", "Fund", "Units", "Price", "Invested", "Value", "Gain", "Share"},
		Rows:   [][]string{},
	}
	for _, row := range r.Rows {
		table.Rows = append(table.Rows, []string{
			row.AccountID,
			row.Fund,
			row.Units.String(),
			row.Price.String(),
			row.Capital.String(),
			row.Value.String(),
			fmt.Sprintf("%s (%.2f%%)", row.Gain.SignedString(), row.GainPct),
			fmt.Sprintf("%.2f%%", row.Share),
		})
	}
	table.Rows = append(table.Rows, []string{
		"**Total**", "", "", "",
		r.TotalCapital.String(),
		r.TotalValue.String(),
		r.TotalGain.SignedString(),
		"",
	})
	doc.Table(table)

	doc.Build()
	return buf.String()
}
