package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/jmsanchez/fondos"
)

// QuotesMarkdown renders the recorded quotes of a fund, most recent first,
// with the day-over-day variation.
func QuotesMarkdown(fund *fondos.Fund, points []fondos.QuotePoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(fmt.Sprintf("%s -- %s", fund.DisplayName(), fund.ISIN))

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Date", "Price", "Var."},
		Rows:      [][]string{},
	}
	for i, p := range points {
		variation := ""
		if i+1 < len(points) {
			prev := points[i+1].Price
			v := p.Price.Sub(prev).Decimal().Div(prev.Decimal()).InexactFloat64() * 100
			variation = fmt.Sprintf("%+.2f%%", v)
		}
		table.Rows = append(table.Rows, []string{p.Date.String(), p.Price.String(), variation})
	}
	doc.Table(table)

	doc.Build()
	return buf.String()
}
