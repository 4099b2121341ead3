package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jmsanchez/fondos"
	"github.com/jmsanchez/fondos/date"
)

// parseMarkdown fails the test if the output is not valid markdown.
func parseMarkdown(t *testing.T, doc string) {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert([]byte(doc), &buf); err != nil {
		t.Fatalf("output is not valid markdown: %v\n%s", err, doc)
	}
}

func sampleLedger(t *testing.T) *fondos.Ledger {
	t.Helper()
	l := fondos.NewLedger()
	if err := l.AddFund(fondos.Fund{ISIN: "ES0000000001", Name: "Global Equity FI", Alias: "global", Currency: "EUR", Active: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddAccount("100", "ES0000000001", "openbank"); err != nil {
		t.Fatal(err)
	}
	u := fondos.U(100.0)
	c := fondos.M(1000.0, "EUR")
	if _, err := l.CreateLot("100", date.MustParse("2020-01-10"), &u, &c, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := l.PutQuote("ES0000000001", date.MustParse("2020-06-01"), fondos.M(12.0, "EUR")); err != nil {
		t.Fatal(err)
	}
	order, err := l.CreateOrder(nil, date.MustParse("2020-06-01"), "")
	if err != nil {
		t.Fatal(err)
	}
	half := fondos.U(50.0)
	if _, err := l.CreateDisposal(l.Lot(1), order, &half, nil); err != nil {
		t.Fatal(err)
	}
	return l
}

func TestHoldingMarkdown(t *testing.T) {
	l := sampleLedger(t)
	out := HoldingMarkdown(l.NewHoldingReport(date.MustParse("2020-06-01")))
	parseMarkdown(t, out)
	for _, want := range []string{"Portfolio on 2020-06-01", "100", "global", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestGainsMarkdown(t *testing.T) {
	l := sampleLedger(t)
	out := GainsMarkdown(l.NewGainsReport(date.Range{}))
	parseMarkdown(t, out)
	for _, want := range []string{"Realized Gains", "2020-06-01", "Total"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}

	empty := GainsMarkdown(l.NewGainsReport(date.Range{
		From: date.MustParse("2025-01-01"),
		To:   date.MustParse("2025-12-31"),
	}))
	parseMarkdown(t, empty)
	if !strings.Contains(empty, "No divestments") {
		t.Errorf("empty report misses placeholder:\n%s", empty)
	}
}

func TestLineageMarkdown(t *testing.T) {
	l := sampleLedger(t)
	out := LineageMarkdown(l.Divestments())
	parseMarkdown(t, out)
	if !strings.Contains(out, "sold on 2020-06-01") {
		t.Errorf("output misses the realized divestment:\n%s", out)
	}
	if !strings.Contains(out, "still held") {
		t.Errorf("output misses the held divestment:\n%s", out)
	}
}

func TestEvolutionMarkdown(t *testing.T) {
	l := sampleLedger(t)
	dvs := l.Divestments()
	if len(dvs) == 0 {
		t.Fatal("no divestments in fixture")
	}
	points := l.Evolution(dvs[0], fondos.Sampling{Period: date.Monthly, To: date.MustParse("2020-08-01")})
	out := EvolutionMarkdown(dvs[0], points)
	parseMarkdown(t, out)
	if !strings.Contains(out, "Evolution of divestment") {
		t.Errorf("output misses the title:\n%s", out)
	}
}

func TestQuotesMarkdown(t *testing.T) {
	l := sampleLedger(t)
	out := QuotesMarkdown(l.Fund("ES0000000001"), l.Quotes("ES0000000001", 0))
	parseMarkdown(t, out)
	for _, want := range []string{"global", "ES0000000001", "2020-06-01"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}
