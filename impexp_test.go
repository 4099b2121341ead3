package fondos

import (
	"strings"
	"testing"

	"github.com/jmsanchez/fondos/date"
)

func TestImportFundsAndAccounts(t *testing.T) {
	l := NewLedger()
	funds := `
# isin|name|alias|manager|scraper|risk|active|currency
ES0000000001|Global Equity FI|global|Acme AM|morningstar|6|true
ES0000000002|Euro Bond FI|bonds|Acme AM||3|false|EUR
`
	if err := l.ImportFunds(strings.NewReader(funds)); err != nil {
		t.Fatal(err)
	}
	f := l.Fund("ES0000000001")
	if f == nil || f.Alias != "global" || f.Risk != 6 || !f.Active {
		t.Fatalf("fund = %+v, want global risk 6 active", f)
	}
	if f.Manager != "Acme AM" {
		t.Errorf("manager = %q, the scraper field must not shift the record", f.Manager)
	}
	if f.Currency != "EUR" {
		t.Errorf("currency = %s, want EUR default", f.Currency)
	}

	accounts := "100|ES0000000001|openbank\n200|ES0000000002|myinvestor\n"
	if err := l.ImportAccounts(strings.NewReader(accounts)); err != nil {
		t.Fatal(err)
	}
	if a := l.Account("200"); a == nil || a.Broker != "myinvestor" {
		t.Fatalf("account 200 = %+v", a)
	}
}

func TestImportSubscriptionsAndRedemptions(t *testing.T) {
	l := newTestLedger(t)
	quotes := "ES0000000001|2020-12-21|24.7623\n"
	if err := l.ImportQuotes(strings.NewReader(quotes)); err != nil {
		t.Fatal(err)
	}

	subs := `
# account|date|cost|units
100|2020-12-21|5000
100|2020-12-22||301.91985
`
	if err := l.ImportSubscriptions(strings.NewReader(subs)); err != nil {
		t.Fatal(err)
	}
	lots := l.Lots("100")
	if len(lots) != 2 {
		t.Fatalf("got %d lots, want 2", len(lots))
	}
	if u, ok := lots[0].Units(); !ok || !u.Equal(U(201.91985)) {
		t.Errorf("lot 1 units = %v (resolved %v), want 201.91985 from the quote", u, ok)
	}
	if _, ok := lots[1].Cost(); ok {
		t.Error("lot 2 cost resolved without a quote for its date")
	}

	sales := "100|2020-12-28|300||first sale\n"
	if err := l.ImportRedemptions(strings.NewReader(sales)); err != nil {
		t.Fatal(err)
	}
	// 300 units FIFO: all of lot 1, the rest from lot 2.
	if rem, _ := l.RemainingUnits(lots[0]); !rem.IsZero() {
		t.Errorf("lot 1 remaining = %v, want 0", rem)
	}
	if o := l.Order(1); o == nil || o.Comment() != "first sale" {
		t.Errorf("order = %+v, want the line comment", o)
	}
}

func TestImportTransfers(t *testing.T) {
	l := newTestLedger(t)
	subs := "100|2020-01-10||100\n"
	if err := l.ImportSubscriptions(strings.NewReader(subs)); err != nil {
		t.Fatal(err)
	}
	transfers := "100|2020-06-01|200||100||broker change\n"
	if err := l.ImportTransfers(strings.NewReader(transfers)); err != nil {
		t.Fatal(err)
	}
	dest := l.Lots("200")
	if len(dest) != 1 {
		t.Fatalf("got %d destination lots, want 1", len(dest))
	}
	if u, ok := dest[0].Units(); !ok || !u.Equal(U(100)) {
		t.Errorf("destination units = %v (resolved %v), want 100 carried over", u, ok)
	}
	if dest[0].InvestmentDate() != date.MustParse("2020-01-10") {
		t.Errorf("investment date = %s, want 2020-01-10", dest[0].InvestmentDate())
	}
}

func TestImport_ReportsLineNumbers(t *testing.T) {
	l := newTestLedger(t)
	subs := "100|2020-12-21|1000\n100|not-a-date|1000\n"
	err := l.ImportSubscriptions(strings.NewReader(subs))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("got %v, want an error naming line 2", err)
	}

	sales := "# header\n\n100|2020-12-28|10|100|both given\n"
	err = l.ImportRedemptions(strings.NewReader(sales))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("got %v, want an error naming line 3", err)
	}
}
