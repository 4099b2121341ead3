package fondos

import "testing"

// EUR is a helper for tests to create euro money from const.
func EUR(v float64) Money { return M(v, "EUR") }

func eur(v float64) *Money { m := EUR(v); return &m }
func units(v float64) *Units {
	u := U(v)
	return &u
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

// newTestLedger declares two funds and three accounts: "100" and "200" hold
// the global fund at different brokers, "300" holds the bond fund.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l := NewLedger()
	must(t, l.AddFund(Fund{ISIN: "ES0000000001", Name: "Global Equity FI", Alias: "global", Currency: "EUR", Risk: 6, Active: true}))
	must(t, l.AddFund(Fund{ISIN: "ES0000000002", Name: "Euro Bond FI", Alias: "bonds", Currency: "EUR", Risk: 3, Active: true}))
	for _, a := range [][3]string{
		{"100", "ES0000000001", "openbank"},
		{"200", "ES0000000001", "myinvestor"},
		{"300", "ES0000000002", "openbank"},
	} {
		if _, err := l.AddAccount(a[0], a[1], a[2]); err != nil {
			t.Fatal(err)
		}
	}
	return l
}
