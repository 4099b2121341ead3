package fondos

import (
	"testing"

	"github.com/jmsanchez/fondos/date"
)

// threeHopChain builds lot1 (new money, account 100) sold entirely into lot2
// (account 300), itself sold entirely into lot3 (account 200, still held).
func threeHopChain(t *testing.T, l *Ledger) *Lot {
	t.Helper()
	lot1, err := l.CreateLot("100", date.MustParse("2020-01-10"), units(100), eur(1000), nil)
	if err != nil {
		t.Fatal(err)
	}
	o1, err := l.CreateOrder(nil, date.MustParse("2020-02-10"), "")
	if err != nil {
		t.Fatal(err)
	}
	leg1, err := l.Transfer(lot1, o1, nil, eur(1100), "300", date.Date{}, units(110))
	if err != nil {
		t.Fatal(err)
	}
	o2, err := l.CreateOrder(nil, date.MustParse("2020-03-10"), "")
	if err != nil {
		t.Fatal(err)
	}
	leg2, err := l.Transfer(leg1.Lot, o2, nil, eur(1210), "200", date.Date{}, units(121))
	if err != nil {
		t.Fatal(err)
	}
	return leg2.Lot
}

func TestLineage_ThreeHopChain(t *testing.T) {
	l := newTestLedger(t)
	lot3 := threeHopChain(t, l)

	dvs := l.Lineage(lot3)
	if len(dvs) != 1 {
		t.Fatalf("got %d divestments, want 1", len(dvs))
	}
	dv := dvs[0]
	if dv.Order != nil {
		t.Error("still-held divestment carries an order")
	}
	if !dv.Capital.Equal(EUR(1000)) {
		t.Errorf("capital = %v, want lot1 cost 1000", dv.Capital)
	}
	if dv.InvestmentDate != date.MustParse("2020-01-10") {
		t.Errorf("investment date = %s, want lot1 date 2020-01-10", dv.InvestmentDate)
	}
	if !dv.Units.Equal(U(121)) {
		t.Errorf("units = %v, want 121 still held", dv.Units)
	}
	if len(dv.Chain) != 3 {
		t.Fatalf("chain length = %d, want 3", len(dv.Chain))
	}
	// Oldest first, full fractions all the way down.
	for i, want := range []struct {
		units float64
		cost  float64
	}{
		{100, 1000},
		{110, 1100},
		{121, 1210},
	} {
		hop := dv.Chain[i]
		if !hop.Units.Equal(U(want.units)) {
			t.Errorf("hop %d units = %v, want %v", i, hop.Units, want.units)
		}
		if !hop.Cost.Equal(EUR(want.cost)) {
			t.Errorf("hop %d cost = %v, want %v", i, hop.Cost, want.cost)
		}
		if hop.InvestmentDate != date.MustParse("2020-01-10") {
			t.Errorf("hop %d investment date = %s, want 2020-01-10", i, hop.InvestmentDate)
		}
	}
	if dv.Chain[0].Order == nil || dv.Chain[0].TerminalDate != date.MustParse("2020-02-10") {
		t.Errorf("hop 0 terminal = %v %s, want order dated 2020-02-10", dv.Chain[0].Order, dv.Chain[0].TerminalDate)
	}
	if dv.Chain[2].Order != nil {
		t.Error("terminal hop of a held investment carries an order")
	}
}

func TestLineage_PartialSale(t *testing.T) {
	l := newTestLedger(t)
	s, err := l.CreateLot("100", date.MustParse("2020-01-10"), units(100), eur(1000), nil)
	if err != nil {
		t.Fatal(err)
	}
	order, err := l.CreateOrder(nil, date.MustParse("2020-06-01"), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.CreateDisposal(s, order, units(50), eur(600)); err != nil {
		t.Fatal(err)
	}

	dvs := l.Lineage(s)
	if len(dvs) != 2 {
		t.Fatalf("got %d divestments, want realized + still held", len(dvs))
	}
	realized, held := dvs[0], dvs[1]
	if realized.Order == nil || held.Order != nil {
		t.Fatalf("divestment order: realized %v, held %v", realized.Order, held.Order)
	}
	if !realized.Capital.Equal(EUR(500)) {
		t.Errorf("realized capital = %v, want 500 (half the lot)", realized.Capital)
	}
	if !realized.Proceeds.Equal(EUR(600)) {
		t.Errorf("realized proceeds = %v, want 600", realized.Proceeds)
	}
	if realized.TerminalDate != date.MustParse("2020-06-01") {
		t.Errorf("realized terminal date = %s, want the sale date", realized.TerminalDate)
	}
	if !held.Capital.Equal(EUR(500)) {
		t.Errorf("held capital = %v, want 500", held.Capital)
	}
	if !held.Units.Equal(U(50)) {
		t.Errorf("held units = %v, want 50", held.Units)
	}
}

func TestLineage_HeldValuedAtLatestQuote(t *testing.T) {
	l := newTestLedger(t)
	s, err := l.CreateLot("100", date.MustParse("2020-01-10"), units(100), eur(1000), nil)
	if err != nil {
		t.Fatal(err)
	}
	day := date.MustParse("2020-06-01")
	must(t, putQuote(l, "ES0000000001", day, 12))

	dvs := l.Lineage(s)
	if len(dvs) != 1 {
		t.Fatalf("got %d divestments, want 1", len(dvs))
	}
	dv := dvs[0]
	if !dv.Estimated {
		t.Error("held divestment not marked as estimated")
	}
	if !dv.Proceeds.Equal(EUR(1200)) {
		t.Errorf("estimated proceeds = %v, want 1200", dv.Proceeds)
	}
	if dv.TerminalDate != day {
		t.Errorf("terminal date = %s, want latest quote date %s", dv.TerminalDate, day)
	}
}

func TestDivestments_IntermediateLotsProduceNone(t *testing.T) {
	l := newTestLedger(t)
	lot3 := threeHopChain(t, l)

	dvs := l.Divestments()
	if len(dvs) != 1 {
		t.Fatalf("got %d divestments, want only the chain head", len(dvs))
	}
	if dvs[0].Lot != lot3 {
		t.Errorf("divestment terminal = lot %d, want lot3", dvs[0].Lot.ID())
	}
}
