package fondos

import (
	"errors"
	"testing"

	"github.com/jmsanchez/fondos/date"
)

func TestAllocateSale_SkipsSpentLots(t *testing.T) {
	l := newTestLedger(t)

	// Lot A is fully sold before the allocation runs; lot B holds 301.91985.
	a, err := l.CreateLot("100", date.MustParse("2020-12-21"), units(10), eur(100), nil)
	if err != nil {
		t.Fatal(err)
	}
	prior, err := l.CreateOrder(nil, date.MustParse("2020-12-23"), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.CreateDisposal(a, prior, nil, eur(110)); err != nil {
		t.Fatal(err)
	}
	b, err := l.CreateLot("100", date.MustParse("2020-12-22"), units(301.91985), eur(7500), nil)
	if err != nil {
		t.Fatal(err)
	}

	order, err := l.CreateOrder(nil, date.MustParse("2020-12-28"), "")
	if err != nil {
		t.Fatal(err)
	}
	disposals, err := l.AllocateSale("100", order, units(300), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(disposals) != 1 {
		t.Fatalf("got %d disposals, want 1 (spent lot skipped)", len(disposals))
	}
	if disposals[0].Lot() != b {
		t.Errorf("sold lot %d, want lot B", disposals[0].Lot().ID())
	}
	if !disposals[0].Units().Equal(U(300)) {
		t.Errorf("sold %v, want 300", disposals[0].Units())
	}
	if rem, _ := l.RemainingUnits(b); !rem.Equal(U(1.91985)) {
		t.Errorf("lot B remaining = %v, want 1.91985", rem)
	}
}

func TestAllocateSale_FIFO(t *testing.T) {
	l := newTestLedger(t)
	for _, lot := range []struct {
		day   string
		units float64
	}{
		{"2020-03-01", 50},
		{"2020-01-01", 100},
		{"2020-02-01", 80},
	} {
		if _, err := l.CreateLot("100", date.MustParse(lot.day), units(lot.units), eur(lot.units*10), nil); err != nil {
			t.Fatal(err)
		}
	}
	order, err := l.CreateOrder(nil, date.MustParse("2020-06-01"), "")
	if err != nil {
		t.Fatal(err)
	}

	disposals, err := l.AllocateSale("100", order, units(150), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(disposals) != 2 {
		t.Fatalf("got %d disposals, want 2", len(disposals))
	}
	// Oldest investment first, later lots untouched while earlier ones hold units.
	first, second := disposals[0], disposals[1]
	if got := first.Lot().InvestmentDate(); got != date.MustParse("2020-01-01") {
		t.Errorf("first sold lot invested %s, want 2020-01-01", got)
	}
	if !first.Units().Equal(U(100)) {
		t.Errorf("first disposal units = %v, want 100 (whole oldest lot)", first.Units())
	}
	if got := second.Lot().InvestmentDate(); got != date.MustParse("2020-02-01") {
		t.Errorf("second sold lot invested %s, want 2020-02-01", got)
	}
	if !second.Units().Equal(U(50)) {
		t.Errorf("second disposal units = %v, want 50", second.Units())
	}
}

func TestAllocateSale_AmountProRata(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.CreateLot("100", date.MustParse("2020-01-01"), units(100), eur(1000), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := l.CreateLot("100", date.MustParse("2020-02-01"), units(50), eur(600), nil); err != nil {
		t.Fatal(err)
	}
	order, err := l.CreateOrder(nil, date.MustParse("2020-06-01"), "")
	if err != nil {
		t.Fatal(err)
	}

	// An amount request liquidates the account; 300 splits 200/100 over the
	// 100/50 unit lots.
	disposals, err := l.AllocateSale("100", order, nil, eur(300))
	if err != nil {
		t.Fatal(err)
	}
	if len(disposals) != 2 {
		t.Fatalf("got %d disposals, want 2", len(disposals))
	}
	p0, _ := disposals[0].Proceeds()
	p1, _ := disposals[1].Proceeds()
	if !p0.Equal(EUR(200)) || !p1.Equal(EUR(100)) {
		t.Errorf("proceeds = %v, %v, want 200, 100", p0, p1)
	}
	for _, a := range l.Lots("100") {
		if rem, _ := l.RemainingUnits(a); !rem.IsZero() {
			t.Errorf("lot %d remaining = %v, want 0", a.ID(), rem)
		}
	}
}

func TestAllocateSale_Errors(t *testing.T) {
	l := newTestLedger(t)
	if _, err := l.CreateLot("100", date.MustParse("2020-01-01"), units(100), eur(1000), nil); err != nil {
		t.Fatal(err)
	}
	order, err := l.CreateOrder(nil, date.MustParse("2020-06-01"), "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := l.AllocateSale("100", order, units(10), eur(100)); !errors.Is(err, ErrAmbiguousAllocation) {
		t.Errorf("both units and amount: got %v, want ErrAmbiguousAllocation", err)
	}
	if _, err := l.AllocateSale("100", order, nil, nil); !errors.Is(err, ErrAmbiguousAllocation) {
		t.Errorf("neither units nor amount: got %v, want ErrAmbiguousAllocation", err)
	}
	if _, err := l.AllocateSale("100", order, units(150), nil); !errors.Is(err, ErrInsufficientUnits) {
		t.Errorf("account oversell: got %v, want ErrInsufficientUnits", err)
	}
	if _, err := l.AllocateSale("999", order, units(1), nil); !errors.Is(err, ErrUnknownAccount) {
		t.Errorf("unknown account: got %v, want ErrUnknownAccount", err)
	}

	// A failed allocation must not leave partial disposals behind.
	if rem, _ := l.RemainingUnits(l.Lot(1)); !rem.Equal(U(100)) {
		t.Errorf("remaining = %v, want 100 untouched", rem)
	}

	// An unresolved lot in FIFO range blocks the whole allocation.
	if _, err := l.CreateLot("100", date.MustParse("2020-01-02"), nil, eur(500), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AllocateSale("100", order, units(101), nil); !errors.Is(err, ErrOversoldLot) {
		t.Errorf("unresolved lot in range: got %v, want ErrOversoldLot", err)
	}
}
