package fondos

import (
	"errors"
	"testing"

	"github.com/jmsanchez/fondos/date"
)

func TestPutQuote_Validation(t *testing.T) {
	l := newTestLedger(t)
	day := date.MustParse("2020-12-21")

	if _, err := l.PutQuote("XX0000000000", day, EUR(10)); !errors.Is(err, ErrUnknownFund) {
		t.Errorf("unknown fund: got %v, want ErrUnknownFund", err)
	}
	if _, err := l.PutQuote("ES0000000001", date.Date{}, EUR(10)); err == nil {
		t.Error("missing date: got nil error")
	}
	if _, err := l.PutQuote("ES0000000001", day, EUR(0)); err == nil {
		t.Error("zero price: got nil error")
	}
}

func TestQuote_RoundsToFourDecimals(t *testing.T) {
	l := newTestLedger(t)
	day := date.MustParse("2020-12-21")
	if _, err := l.PutQuote("ES0000000001", day, EUR(24.76234999)); err != nil {
		t.Fatal(err)
	}
	got, ok := l.Quote("ES0000000001", day)
	if !ok || !got.Equal(EUR(24.7623)) {
		t.Errorf("quote = %v (found %v), want 24.7623", got, ok)
	}
}

func TestQuoteAsOf(t *testing.T) {
	l := newTestLedger(t)
	must(t, putQuote(l, "ES0000000001", date.MustParse("2020-12-21"), 24))
	must(t, putQuote(l, "ES0000000001", date.MustParse("2020-12-28"), 25))

	testCases := []struct {
		day      string
		want     float64
		wantOn   string
		wantMiss bool
	}{
		{day: "2020-12-20", wantMiss: true},
		{day: "2020-12-21", want: 24, wantOn: "2020-12-21"},
		{day: "2020-12-24", want: 24, wantOn: "2020-12-21"},
		{day: "2020-12-28", want: 25, wantOn: "2020-12-28"},
		{day: "2021-06-01", want: 25, wantOn: "2020-12-28"},
	}
	for _, tc := range testCases {
		price, on, ok := l.QuoteAsOf("ES0000000001", date.MustParse(tc.day))
		if tc.wantMiss {
			if ok {
				t.Errorf("QuoteAsOf(%s) = %v, want none", tc.day, price)
			}
			continue
		}
		if !ok || !price.Equal(EUR(tc.want)) || on != date.MustParse(tc.wantOn) {
			t.Errorf("QuoteAsOf(%s) = %v on %s (found %v), want %v on %s", tc.day, price, on, ok, tc.want, tc.wantOn)
		}
	}
}

func TestQuotes_MostRecentFirst(t *testing.T) {
	l := newTestLedger(t)
	for i, day := range []string{"2020-12-21", "2020-12-22", "2020-12-23", "2020-12-24"} {
		must(t, putQuote(l, "ES0000000001", date.MustParse(day), 24+float64(i)))
	}

	points := l.Quotes("ES0000000001", 3)
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	if points[0].Date != date.MustParse("2020-12-24") || !points[0].Price.Equal(EUR(27)) {
		t.Errorf("first point = %+v, want 2020-12-24 at 27", points[0])
	}
	if points[2].Date != date.MustParse("2020-12-22") {
		t.Errorf("last point = %+v, want 2020-12-22", points[2])
	}

	if all := l.Quotes("ES0000000001", 0); len(all) != 4 {
		t.Errorf("unlimited listing: got %d points, want 4", len(all))
	}
	if none := l.Quotes("ES0000000002", 5); none != nil {
		t.Errorf("fund without quotes: got %v, want nil", none)
	}
}

func TestPutQuote_CascadeThroughTransferChain(t *testing.T) {
	l := newTestLedger(t)
	// Pending everywhere: a cost-only lot transferred with no quotes on file.
	s, err := l.CreateLot("100", date.MustParse("2020-01-10"), units(100), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	order, err := l.CreateOrder(nil, date.MustParse("2020-06-01"), "")
	if err != nil {
		t.Fatal(err)
	}
	leg, err := l.Transfer(s, order, nil, nil, "300", date.Date{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := leg.Disposal.Proceeds(); ok {
		t.Fatal("proceeds resolved without a quote")
	}

	// The sale-date quote resolves the disposal and cascades into the
	// destination lot's cost.
	bf, err := l.PutQuote("ES0000000001", order.Date(), EUR(12))
	if err != nil {
		t.Fatal(err)
	}
	if p, ok := leg.Disposal.Proceeds(); !ok || !p.Equal(EUR(1200)) {
		t.Errorf("proceeds = %v (resolved %v), want 1200", p, ok)
	}
	if c, ok := leg.Lot.Cost(); !ok || !c.Equal(EUR(1200)) {
		t.Errorf("destination cost = %v (resolved %v), want 1200", c, ok)
	}
	if _, ok := leg.Lot.Units(); ok {
		t.Fatal("destination units resolved without a destination quote")
	}
	if len(bf.Disposals) != 1 || len(bf.Lots) != 1 {
		t.Errorf("backfill = %d disposals, %d lots, want 1 and 1", len(bf.Disposals), len(bf.Lots))
	}

	// The destination-fund quote then resolves the units in the same pass.
	bf, err = l.PutQuote("ES0000000002", order.Date(), EUR(10))
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := leg.Lot.Units(); !ok || !u.Equal(U(120)) {
		t.Errorf("destination units = %v (resolved %v), want 120", u, ok)
	}
	if len(bf.Lots) != 1 {
		t.Errorf("backfill lots = %d, want 1", len(bf.Lots))
	}
}
