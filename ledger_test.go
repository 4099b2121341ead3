package fondos

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jmsanchez/fondos/date"
)

func TestConcurrentDisposals_NeverOversell(t *testing.T) {
	l := newTestLedger(t)
	s, err := l.CreateLot("100", date.MustParse("2020-01-10"), units(100), eur(1000), nil)
	if err != nil {
		t.Fatal(err)
	}
	order, err := l.CreateOrder(nil, date.MustParse("2020-06-01"), "")
	if err != nil {
		t.Fatal(err)
	}

	// 150 sellers race for 100 units, one unit each. Exactly 100 win.
	var sold, rejected atomic.Int32
	var wg sync.WaitGroup
	for range 150 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.CreateDisposal(s, order, units(1), eur(12))
			switch {
			case err == nil:
				sold.Add(1)
			case errors.Is(err, ErrInsufficientUnits):
				rejected.Add(1)
			default:
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if sold.Load() != 100 || rejected.Load() != 50 {
		t.Errorf("sold %d, rejected %d, want 100 and 50", sold.Load(), rejected.Load())
	}
	if rem, _ := l.RemainingUnits(s); !rem.IsZero() {
		t.Errorf("remaining = %v, want 0", rem)
	}
}

func TestConcurrentAccountsAndQuotes(t *testing.T) {
	l := newTestLedger(t)
	base := date.MustParse("2020-01-01")

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.CreateLot("100", base.Add(i), units(10), eur(100), nil); err != nil {
				t.Error(err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.CreateLot("300", base.Add(i), nil, eur(100), nil); err != nil {
				t.Error(err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := putQuote(l, "ES0000000002", base.Add(i), 10); err != nil && !errors.Is(err, ErrDuplicateQuote) {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if got := len(l.Lots("100")); got != 50 {
		t.Errorf("account 100 has %d lots, want 50", got)
	}
	// Every bond lot has its quote by now, whether it arrived before or
	// after the lot; nothing may stay pending.
	for _, s := range l.Lots("300") {
		if u, ok := s.Units(); !ok || !u.Equal(U(10)) {
			t.Errorf("lot %d units = %v (resolved %v), want 10", s.ID(), u, ok)
		}
	}
}
