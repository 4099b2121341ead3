package fondos

import (
	"fmt"

	"github.com/jmsanchez/fondos/date"
)

// Backfill lists the pending lots and disposals a quote arrival resolved.
type Backfill struct {
	Lots      []*Lot
	Disposals []*Disposal
}

// PutQuote records the unit value of a fund on a given date. Quotes are
// append-only: a second value for the same fund and date is ErrDuplicateQuote.
// The value is kept with four decimals.
//
// Recording a quote resolves every lot and disposal left pending on it: lot
// costs and unit counts for that trade date, disposal proceeds for orders of
// that date, and, cascading, the cost and units of lots funded by those
// disposals. The resolution runs inside the same critical section as the
// insert, so it cannot race with a concurrent disposal on an affected lot.
func (l *Ledger) PutQuote(isin string, day date.Date, price Money) (Backfill, error) {
	if day.IsZero() {
		return Backfill{}, fmt.Errorf("quote date is missing")
	}
	if !price.IsPositive() {
		return Backfill{}, fmt.Errorf("quote value must be positive, got %s", price)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fund, ok := l.funds[isin]
	if !ok {
		return Backfill{}, fmt.Errorf("%w: %s", ErrUnknownFund, isin)
	}

	hist := l.quotes[isin]
	if hist == nil {
		hist = &date.History[Money]{}
		l.quotes[isin] = hist
	}
	if _, ok := hist.Get(day); ok {
		return Backfill{}, fmt.Errorf("%w: %s on %s", ErrDuplicateQuote, fund.ISIN, day)
	}
	hist.Append(day, M(price.Decimal(), fund.Currency).RoundPrice())

	return l.resolvePending(), nil
}

// quoteAt returns the quote of a fund exactly on a day. The arena lock must
// be held.
func (l *Ledger) quoteAt(isin string, day date.Date) (Money, bool) {
	hist := l.quotes[isin]
	if hist == nil {
		return Money{}, false
	}
	return hist.Get(day)
}

// Quote returns the recorded unit value of a fund on a day.
func (l *Ledger) Quote(isin string, day date.Date) (Money, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.quoteAt(isin, day)
}

// QuoteAsOf returns the most recent quote of a fund at or before a day, and
// the date it was recorded on.
func (l *Ledger) QuoteAsOf(isin string, day date.Date) (Money, date.Date, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.quoteAsOf(isin, day)
}

func (l *Ledger) quoteAsOf(isin string, day date.Date) (Money, date.Date, bool) {
	hist := l.quotes[isin]
	if hist == nil {
		return Money{}, date.Date{}, false
	}
	price, ok := hist.ValueAsOf(day)
	if !ok {
		return Money{}, date.Date{}, false
	}
	on, _ := hist.DateAsOf(day)
	return price, on, true
}

// Quotes returns the last n quotes of a fund, most recent first.
func (l *Ledger) Quotes(isin string, n int) []QuotePoint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	hist := l.quotes[isin]
	if hist == nil {
		return nil
	}
	points := make([]QuotePoint, 0, hist.Len())
	for on, price := range hist.Values() {
		points = append(points, QuotePoint{Date: on, Price: price})
	}
	// most recent first
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	if n > 0 && len(points) > n {
		points = points[:n]
	}
	return points
}

// QuotePoint is one recorded quote of a fund.
type QuotePoint struct {
	Date  date.Date
	Price Money
}

// resolvePending fills every pending lot or disposal that became resolvable,
// cascading disposal proceeds into the cost of the lots they funded, until no
// further progress is made. Re-running it never changes an already resolved
// entity. The arena write lock must be held.
func (l *Ledger) resolvePending() Backfill {
	var bf Backfill
	seen := make(map[*Lot]bool)
	touch := func(s *Lot) {
		if !seen[s] {
			seen[s] = true
			bf.Lots = append(bf.Lots, s)
		}
	}

	for changed := true; changed; {
		changed = false

		for _, d := range l.disposals {
			if d.hasProceeds {
				continue
			}
			price, ok := l.quoteAt(d.lot.account.ISIN, d.order.date)
			if !ok {
				continue
			}
			d.proceeds, d.hasProceeds = price.Mul(d.units).Round(), true
			bf.Disposals = append(bf.Disposals, d)
			changed = true
			if f := d.funded; f != nil && !f.hasCost {
				f.cost, f.hasCost = d.proceeds, true
				touch(f)
			}
		}

		for _, s := range l.lots {
			if s.hasUnits && s.hasCost {
				continue
			}
			if !s.hasCost && s.hasUnits && s.origin == nil {
				// Transfer-funded lots take their cost from the origin's
				// proceeds, never from a quote.
				if price, ok := l.quoteAt(s.account.ISIN, s.tradeDate); ok {
					s.cost, s.hasCost = price.Mul(s.units).Round(), true
					touch(s)
					changed = true
				}
			}
			if !s.hasUnits && s.hasCost {
				if price, ok := l.quoteAt(s.account.ISIN, s.tradeDate); ok {
					s.units, s.hasUnits = s.cost.DivPrice(price), true
					touch(s)
					changed = true
				}
			}
		}
	}
	return bf
}
