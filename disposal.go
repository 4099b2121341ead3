package fondos

import (
	"fmt"

	"github.com/jmsanchez/fondos/date"
)

// CreateOrder opens the order that will group the disposals of one client
// action. A nil id allocates a fresh number. Supplying the id of an existing
// order reuses it (its original date and comment win) unless the supplied
// date conflicts with the order's, which is ErrDuplicateOrder.
func (l *Ledger) CreateOrder(id *int, day date.Date, comment string) (*Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createOrder(id, day, comment)
}

// createOrder implements CreateOrder. The arena write lock must be held.
func (l *Ledger) createOrder(id *int, day date.Date, comment string) (*Order, error) {
	if id != nil {
		if existing, ok := l.orders[*id]; ok {
			if !day.IsZero() && day != existing.date {
				return nil, fmt.Errorf("%w: order %d is dated %s, not %s", ErrDuplicateOrder, *id, existing.date, day)
			}
			return existing, nil
		}
	}
	if day.IsZero() {
		day = date.Today()
	}
	o := &Order{date: day, comment: comment}
	if id != nil {
		if *id < 1 {
			return nil, fmt.Errorf("order id must be positive, got %d", *id)
		}
		o.id = *id
	} else {
		o.id = l.lastOrder + 1
	}
	if o.id > l.lastOrder {
		l.lastOrder = o.id
	}
	l.orders[o.id] = o
	return o, nil
}

// CreateDisposal records a sale of units against one lot, grouped under an
// order.
//
// A nil units sells the lot's entire remaining quantity. Selling a lot whose
// unit count has not been resolved is ErrOversoldLot; selling more than the
// remaining quantity is ErrInsufficientUnits. Omitted proceeds are valued at
// the quote of the order date, round(units*price, 2), or left pending until
// that quote arrives.
func (l *Ledger) CreateDisposal(lot *Lot, order *Order, units *Units, proceeds *Money) (*Disposal, error) {
	if lot == nil {
		return nil, fmt.Errorf("disposal lot is missing")
	}
	lot.account.opMu.Lock()
	defer lot.account.opMu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createDisposal(lot, order, units, proceeds)
}

// createDisposal implements CreateDisposal. The account operation mutex and
// the arena write lock must be held.
func (l *Ledger) createDisposal(lot *Lot, order *Order, units *Units, proceeds *Money) (*Disposal, error) {
	if order == nil {
		return nil, fmt.Errorf("disposal order is missing")
	}

	remaining, resolved := lot.remaining()
	if !resolved {
		return nil, fmt.Errorf("%w: lot %d", ErrOversoldLot, lot.id)
	}

	var q Units
	if units == nil {
		q = remaining // total disposal
	} else {
		q = truncUnits(units.Decimal())
	}
	if !q.IsPositive() {
		return nil, fmt.Errorf("%w: lot %d has nothing left to sell", ErrInsufficientUnits, lot.id)
	}
	if q.GreaterThan(remaining) {
		return nil, fmt.Errorf("%w: lot %d holds %s, asked %s", ErrInsufficientUnits, lot.id, remaining, q)
	}

	d := &Disposal{lot: lot, order: order, units: q}
	if proceeds != nil {
		if proceeds.IsNegative() {
			return nil, fmt.Errorf("disposal proceeds must not be negative, got %s", proceeds)
		}
		d.proceeds, d.hasProceeds = proceeds.Round(), true
	} else if price, ok := l.quoteAt(lot.account.ISIN, order.date); ok {
		d.proceeds, d.hasProceeds = price.Mul(q).Round(), true
	}

	d.id = len(l.disposals) + 1
	l.disposals = append(l.disposals, d)
	lot.disposals = append(lot.disposals, d)
	order.disposals = append(order.disposals, d)
	return d, nil
}
