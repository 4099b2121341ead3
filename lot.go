package fondos

import (
	"fmt"

	"github.com/jmsanchez/fondos/date"
)

// CreateLot records a purchase of fund units in an account.
//
// Either units or cost must be supplied, or a quote for the account's fund on
// the trade date must exist so the missing one can be derived:
//
//	units = round(cost/price - ε, 5)
//	cost  = round(price*units, 2)
//
// A lot created with only one of the two stays pending on the other until a
// quote for that fund and date arrives (see PutQuote). A lot funded by an
// origin disposal inherits the investment date of the sold lot and takes the
// disposal's proceeds as its cost; it is never ErrInvalidLot since its cost
// is ultimately derivable.
func (l *Ledger) CreateLot(accountID string, tradeDate date.Date, units *Units, cost *Money, origin *Disposal) (*Lot, error) {
	account := l.Account(accountID)
	if account == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
	}
	account.opMu.Lock()
	defer account.opMu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.createLot(account, tradeDate, units, cost, origin)
}

// createLot implements CreateLot. The account operation mutex and the arena
// write lock must be held.
func (l *Ledger) createLot(account *Account, tradeDate date.Date, units *Units, cost *Money, origin *Disposal) (*Lot, error) {
	if tradeDate.IsZero() {
		return nil, fmt.Errorf("lot trade date is missing")
	}

	s := &Lot{account: account, tradeDate: tradeDate, investDate: tradeDate}

	if units != nil {
		if !units.IsPositive() {
			return nil, fmt.Errorf("lot units must be positive, got %s", units)
		}
		s.units, s.hasUnits = truncUnits(units.Decimal()), true
	}
	if cost != nil {
		if !cost.IsPositive() {
			return nil, fmt.Errorf("lot cost must be positive, got %s", cost)
		}
		s.cost, s.hasCost = cost.Round(), true
	}

	if origin != nil {
		if origin.funded != nil {
			return nil, fmt.Errorf("disposal %d already funded lot %d", origin.id, origin.funded.id)
		}
		s.origin = origin
		s.investDate = origin.lot.investDate
		if !s.hasCost {
			if proceeds, ok := origin.Proceeds(); ok {
				s.cost, s.hasCost = proceeds, true
			}
		}
	}

	// Derive the missing side from the quote of the trade date, when known.
	if price, ok := l.quoteAt(account.ISIN, tradeDate); ok {
		switch {
		case s.hasCost && !s.hasUnits:
			s.units, s.hasUnits = s.cost.DivPrice(price), true
		case s.hasUnits && !s.hasCost && origin == nil:
			s.cost, s.hasCost = price.Mul(s.units).Round(), true
		}
	}

	if !s.hasUnits && !s.hasCost && origin == nil {
		return nil, fmt.Errorf("%w: account %s on %s", ErrInvalidLot, account.ID, tradeDate)
	}

	s.id = len(l.lots) + 1
	l.lots = append(l.lots, s)
	account.lots = append(account.lots, s)
	if origin != nil {
		origin.funded = s
	}
	return s, nil
}
