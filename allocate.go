package fondos

import (
	"fmt"
	"slices"
)

// allocation is one planned per-lot sale of an account-level request.
type allocation struct {
	lot      *Lot
	units    Units
	proceeds *Money // pro-rated amount, nil when the quote decides
}

// planAllocation decomposes an account-level sale request into per-lot sales,
// walking the account's lots oldest investment first (ties broken by creation
// order). Exactly one of totalUnits and totalAmount must be given.
//
// With totalUnits, lots are consumed until the request is satisfied; asking
// for more than the account holds is ErrInsufficientUnits. With totalAmount,
// everything is sold and the amount is pro-rated over each lot's share of the
// total sold quantity. Reaching a lot whose unit count is unresolved is
// ErrOversoldLot.
//
// The account operation mutex and the arena lock must be held.
func planAllocation(account *Account, totalUnits *Units, totalAmount *Money) ([]allocation, error) {
	if (totalUnits == nil) == (totalAmount == nil) {
		return nil, fmt.Errorf("%w: account %s", ErrAmbiguousAllocation, account.ID)
	}

	// FIFO: ascending investment date, creation order on ties.
	lots := slices.Clone(account.lots)
	slices.SortStableFunc(lots, func(a, b *Lot) int {
		switch {
		case a.investDate.Before(b.investDate):
			return -1
		case a.investDate.After(b.investDate):
			return 1
		default:
			return a.id - b.id
		}
	})

	var plan []allocation

	if totalUnits != nil {
		target := truncUnits(totalUnits.Decimal())
		if !target.IsPositive() {
			return nil, fmt.Errorf("total units must be positive, got %s", target)
		}
		var acc Units // cumulative units allocated so far
		for _, lot := range lots {
			if !acc.LessThan(target) {
				break // satisfied, later lots stay untouched
			}
			part, resolved := lot.remaining()
			if !resolved {
				return nil, fmt.Errorf("%w: lot %d", ErrOversoldLot, lot.id)
			}
			if !part.IsPositive() {
				continue // spent lot, skip
			}
			sold := part
			if left := target.Sub(acc); left.LessThan(part) {
				sold = left // partial remainder from this lot
			}
			plan = append(plan, allocation{lot: lot, units: sold})
			acc = acc.Add(sold)
		}
		if acc.LessThan(target) {
			return nil, fmt.Errorf("%w: account %s holds %s, asked %s", ErrInsufficientUnits, account.ID, acc, target)
		}
		return plan, nil
	}

	// Amount request: sell everything, pro-rate the amount over each lot's
	// share of the total sold quantity.
	amount := totalAmount.Round()
	if amount.IsNegative() {
		return nil, fmt.Errorf("total amount must not be negative, got %s", amount)
	}
	var totalSold Units
	for _, lot := range lots {
		part, resolved := lot.remaining()
		if !resolved {
			return nil, fmt.Errorf("%w: lot %d", ErrOversoldLot, lot.id)
		}
		if !part.IsPositive() {
			continue
		}
		plan = append(plan, allocation{lot: lot, units: part})
		totalSold = totalSold.Add(part)
	}
	if !totalSold.IsPositive() {
		return nil, fmt.Errorf("%w: account %s has nothing to sell", ErrInsufficientUnits, account.ID)
	}
	for i := range plan {
		p := amount.Prorate(plan[i].units.Ratio(totalSold))
		plan[i].proceeds = &p
	}
	return plan, nil
}

// AllocateSale sells from an account as a whole: the request is decomposed
// into one disposal per touched lot, oldest investment first, all grouped
// under the given order. Exactly one of totalUnits and totalAmount must be
// given; see planAllocation for the split rules. Validation runs before any
// disposal is created, so the call either applies fully or not at all.
func (l *Ledger) AllocateSale(accountID string, order *Order, totalUnits *Units, totalAmount *Money) ([]*Disposal, error) {
	account := l.Account(accountID)
	if account == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
	}
	if order == nil {
		return nil, fmt.Errorf("sale order is missing")
	}
	account.opMu.Lock()
	defer account.opMu.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	plan, err := planAllocation(account, totalUnits, totalAmount)
	if err != nil {
		return nil, err
	}

	disposals := make([]*Disposal, 0, len(plan))
	for _, p := range plan {
		d, err := l.createDisposal(p.lot, order, &p.units, p.proceeds)
		if err != nil {
			// The plan never oversells, so disposal creation cannot fail.
			return nil, fmt.Errorf("allocation of lot %d: %w", p.lot.id, err)
		}
		disposals = append(disposals, d)
	}
	return disposals, nil
}
