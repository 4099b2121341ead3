package fondos

import (
	"fmt"

	"github.com/jmsanchez/fondos/date"
)

// TransferLeg pairs the sale and the purchase that make up one hop of a
// transfer.
type TransferLeg struct {
	Disposal *Disposal
	Lot      *Lot
}

// Transfer moves money from one lot into a destination account in a single
// atomic step: a disposal on the source lot and a new lot in the destination
// account funded by it. The destination lot inherits the investment date of
// the chain and takes the disposal's proceeds as its cost.
//
// A nil saleUnits sells the lot's entire remaining quantity; saleProceeds may
// fix the realized amount, otherwise the quote of the order date decides. The
// destination settles on destDate, defaulting to the order date; settling
// before the sale is ErrInvalidTransferDate.
//
// When destUnits and saleProceeds are both unspecified and the destination
// settles on the sale date in the same fund, the moved units carry over
// unchanged instead of being revalued through two quotes. Otherwise a nil
// destUnits leaves the destination's unit count to the destination quote.
func (l *Ledger) Transfer(lot *Lot, order *Order, saleUnits *Units, saleProceeds *Money, destAccountID string, destDate date.Date, destUnits *Units) (TransferLeg, error) {
	if lot == nil {
		return TransferLeg{}, fmt.Errorf("transfer lot is missing")
	}
	if order == nil {
		return TransferLeg{}, fmt.Errorf("transfer order is missing")
	}
	dest := l.Account(destAccountID)
	if dest == nil {
		return TransferLeg{}, fmt.Errorf("%w: %s", ErrUnknownAccount, destAccountID)
	}
	defer lockAccounts(lot.account, dest)()

	l.mu.Lock()
	defer l.mu.Unlock()

	if destDate.IsZero() {
		destDate = order.date
	}
	if destDate.Before(order.date) {
		return TransferLeg{}, fmt.Errorf("%w: destination settles %s, sale is %s", ErrInvalidTransferDate, destDate, order.date)
	}
	if destUnits != nil && !destUnits.IsPositive() {
		return TransferLeg{}, fmt.Errorf("destination units must be positive, got %s", destUnits)
	}

	d, err := l.createDisposal(lot, order, saleUnits, saleProceeds)
	if err != nil {
		return TransferLeg{}, err
	}

	if destUnits == nil && saleProceeds == nil && destDate == order.date && dest.ISIN == lot.account.ISIN {
		u := d.units
		destUnits = &u
	}

	funded, err := l.createLot(dest, destDate, destUnits, nil, d)
	if err != nil {
		return TransferLeg{}, err
	}
	return TransferLeg{Disposal: d, Lot: funded}, nil
}

// AllocateTransfer transfers from an account as a whole: the request is split
// into per-lot sales oldest investment first (see planAllocation), and each
// sale funds its own destination lot so every chain keeps its investment
// date. Exactly one of totalUnits and totalAmount must be given; with
// totalAmount everything is moved and the amount pro-rated over each lot's
// share of the sold quantity.
//
// The same-fund carry-over of Transfer applies per leg when totalAmount is
// unspecified and the destination settles on the sale date in the same fund.
func (l *Ledger) AllocateTransfer(accountID string, order *Order, totalUnits *Units, totalAmount *Money, destAccountID string, destDate date.Date) ([]TransferLeg, error) {
	account := l.Account(accountID)
	if account == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, accountID)
	}
	if order == nil {
		return nil, fmt.Errorf("transfer order is missing")
	}
	dest := l.Account(destAccountID)
	if dest == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, destAccountID)
	}
	defer lockAccounts(account, dest)()

	l.mu.Lock()
	defer l.mu.Unlock()

	if destDate.IsZero() {
		destDate = order.date
	}
	if destDate.Before(order.date) {
		return nil, fmt.Errorf("%w: destination settles %s, sale is %s", ErrInvalidTransferDate, destDate, order.date)
	}

	plan, err := planAllocation(account, totalUnits, totalAmount)
	if err != nil {
		return nil, err
	}

	carryOver := totalAmount == nil && destDate == order.date && dest.ISIN == account.ISIN

	legs := make([]TransferLeg, 0, len(plan))
	for _, p := range plan {
		d, err := l.createDisposal(p.lot, order, &p.units, p.proceeds)
		if err != nil {
			return nil, fmt.Errorf("transfer of lot %d: %w", p.lot.id, err)
		}
		var du *Units
		if carryOver {
			u := d.units
			du = &u
		}
		funded, err := l.createLot(dest, destDate, du, nil, d)
		if err != nil {
			return nil, fmt.Errorf("transfer of lot %d: %w", p.lot.id, err)
		}
		legs = append(legs, TransferLeg{Disposal: d, Lot: funded})
	}
	return legs, nil
}
