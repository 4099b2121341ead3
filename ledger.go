package fondos

import (
	"slices"
	"strings"
	"sync"

	"github.com/jmsanchez/fondos/date"
)

// Ledger owns the whole arena of funds, accounts, lots, disposals, orders and
// quotes. Lots and disposals are addressed by stable integer ids, assigned in
// creation order and never reused.
//
// Mutating operations against a single account are serialized: each account
// carries an operation mutex, acquired for the whole call, so FIFO allocation
// and remaining-unit checks run against a consistent snapshot. Operations on
// different accounts proceed in parallel. The arena itself is guarded by a
// read-write mutex; mutations are applied in one short critical section after
// validation, so readers see either the pre- or post-state of an operation,
// never a partial one.
type Ledger struct {
	mu sync.RWMutex

	funds    map[string]*Fund
	accounts map[string]*Account

	lots      []*Lot
	disposals []*Disposal

	orders    map[int]*Order
	lastOrder int

	quotes map[string]*date.History[Money] // unit values per fund ISIN
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		funds:    make(map[string]*Fund),
		accounts: make(map[string]*Account),
		orders:   make(map[int]*Order),
		quotes:   make(map[string]*date.History[Money]),
	}
}

// Lot is a discrete purchase of fund units, the atomic unit eligible for
// disposal. Its unit count and cost are each either supplied at creation or
// resolved later from a quote; a lot created as the destination leg of a
// transfer inherits the investment date of the chain it continues.
type Lot struct {
	id      int
	account *Account

	tradeDate  date.Date // when the purchase settled (fecha)
	investDate date.Date // original investment date for tax purposes (fecha_i)

	units    Units // initial unit count, valid only when hasUnits
	hasUnits bool
	cost     Money // acquisition cost, valid only when hasCost
	hasCost  bool

	origin    *Disposal   // disposal whose proceeds funded this lot, nil for new money
	disposals []*Disposal // sales against this lot, in creation order
}

func (s *Lot) ID() int              { return s.id }
func (s *Lot) Account() *Account    { return s.account }
func (s *Lot) TradeDate() date.Date { return s.tradeDate }

// InvestmentDate returns the date the money in this lot was originally
// invested, carried through transfer chains.
func (s *Lot) InvestmentDate() date.Date { return s.investDate }

// Units returns the initial unit count, and whether it has been resolved.
func (s *Lot) Units() (Units, bool) { return s.units, s.hasUnits }

// Cost returns the acquisition cost, and whether it has been resolved.
func (s *Lot) Cost() (Money, bool) { return s.cost, s.hasCost }

// Origin returns the disposal that funded this lot, or nil for new money.
func (s *Lot) Origin() *Disposal { return s.origin }

// remaining computes initial units minus all disposals. It assumes the arena
// lock is held. The boolean is false while the unit count is unresolved.
func (s *Lot) remaining() (Units, bool) {
	if !s.hasUnits {
		return Units{}, false
	}
	left := s.units
	for _, d := range s.disposals {
		left = left.Sub(d.units)
	}
	return left, true
}

// RemainingUnits returns the units of the lot not yet disposed of. The
// boolean is false while the lot's unit count is unresolved.
func (l *Ledger) RemainingUnits(s *Lot) (Units, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return s.remaining()
}

// Disposal is a reduction of a lot's units, realizing proceeds. Its identity
// is immutable once created; pending proceeds may be filled in later by a
// quote arrival but never changed once set.
type Disposal struct {
	id    int
	lot   *Lot
	order *Order

	units       Units
	proceeds    Money
	hasProceeds bool

	funded *Lot // lot this disposal's proceeds paid for, nil for a plain sale
}

func (d *Disposal) ID() int       { return d.id }
func (d *Disposal) Lot() *Lot     { return d.lot }
func (d *Disposal) Order() *Order { return d.order }
func (d *Disposal) Units() Units  { return d.units }

// Proceeds returns the realized amount, and whether it has been resolved.
func (d *Disposal) Proceeds() (Money, bool) { return d.proceeds, d.hasProceeds }

// Funded returns the lot this disposal's proceeds paid for, or nil.
func (d *Disposal) Funded() *Lot { return d.funded }

// Order groups one or more disposals executed by the same client action.
type Order struct {
	id        int
	date      date.Date
	comment   string
	disposals []*Disposal
}

func (o *Order) ID() int              { return o.id }
func (o *Order) Date() date.Date      { return o.date }
func (o *Order) Comment() string      { return o.comment }
func (o *Order) Disposals() []*Disposal {
	return slices.Clone(o.disposals)
}

// Lot returns the lot with this id, or nil.
func (l *Ledger) Lot(id int) *Lot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if id < 1 || id > len(l.lots) {
		return nil
	}
	return l.lots[id-1]
}

// Disposal returns the disposal with this id, or nil.
func (l *Ledger) Disposal(id int) *Disposal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if id < 1 || id > len(l.disposals) {
		return nil
	}
	return l.disposals[id-1]
}

// Order returns the order with this id, or nil.
func (l *Ledger) Order(id int) *Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.orders[id]
}

// Lots returns the lots of an account in creation order.
func (l *Ledger) Lots(accountID string) []*Lot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a := l.accounts[accountID]
	if a == nil {
		return nil
	}
	return slices.Clone(a.lots)
}

// lockAccounts acquires the operation mutex of every given account in a
// deterministic order (sorted by id, duplicates collapsed) and returns the
// matching unlock function.
func lockAccounts(accounts ...*Account) (unlock func()) {
	accs := slices.Clone(accounts)
	slices.SortFunc(accs, func(a, b *Account) int { return strings.Compare(a.ID, b.ID) })
	accs = slices.CompactFunc(accs, func(a, b *Account) bool { return a == b })
	for _, a := range accs {
		a.opMu.Lock()
	}
	return func() {
		for i := len(accs) - 1; i >= 0; i-- {
			accs[i].opMu.Unlock()
		}
	}
}
