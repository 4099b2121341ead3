package fondos

import (
	"github.com/shopspring/decimal"

	"github.com/jmsanchez/fondos/date"
)

// LineageRecord is one hop in a divestment's chain: the share of a lot
// attributable to the divestment, and how the money left it. Cost and
// Proceeds are zero while the underlying value is unresolved.
type LineageRecord struct {
	Divestment int
	Lot        *Lot
	Order      *Order // order the money left this lot under, nil at a still-held terminal

	InvestmentDate date.Date
	TradeDate      date.Date
	TerminalDate   date.Date // sale date, or latest quote date while still held

	Units     Units
	Cost      Money
	Proceeds  Money
	Estimated bool // proceeds valued at the latest quote, not realized
}

// Divestment is the terminal fate of a slice of invested money: either a
// disposal whose proceeds left the system, or units still held in a lot. Its
// chain lists every lot the money passed through, original funding lot first.
type Divestment struct {
	ID    int
	Lot   *Lot   // terminal lot
	Order *Order // nil while still held

	InvestmentDate date.Date
	TerminalDate   date.Date

	Units     Units
	Capital   Money // share of the original funding lot's cost
	Proceeds  Money
	Estimated bool

	Chain []LineageRecord
}

// Divestments enumerates every divestment in the ledger: one per disposal
// whose proceeds did not fund a further lot, and one per lot with units still
// held. Ids follow lot creation order and are stable as long as no operation
// runs in between.
func (l *Ledger) Divestments() []Divestment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.divestments()
}

// Lineage returns the divestments terminating in the given lot, chains
// included. A lot that was fully sold into further lots has none.
func (l *Ledger) Lineage(s *Lot) []Divestment {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Divestment
	for _, dv := range l.divestments() {
		if dv.Lot == s {
			out = append(out, dv)
		}
	}
	return out
}

func (l *Ledger) divestments() []Divestment {
	var out []Divestment
	for _, s := range l.lots {
		for _, d := range s.disposals {
			if d.funded != nil {
				continue // money moved on, accounted in the funded lot's chain
			}
			out = append(out, l.trace(len(out)+1, s, d))
		}
		rem, ok := s.remaining()
		if !ok || rem.IsPositive() {
			out = append(out, l.trace(len(out)+1, s, nil))
		}
	}
	return out
}

// trace reconstructs the chain of one divestment by walking origin disposals
// backwards from the terminal lot, scaling each ancestor's share by
// disposal quantity over ancestor initial quantity. The arena lock must be
// held.
func (l *Ledger) trace(id int, s *Lot, term *Disposal) Divestment {
	// Fraction of the terminal lot the divestment covers.
	frac := decimal.New(1, 0)
	var units Units
	switch {
	case term != nil:
		units = term.units
		frac = units.Ratio(s.units)
	case s.hasUnits:
		units, _ = s.remaining()
		frac = units.Ratio(s.units)
	}

	terminal := LineageRecord{
		Divestment:     id,
		Lot:            s,
		InvestmentDate: s.investDate,
		TradeDate:      s.tradeDate,
		Units:          units,
	}
	if s.hasCost {
		terminal.Cost = s.cost.Prorate(frac)
	}
	if term != nil {
		terminal.Order = term.order
		terminal.TerminalDate = term.order.date
		if term.hasProceeds {
			terminal.Proceeds = term.proceeds
		}
	} else if price, on, ok := l.quoteAsOf(s.account.ISIN, date.Today()); ok && s.hasUnits {
		terminal.TerminalDate = on
		terminal.Proceeds = price.Mul(units).Round()
		terminal.Estimated = true
	}

	chain := []LineageRecord{terminal}
	for cur, f := s, frac; cur.origin != nil; {
		d := cur.origin     // disposal that funded cur
		parent := d.lot     // lot the money came from
		attr := d.units.Scale(f)
		hop := LineageRecord{
			Divestment:     id,
			Lot:            parent,
			Order:          d.order,
			InvestmentDate: parent.investDate,
			TradeDate:      parent.tradeDate,
			TerminalDate:   d.order.date,
			Units:          attr,
		}
		if d.hasProceeds {
			hop.Proceeds = d.proceeds.Prorate(f)
		}
		pf := f.Mul(d.units.Ratio(parent.units))
		if parent.hasCost {
			hop.Cost = parent.cost.Prorate(pf)
		}
		chain = append(chain, hop)
		cur, f = parent, pf
	}
	// Oldest first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	root := chain[0]
	return Divestment{
		ID:             id,
		Lot:            s,
		Order:          terminal.Order,
		InvestmentDate: root.InvestmentDate,
		TerminalDate:   terminal.TerminalDate,
		Units:          terminal.Units,
		Capital:        root.Cost,
		Proceeds:       terminal.Proceeds,
		Estimated:      terminal.Estimated,
		Chain:          chain,
	}
}
