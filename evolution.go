package fondos

import (
	"github.com/jmsanchez/fondos/date"
)

// Sampling sets the checkpoint grid of an evolution series. From and To clamp
// the series when set; a zero side leaves it unbounded. A zero Period samples
// monthly.
type Sampling struct {
	From   date.Date
	To     date.Date
	Period date.Period
}

// EvolutionPoint is the valuation of a divestment at one checkpoint.
type EvolutionPoint struct {
	Date      date.Date
	QuoteDate date.Date // quote the value was taken from, zero for the opening point
	Value     Money
}

// Evolution samples the valuation of a divestment over its life: an opening
// point at the investment date worth the original capital, then one point per
// period up to the terminal date, or today while the investment is still
// open. Each point values the units held at that date with the most recent
// quote at or before it; checkpoints with no quote yet are skipped. The
// series is a pure function of the ledger state and the sampling.
func (l *Ledger) Evolution(dv Divestment, s Sampling) []EvolutionPoint {
	if len(dv.Chain) == 0 {
		return nil
	}
	period := s.Period
	window := date.Range{From: s.From, To: s.To}

	end := dv.TerminalDate
	if dv.Order == nil || end.IsZero() {
		end = date.Today()
	}
	if !s.To.IsZero() && s.To.Before(end) {
		end = s.To
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var points []EvolutionPoint
	start := dv.InvestmentDate
	if window.Contains(start) && !dv.Capital.IsZero() {
		points = append(points, EvolutionPoint{Date: start, Value: dv.Capital})
	}

	for day := period.Next(start); !day.After(end); day = period.Next(day) {
		if !window.Contains(day) {
			continue
		}
		hop, ok := hopAt(dv.Chain, day)
		if !ok {
			continue
		}
		price, on, ok := l.quoteAsOf(hop.Lot.account.ISIN, day)
		if !ok {
			continue
		}
		points = append(points, EvolutionPoint{
			Date:      day,
			QuoteDate: on,
			Value:     price.Mul(hop.Units).Round(),
		})
	}
	return points
}

// hopAt picks the chain hop holding the money on a given day: the last hop
// whose trade date is not after the day. Days before the first trade date
// have no holder.
func hopAt(chain []LineageRecord, day date.Date) (LineageRecord, bool) {
	for i := len(chain) - 1; i >= 0; i-- {
		if !chain[i].TradeDate.After(day) {
			return chain[i], true
		}
	}
	return LineageRecord{}, false
}
