package fondos

import (
	"time"

	"github.com/jmsanchez/fondos/date"
)

// HoldingReport is the portfolio at a given date: one row per account with
// units still held, valued at the most recent quote at or before the date.
type HoldingReport struct {
	Date         date.Date
	Time         time.Time // generation time
	Rows         []AccountHolding
	TotalCapital Money
	TotalValue   Money
	TotalGain    Money
}

// AccountHolding is the position of a single account.
type AccountHolding struct {
	AccountID string
	Fund      string
	Broker    string
	Currency  string

	Units     Units
	Price     Money
	QuoteDate date.Date

	Capital Money // original invested capital behind the held units
	Value   Money
	Gain    Money
	GainPct float64 // gain over capital, percent
	Share   float64 // value over portfolio total, percent
}

// NewHoldingReport values every open position at the given date, today when
// zero. Capital is traced through transfer chains back to new money, so a
// position moved between funds keeps its original cost basis.
func (l *Ledger) NewHoldingReport(on date.Date) *HoldingReport {
	if on.IsZero() {
		on = date.Today()
	}
	report := &HoldingReport{Date: on, Time: time.Now()}

	l.mu.RLock()
	defer l.mu.RUnlock()

	type position struct {
		units   Units
		capital Money
	}
	open := make(map[*Account]*position)
	for _, dv := range l.divestments() {
		if dv.Order != nil {
			continue
		}
		a := dv.Lot.account
		p := open[a]
		if p == nil {
			p = &position{}
			open[a] = p
		}
		p.units = p.units.Add(dv.Units)
		p.capital = p.capital.Add(dv.Capital)
	}

	for _, a := range l.sortedAccounts() {
		p := open[a]
		if p == nil || (!p.units.IsPositive() && p.capital.IsZero()) {
			continue
		}
		row := AccountHolding{
			AccountID: a.ID,
			Fund:      a.fund.DisplayName(),
			Broker:    a.Broker,
			Currency:  a.fund.Currency,
			Units:     p.units,
			Capital:   p.capital,
		}
		if price, day, ok := l.quoteAsOf(a.ISIN, on); ok && p.units.IsPositive() {
			row.Price = price
			row.QuoteDate = day
			row.Value = price.Mul(p.units).Round()
			row.Gain = row.Value.Sub(row.Capital)
			if row.Capital.IsPositive() {
				row.GainPct = pct(row.Gain, row.Capital)
			}
		}
		report.Rows = append(report.Rows, row)
		report.TotalCapital = report.TotalCapital.Add(row.Capital)
		report.TotalValue = report.TotalValue.Add(row.Value)
	}
	report.TotalGain = report.TotalValue.Sub(report.TotalCapital)
	for i := range report.Rows {
		if report.TotalValue.IsPositive() {
			report.Rows[i].Share = pct(report.Rows[i].Value, report.TotalValue)
		}
	}
	return report
}

// pct returns part over whole as a percentage.
func pct(part, whole Money) float64 {
	return part.Decimal().Div(whole.Decimal()).InexactFloat64() * 100
}
