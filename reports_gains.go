package fondos

import (
	"math"
	"slices"

	"github.com/jmsanchez/fondos/date"
)

// GainsReport lists realized gains over a period: one row per divestment
// whose terminal sale falls in the period, with yearly subtotals.
type GainsReport struct {
	Range date.Range
	Rows  []DivestmentGain
	Years []YearGains

	TotalCapital  Money
	TotalProceeds Money
	TotalGain     Money
}

// DivestmentGain is the realized result of one divestment.
type DivestmentGain struct {
	Divestment int
	AccountID  string
	Fund       string

	InvestmentDate date.Date
	SaleDate       date.Date
	Days           int

	Units    Units
	Capital  Money
	Proceeds Money
	Gain     Money
	TAE      float64 // annualized return, percent
}

// YearGains aggregates the divestments sold in one calendar year.
type YearGains struct {
	Year     int
	Capital  Money
	Proceeds Money
	Gain     Money
}

// NewGainsReport computes the realized gains of the divestments sold within
// the period. Gains trace capital through transfer chains, so the holding
// time for annualization runs from the original investment date, not the
// last transfer.
func (l *Ledger) NewGainsReport(period date.Range) *GainsReport {
	report := &GainsReport{Range: period}

	years := make(map[int]*YearGains)
	for _, dv := range l.Divestments() {
		if dv.Order == nil || !period.Contains(dv.TerminalDate) {
			continue
		}
		a := dv.Lot.Account()
		row := DivestmentGain{
			Divestment:     dv.ID,
			AccountID:      a.ID,
			Fund:           a.Fund().DisplayName(),
			InvestmentDate: dv.InvestmentDate,
			SaleDate:       dv.TerminalDate,
			Days:           dv.TerminalDate.Sub(dv.InvestmentDate),
			Units:          dv.Units,
			Capital:        dv.Capital,
			Proceeds:       dv.Proceeds,
			Gain:           dv.Proceeds.Sub(dv.Capital),
		}
		row.TAE = annualized(row.Gain, row.Capital, row.Days)
		report.Rows = append(report.Rows, row)

		y := dv.TerminalDate.Year()
		yg := years[y]
		if yg == nil {
			yg = &YearGains{Year: y}
			years[y] = yg
		}
		yg.Capital = yg.Capital.Add(row.Capital)
		yg.Proceeds = yg.Proceeds.Add(row.Proceeds)
		yg.Gain = yg.Gain.Add(row.Gain)

		report.TotalCapital = report.TotalCapital.Add(row.Capital)
		report.TotalProceeds = report.TotalProceeds.Add(row.Proceeds)
		report.TotalGain = report.TotalGain.Add(row.Gain)
	}

	for _, yg := range years {
		report.Years = append(report.Years, *yg)
	}
	slices.SortFunc(report.Years, func(a, b YearGains) int { return a.Year - b.Year })
	return report
}

// annualized converts a gain over a holding time into a yearly rate,
// (1+g/c)^(365/days) scaled to percent.
func annualized(gain, capital Money, days int) float64 {
	if days <= 0 || !capital.IsPositive() {
		return 0
	}
	ratio := gain.Decimal().Div(capital.Decimal()).InexactFloat64()
	return (math.Pow(1+ratio, 365/float64(days)) - 1) * 100
}
