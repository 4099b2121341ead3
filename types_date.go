package fondos

import "github.com/jmsanchez/fondos/date"

// Date is re-exported from the date package for the convenience of callers.
type Date = date.Date

// Period is re-exported from the date package.
type Period = date.Period

// Range is re-exported from the date package.
type Range = date.Range

const (
	Weekly  = date.Weekly
	Monthly = date.Monthly
)

// Today returns the current date.
func Today() Date { return date.Today() }

// ParseDate parses a Date from its ISO-8601 representation.
func ParseDate(s string) (Date, error) { return date.Parse(s) }

// ParsePeriod parses a sampling period ("weekly" or "monthly").
func ParsePeriod(s string) (Period, error) { return date.ParsePeriod(s) }
