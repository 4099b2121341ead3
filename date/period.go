package date

import (
	"fmt"
	"strings"
)

// Period is the spacing between two checkpoints of a sampled series.
type Period int

const (
	Monthly Period = iota // zero value, the default sampling
	Weekly
)

func (p Period) String() string {
	switch p {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses a string into a Period.
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(p) {
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	default:
		return Monthly, fmt.Errorf("unknown period %q", p)
	}
}

// Next returns the checkpoint following day for the period.
func (p Period) Next(day Date) Date {
	switch p {
	case Weekly:
		return day.Add(7)
	case Monthly:
		return New(day.Year(), day.Month()+1, day.Day())
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}
