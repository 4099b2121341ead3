package fondos

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimals a cash amount carries once settled.
const moneyScale = 2

// priceScale is the number of decimals a quote unit value carries.
const priceScale = 4

// Money represents a monetary value tagged with a currency.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a never nil currency
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// Mul returns the amount for q units at unit value m.
func (m Money) Mul(q Units) Money { return Money{value: m.value.Mul(q.Decimal()), cur: m.cur} }

// DivPrice returns how many units the amount m buys at unit value p.
func (m Money) DivPrice(p Money) Units { return truncUnits(m.value.Div(p.value)) }

// Prorate returns m scaled by ratio, rounded to a cash amount.
func (m Money) Prorate(ratio decimal.Decimal) Money {
	return Money{value: m.value.Mul(ratio).Round(moneyScale), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Round settles m to the cash contract of two decimals.
func (m Money) Round() Money { return Money{value: m.value.Round(moneyScale), cur: m.cur} }

// RoundPrice settles m to the quote contract of four decimals.
func (m Money) RoundPrice() Money { return Money{value: m.value.Round(priceScale), cur: m.cur} }

// Decimal returns the underlying exact decimal value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// MarshalJSON implements the json.Marshaler interface.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	w.Append("amount", m.value)
	return w.MarshalJSON()
}
