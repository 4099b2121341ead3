package fondos

import "github.com/shopspring/decimal"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// unitsScale is the number of decimals a unit count carries.
const unitsScale = 5

// unitsEpsilon is subtracted before rounding unit counts so that exact
// half-units truncate instead of rounding up. Holdings are never overstated.
var unitsEpsilon = decimal.New(5, -(unitsScale + 1)) // 0.000005

// Units is a count of fund units, exact to five decimals.
type Units struct {
	value decimal.Decimal
}

// U builds a Units value from a raw number, applying the unit rounding
// contract: round(value - ε, 5).
func U[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Units {
	return truncUnits(newDecimal(value))
}

// truncUnits applies the unit rounding contract to a raw decimal.
func truncUnits(d decimal.Decimal) Units {
	if d.IsZero() {
		return Units{}
	}
	return Units{value: d.Sub(unitsEpsilon).Round(unitsScale)}
}

func (q Units) Equal(p Units) bool       { return q.value.Equal(p.value) }
func (q Units) LessThan(p Units) bool    { return q.value.LessThan(p.value) }
func (q Units) GreaterThan(p Units) bool { return q.value.GreaterThan(p.value) }
func (q Units) Add(p Units) Units        { return Units{value: q.value.Add(p.value)} }
func (q Units) Sub(p Units) Units        { return Units{value: q.value.Sub(p.value)} }
func (q Units) IsZero() bool             { return q.value.IsZero() }
func (q Units) IsPositive() bool         { return q.value.IsPositive() }
func (q Units) IsNegative() bool         { return q.value.IsNegative() }
func (q Units) String() string           { return q.value.String() }

// Ratio returns q/p as a raw decimal, keeping full division precision.
func (q Units) Ratio(p Units) decimal.Decimal { return q.value.Div(p.value) }

// Scale returns q scaled by the given ratio, re-applying the unit rounding
// contract.
func (q Units) Scale(ratio decimal.Decimal) Units { return truncUnits(q.value.Mul(ratio)) }

// Decimal returns the underlying exact decimal value.
func (q Units) Decimal() decimal.Decimal { return q.value }

// MarshalJSON implements the json.Marshaler interface.
func (q Units) MarshalJSON() ([]byte, error) { return q.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (q *Units) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }
