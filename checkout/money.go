package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount in the payment currency. It is written to the
// gateway as a bare JSON number and accepts either a number or a quoted
// string when decoding.
type Money struct {
	d decimal.Decimal
}

func NewMoney(v float64) Money {
	return Money{d: decimal.NewFromFloat(v)}
}

func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return Money{d: d}, nil
}

func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) IsZero() bool { return m.d.IsZero() }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

func (m Money) Float64() float64 { return m.d.InexactFloat64() }

func (m Money) String() string { return m.d.String() }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.d.UnmarshalJSON(b)
}
