package farmacia

import (
	"github.com/shopspring/decimal"
)

// Money is a decimal amount in BRL. It is sent to the API as a bare JSON
// number and accepts both numbers and quoted strings when decoding.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

func NewMoneyFromInt(v int64) Money { return Money{Decimal: decimal.NewFromInt(v)} }

// ParseMoney parses a plain decimal string such as "12.50"
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}

	return Money{Decimal: d}, nil
}

func (m Money) Add(o Money) Money { return Money{Decimal: m.Decimal.Add(o.Decimal)} }

// Times multiplies the amount by a unit count
func (m Money) Times(n int) Money {
	return Money{Decimal: m.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}

func (m Money) Equal(o Money) bool { return m.Decimal.Equal(o.Decimal) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}

	return m.Decimal.UnmarshalJSON(b)
}
