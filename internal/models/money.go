package models

import "github.com/shopspring/decimal"

// Money is a decimal amount that goes out as a bare JSON number. Decoding
// accepts both numbers and strings.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}
