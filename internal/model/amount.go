package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in a single currency. Arithmetic is only
// ever performed between amounts of the same currency; the balance
// projection relies on one currency per account.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// NewAmount creates an Amount from a decimal value and a currency code.
func NewAmount(value decimal.Decimal, currency string) Amount {
	return Amount{Value: value, Currency: currency}
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %s", a.Value.StringFixed(2), a.Currency)
}
