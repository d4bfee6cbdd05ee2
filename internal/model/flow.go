package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FlowType classifies a transaction by the direction of money flow.
// It is computed once, when the transaction is imported, and never
// changes afterward.
type FlowType string

const (
	FlowIncome  FlowType = "Income"
	FlowExpense FlowType = "Expense"
	FlowNeutral FlowType = "Neutral"
)

// FlowTypeOf derives the flow type from an amount's sign: negative is
// an expense, positive is income, zero is neutral.
func FlowTypeOf(amount decimal.Decimal) FlowType {
	switch amount.Sign() {
	case -1:
		return FlowExpense
	case 1:
		return FlowIncome
	default:
		return FlowNeutral
	}
}

// Is reports whether two flow types match, ignoring case. Read models
// carry flow types as strings that may have passed through external
// layers, so comparisons are case-insensitive.
func (f FlowType) Is(other FlowType) bool {
	return strings.EqualFold(string(f), string(other))
}
