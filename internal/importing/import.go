// Package importing turns parsed bank statements into domain events.
package importing

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionImport is one batch of statement data to import: the
// accounts the statement covers (with any declared balances) and the
// transactions posted against them.
type TransactionImport struct {
	Accounts     []Account
	Transactions []Transaction
}

// Account is one bank account present in the statement.
type Account struct {
	AccountNumber string
	Name          string
	Balances      []Balance
}

// Balance is a point-in-time balance the bank declared for an account.
type Balance struct {
	Date     time.Time
	Amount   decimal.Decimal
	Currency string
}

// Transaction is one bank transaction from the statement. The
// TransactionID is the bank's identifier (FITID for OFX) and is only
// unique per account.
type Transaction struct {
	TransactionID string
	Amount        decimal.Decimal
	Date          time.Time
	Description   string
	AccountNumber string
	Currency      string
}

// Result summarizes a successful import.
type Result struct {
	ImportedAccounts     int
	ImportedTransactions int
	IgnoredTransactions  int
}
