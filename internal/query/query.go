// Package query exposes the authenticated read side: thin handlers
// over the projections.
package query

import (
	"github.com/bankfold-dev/bankfold/internal/auth"
	"github.com/bankfold-dev/bankfold/internal/model"
	"github.com/bankfold-dev/bankfold/internal/projection"
)

// BalanceReader lists account balances.
type BalanceReader interface {
	All() []projection.AccountBalanceReadModel
}

// TransactionReader lists transactions.
type TransactionReader interface {
	All() []projection.TransactionReadModel
}

// CategoryReader lists categories.
type CategoryReader interface {
	All() []projection.CategoryReadModel
}

// AccountBalances returns every account's computed balance.
type AccountBalances struct {
	balances BalanceReader
	gateway  auth.Gateway
}

// NewAccountBalances creates the balance query handler.
func NewAccountBalances(balances BalanceReader, gateway auth.Gateway) *AccountBalances {
	return &AccountBalances{balances: balances, gateway: gateway}
}

// Handle returns the balances for the connected user.
func (q *AccountBalances) Handle() ([]projection.AccountBalanceReadModel, error) {
	if _, ok := q.gateway.ConnectedUser(); !ok {
		return nil, model.ErrNonAuthenticatedUser
	}
	return q.balances.All(), nil
}

// Transactions returns every imported transaction in import order.
type Transactions struct {
	transactions TransactionReader
	gateway      auth.Gateway
}

// NewTransactions creates the transaction query handler.
func NewTransactions(transactions TransactionReader, gateway auth.Gateway) *Transactions {
	return &Transactions{transactions: transactions, gateway: gateway}
}

// Handle returns the transactions for the connected user.
func (q *Transactions) Handle() ([]projection.TransactionReadModel, error) {
	if _, ok := q.gateway.ConnectedUser(); !ok {
		return nil, model.ErrNonAuthenticatedUser
	}
	return q.transactions.All(), nil
}

// Categories returns the selectable categories, ordered by flow type
// then name.
type Categories struct {
	categories CategoryReader
	gateway    auth.Gateway
}

// NewCategories creates the category query handler.
func NewCategories(categories CategoryReader, gateway auth.Gateway) *Categories {
	return &Categories{categories: categories, gateway: gateway}
}

// Handle returns the categories for the connected user.
func (q *Categories) Handle() ([]projection.CategoryReadModel, error) {
	if _, ok := q.gateway.ConnectedUser(); !ok {
		return nil, model.ErrNonAuthenticatedUser
	}
	return q.categories.All(), nil
}
