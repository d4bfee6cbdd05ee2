package importing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfold-dev/bankfold/internal/auth"
	"github.com/bankfold-dev/bankfold/internal/event"
	"github.com/bankfold-dev/bankfold/internal/model"
	"github.com/bankfold-dev/bankfold/internal/projection"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqIDs struct{ n uint32 }

func (g *seqIDs) New() uuid.UUID {
	g.n++
	var u uuid.UUID
	u[15] = byte(g.n)
	return u
}

func testUser() model.User {
	return model.User{ID: uuid.MustParse("6f798809-b7c1-4d3f-a21b-e1d3390a0b2e"), Email: "user@bankfold.local"}
}

func newHandler(store event.Store) *Handler {
	return NewHandler(store, auth.Fixed{User: testUser()}, &seqIDs{}, fixedClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func account(number string, balances ...Balance) Account {
	return Account{AccountNumber: number, Name: "Account " + number, Balances: balances}
}

func txn(id, account, amount string, on time.Time) Transaction {
	return Transaction{
		TransactionID: id,
		Amount:        dec(amount),
		Date:          on,
		Description:   "txn " + id,
		AccountNumber: account,
		Currency:      "EUR",
	}
}

func TestHandle_RequiresAuthenticatedUser(t *testing.T) {
	store := event.NewMemoryStore()
	h := NewHandler(store, auth.Anonymous{}, &seqIDs{}, fixedClock{})

	_, err := h.Handle(context.Background(), TransactionImport{
		Accounts: []Account{account("A1")},
	})
	require.ErrorIs(t, err, model.ErrNonAuthenticatedUser)
	assert.Empty(t, store.Events(), "nothing published before the auth check")
}

func TestHandle_PublishesAccountsBalancesAndTransactions(t *testing.T) {
	store := event.NewMemoryStore()
	h := newHandler(store)

	result, err := h.Handle(context.Background(), TransactionImport{
		Accounts: []Account{account("A1",
			Balance{Date: date(2024, 1, 10), Amount: dec("100"), Currency: "EUR"},
			Balance{Date: date(2024, 1, 20), Amount: dec("120"), Currency: "EUR"},
		)},
		Transactions: []Transaction{txn("T1", "A1", "50", date(2024, 1, 15))},
	})
	require.NoError(t, err)
	assert.Equal(t, Result{ImportedAccounts: 1, ImportedTransactions: 1}, result)

	events := store.Events()
	require.Len(t, events, 4)

	imported, ok := events[0].(event.AccountImported)
	require.True(t, ok)
	assert.Equal(t, 1, imported.Meta().Version)
	assert.Equal(t, testUser().ID, imported.Meta().PublisherID)

	first, ok := events[1].(event.BalanceDeclared)
	require.True(t, ok)
	assert.Equal(t, 2, first.Meta().Version)
	second, ok := events[2].(event.BalanceDeclared)
	require.True(t, ok)
	assert.Equal(t, 3, second.Meta().Version, "declared balances at sequential versions")

	assert.Equal(t, 1, store.CurrentVersion("Transaction-A1-T1"))
}

func TestHandle_UnknownAccountFailsButEarlierEventsStayCommitted(t *testing.T) {
	store := event.NewMemoryStore()
	h := newHandler(store)

	_, err := h.Handle(context.Background(), TransactionImport{
		Accounts: []Account{account("A1")},
		Transactions: []Transaction{
			txn("T1", "A1", "50", date(2024, 1, 15)),
			txn("T2", "MISSING", "10", date(2024, 1, 16)),
			txn("T3", "A1", "20", date(2024, 1, 17)),
		},
	})
	require.ErrorIs(t, err, model.ErrAccountNotFound)

	// No rollback: the account and the first transaction are in the
	// log; the failing transaction and everything after it are not.
	assert.True(t, store.Has("Account-A1"))
	assert.True(t, store.Has("Transaction-A1-T1"))
	assert.False(t, store.Has("Transaction-MISSING-T2"))
	assert.False(t, store.Has("Transaction-A1-T3"))
}

func TestHandle_ReimportingKnownTransactionIsIgnored(t *testing.T) {
	store := event.NewMemoryStore()
	h := newHandler(store)

	batch := TransactionImport{
		Accounts:     []Account{account("A1")},
		Transactions: []Transaction{txn("T1", "A1", "50", date(2024, 1, 15))},
	}

	first, err := h.Handle(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ImportedTransactions)

	second, err := h.Handle(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 0, second.ImportedTransactions)
	assert.Equal(t, 1, second.IgnoredTransactions)
	assert.Equal(t, 1, store.CurrentVersion("Transaction-A1-T1"), "nothing republished")
}

func TestHandle_ReimportingAccountIsNotIdempotent(t *testing.T) {
	store := event.NewMemoryStore()
	h := newHandler(store)

	batch := TransactionImport{Accounts: []Account{account("A1")}}
	_, err := h.Handle(context.Background(), batch)
	require.NoError(t, err)
	_, err = h.Handle(context.Background(), batch)
	require.NoError(t, err)

	// Accounts are unconditionally re-created at version 1.
	events := store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, 1, events[0].Meta().Version)
	assert.Equal(t, 1, events[1].Meta().Version)
}

func TestHandle_SameTransactionIDOnTwoAccountsIsTwoFacts(t *testing.T) {
	store := event.NewMemoryStore()
	h := newHandler(store)

	result, err := h.Handle(context.Background(), TransactionImport{
		Accounts: []Account{account("A1"), account("A2")},
		Transactions: []Transaction{
			txn("T1", "A1", "50", date(2024, 1, 15)),
			txn("T1", "A2", "50", date(2024, 1, 15)),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ImportedTransactions)
	assert.True(t, store.Has("Transaction-A1-T1"))
	assert.True(t, store.Has("Transaction-A2-T1"))
}

func TestHandle_FlowTypeFollowsAmountSign(t *testing.T) {
	store := event.NewMemoryStore()
	h := newHandler(store)

	_, err := h.Handle(context.Background(), TransactionImport{
		Accounts: []Account{account("A1")},
		Transactions: []Transaction{
			txn("T1", "A1", "-10", date(2024, 1, 1)),
			txn("T2", "A1", "10", date(2024, 1, 2)),
			txn("T3", "A1", "0", date(2024, 1, 3)),
		},
	})
	require.NoError(t, err)

	flows := make(map[string]model.FlowType)
	for _, e := range store.Events() {
		if imported, ok := e.(event.TransactionImported); ok {
			flows[imported.Meta().AggregateID] = imported.FlowType
		}
	}
	assert.Equal(t, model.FlowExpense, flows["Transaction-A1-T1"])
	assert.Equal(t, model.FlowIncome, flows["Transaction-A1-T2"])
	assert.Equal(t, model.FlowNeutral, flows["Transaction-A1-T3"])
}

func TestHandle_CancellationStopsBetweenTransactions(t *testing.T) {
	store := event.NewMemoryStore()
	h := newHandler(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Handle(ctx, TransactionImport{
		Accounts:     []Account{account("A1")},
		Transactions: []Transaction{txn("T1", "A1", "50", date(2024, 1, 15))},
	})
	require.ErrorIs(t, err, context.Canceled)

	// Accounts were already committed; the transaction never was.
	assert.True(t, store.Has("Account-A1"))
	assert.False(t, store.Has("Transaction-A1-T1"))
}

func TestHandle_ThroughProjectingStore_WorkedExample(t *testing.T) {
	balances := projection.NewAccountBalance()
	transactions := projection.NewTransactions()
	store := event.NewProjectingStore(event.NewMemoryStore(), balances, transactions)
	h := newHandler(store)

	result, err := h.Handle(context.Background(), TransactionImport{
		Accounts: []Account{{
			AccountNumber: "A1",
			Name:          "Acc",
			Balances:      []Balance{{Date: date(2024, 1, 10), Amount: dec("100"), Currency: "EUR"}},
		}},
		Transactions: []Transaction{{
			TransactionID: "T1",
			Amount:        dec("50"),
			Date:          date(2024, 1, 15),
			Description:   "d",
			AccountNumber: "A1",
			Currency:      "EUR",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, Result{ImportedAccounts: 1, ImportedTransactions: 1}, result)

	all := balances.All()
	require.Len(t, all, 1)
	assert.Equal(t, "A1", all[0].AccountNumber)
	assert.True(t, all[0].Balance.Equal(dec("150")))
	assert.Equal(t, "EUR", all[0].Currency)

	txns := transactions.All()
	require.Len(t, txns, 1)
	assert.Equal(t, model.FlowIncome, txns[0].FlowType)
	assert.Nil(t, txns[0].CategoryID)
}

func TestHandle_TransactionBeforeDeclaredBalanceDateExcluded(t *testing.T) {
	balances := projection.NewAccountBalance()
	store := event.NewProjectingStore(event.NewMemoryStore(), balances)
	h := newHandler(store)

	_, err := h.Handle(context.Background(), TransactionImport{
		Accounts: []Account{{
			AccountNumber: "A1",
			Name:          "Acc",
			Balances:      []Balance{{Date: date(2024, 1, 10), Amount: dec("100"), Currency: "EUR"}},
		}},
		Transactions: []Transaction{txn("T1", "A1", "50", date(2024, 1, 5))},
	})
	require.NoError(t, err)

	all := balances.All()
	require.Len(t, all, 1)
	assert.True(t, all[0].Balance.Equal(dec("100")))
}
