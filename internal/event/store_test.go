package event

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankfold-dev/bankfold/internal/model"
)

func meta(aggregateID string, version int) Meta {
	return Meta{
		AggregateID: aggregateID,
		ID:          uuid.New(),
		Version:     version,
		Timestamp:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		PublisherID: uuid.New(),
	}
}

func TestMemoryStore_HasAndCurrentVersion(t *testing.T) {
	store := NewMemoryStore()

	assert.False(t, store.Has("Account-123"))
	assert.Equal(t, 0, store.CurrentVersion("Account-123"))

	require.NoError(t, store.Publish(AccountImported{
		Event:         meta("Account-123", 1),
		AccountNumber: "123",
		Name:          "Checking",
	}))
	require.NoError(t, store.Publish(BalanceDeclared{
		Event:   meta("Account-123", 2),
		Balance: model.NewAmount(decimal.NewFromInt(100), "EUR"),
		Date:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}))

	assert.True(t, store.Has("Account-123"))
	assert.Equal(t, 2, store.CurrentVersion("Account-123"))
	assert.False(t, store.Has("Account-456"))
}

func TestMemoryStore_EventsPreserveOrder(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Publish(AccountImported{Event: meta("Account-1", 1), AccountNumber: "1", Name: "A"}))
	require.NoError(t, store.Publish(AccountImported{Event: meta("Account-2", 1), AccountNumber: "2", Name: "B"}))

	events := store.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "Account-1", events[0].Meta().AggregateID)
	assert.Equal(t, "Account-2", events[1].Meta().AggregateID)
}

func TestTransactionAggregateID_CompositePerAccount(t *testing.T) {
	// The same bank transaction id on two accounts is two streams.
	a := TransactionAggregateID("111", "T1")
	b := TransactionAggregateID("222", "T1")
	assert.NotEqual(t, a, b)
	assert.Equal(t, "Transaction-111-T1", a)
}

func TestAccountNumberFromAggregateID(t *testing.T) {
	number, ok := AccountNumberFromAggregateID(AccountAggregateID("FR76-123"))
	require.True(t, ok)
	assert.Equal(t, "FR76-123", number)

	_, ok = AccountNumberFromAggregateID("Transaction-111-T1")
	assert.False(t, ok)

	_, ok = AccountNumberFromAggregateID("Account-")
	assert.False(t, ok)
}
