// Package event defines the domain event log: the immutable facts the
// whole system derives its state from, and the append-only store that
// holds them.
package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bankfold-dev/bankfold/internal/model"
)

// Meta carries the fields common to every event. Once published an
// event is never mutated or removed; Version is gapless and strictly
// increasing per aggregate, starting at 1.
type Meta struct {
	AggregateID string
	ID          uuid.UUID
	Version     int
	Timestamp   time.Time
	PublisherID uuid.UUID
}

// Event is the closed set of domain facts. Concrete types embed Meta
// and implement the unexported marker so projections can type-switch
// over every kind the package defines.
type Event interface {
	Meta() Meta
	isEvent()
}

// AccountImported records that a bank account was supplied by a
// statement import, with its number and display name.
type AccountImported struct {
	Event         Meta
	AccountNumber string
	Name          string
}

// BalanceDeclared records a point-in-time balance reported by the bank
// for an account, used as a reconciliation anchor.
type BalanceDeclared struct {
	Event   Meta
	Balance model.Amount
	Date    time.Time
}

// TransactionImported records a bank transaction. The flow type is
// fixed at import time from the amount's sign.
type TransactionImported struct {
	Event         Meta
	Amount        model.Amount
	Date          time.Time
	Description   string
	AccountNumber string
	FlowType      model.FlowType
}

// CategoryCreated records a transaction category with the flow type it
// applies to.
type CategoryCreated struct {
	Event    Meta
	Name     string
	FlowType model.FlowType
}

// TransactionCategoryAssigned records a category assignment (or, with
// nil fields, a clearing) on a transaction stream. It references the
// transaction's stream without altering the original import fact.
type TransactionCategoryAssigned struct {
	Event        Meta
	CategoryID   *string
	CategoryName *string
}

func (e AccountImported) Meta() Meta             { return e.Event }
func (e BalanceDeclared) Meta() Meta             { return e.Event }
func (e TransactionImported) Meta() Meta         { return e.Event }
func (e CategoryCreated) Meta() Meta             { return e.Event }
func (e TransactionCategoryAssigned) Meta() Meta { return e.Event }

func (AccountImported) isEvent()             {}
func (BalanceDeclared) isEvent()             {}
func (TransactionImported) isEvent()         {}
func (CategoryCreated) isEvent()             {}
func (TransactionCategoryAssigned) isEvent() {}

const accountAggregatePrefix = "Account-"

// AccountAggregateID returns the stream key for an account number.
func AccountAggregateID(accountNumber string) string {
	return accountAggregatePrefix + accountNumber
}

// TransactionAggregateID returns the stream key for a transaction.
// The key is composite: the same bank transaction id appearing on two
// different accounts identifies two distinct streams.
func TransactionAggregateID(accountNumber, transactionID string) string {
	return fmt.Sprintf("Transaction-%s-%s", accountNumber, transactionID)
}

// AccountNumberFromAggregateID extracts the account number from an
// account stream key. Returns false for keys of other aggregates.
func AccountNumberFromAggregateID(aggregateID string) (string, bool) {
	if len(aggregateID) <= len(accountAggregatePrefix) {
		return "", false
	}
	if aggregateID[:len(accountAggregatePrefix)] != accountAggregatePrefix {
		return "", false
	}
	return aggregateID[len(accountAggregatePrefix):], true
}
