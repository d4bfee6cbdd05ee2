package importing

import (
	"context"
	"fmt"

	"github.com/bankfold-dev/bankfold/internal/auth"
	"github.com/bankfold-dev/bankfold/internal/clock"
	"github.com/bankfold-dev/bankfold/internal/event"
	"github.com/bankfold-dev/bankfold/internal/id"
	"github.com/bankfold-dev/bankfold/internal/model"
)

// Handler imports a batch of statement data into the event log.
//
// The batch is not transactional: events published for earlier
// accounts and transactions stay committed when a later transaction
// fails. Callers get at-least-once semantics with no compensation, and
// rely on the per-transaction idempotency check to make re-running the
// same import safe.
type Handler struct {
	store   event.Store
	gateway auth.Gateway
	ids     id.Generator
	clock   clock.Clock
}

// NewHandler creates an import handler.
func NewHandler(store event.Store, gateway auth.Gateway, ids id.Generator, clk clock.Clock) *Handler {
	return &Handler{store: store, gateway: gateway, ids: ids, clock: clk}
}

// Handle validates and publishes the batch.
//
// Every supplied account is re-created at version 1 with no existence
// check, followed by its declared balances at versions 2 onward.
// Transactions are processed strictly in input order: an unknown
// account fails the whole call with ACCOUNT_NOT_FOUND, an
// already-known transaction stream is counted as ignored, anything
// else is published at version 1 with its flow type classified from
// the amount's sign. Cancellation is honored between transactions.
func (h *Handler) Handle(ctx context.Context, imp TransactionImport) (Result, error) {
	user, ok := h.gateway.ConnectedUser()
	if !ok {
		return Result{}, model.ErrNonAuthenticatedUser
	}

	var result Result

	for _, account := range imp.Accounts {
		aggregateID := event.AccountAggregateID(account.AccountNumber)
		err := h.store.Publish(event.AccountImported{
			Event:         h.meta(aggregateID, 1, user),
			AccountNumber: account.AccountNumber,
			Name:          account.Name,
		})
		if err != nil {
			return Result{}, fmt.Errorf("publishing account %s: %w", account.AccountNumber, err)
		}
		result.ImportedAccounts++

		version := 2
		for _, balance := range account.Balances {
			err := h.store.Publish(event.BalanceDeclared{
				Event:   h.meta(aggregateID, version, user),
				Balance: model.NewAmount(balance.Amount, balance.Currency),
				Date:    balance.Date,
			})
			if err != nil {
				return Result{}, fmt.Errorf("publishing balance for %s: %w", account.AccountNumber, err)
			}
			version++
		}
	}

	for _, txn := range imp.Transactions {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		if !h.store.Has(event.AccountAggregateID(txn.AccountNumber)) {
			return Result{}, model.ErrAccountNotFound
		}

		aggregateID := event.TransactionAggregateID(txn.AccountNumber, txn.TransactionID)
		if h.store.Has(aggregateID) {
			result.IgnoredTransactions++
			continue
		}

		err := h.store.Publish(event.TransactionImported{
			Event:         h.meta(aggregateID, 1, user),
			Amount:        model.NewAmount(txn.Amount, txn.Currency),
			Date:          txn.Date,
			Description:   txn.Description,
			AccountNumber: txn.AccountNumber,
			FlowType:      model.FlowTypeOf(txn.Amount),
		})
		if err != nil {
			return Result{}, fmt.Errorf("publishing transaction %s: %w", txn.TransactionID, err)
		}
		result.ImportedTransactions++
	}

	return result, nil
}

func (h *Handler) meta(aggregateID string, version int, user model.User) event.Meta {
	return event.Meta{
		AggregateID: aggregateID,
		ID:          h.ids.New(),
		Version:     version,
		Timestamp:   h.clock.Now(),
		PublisherID: user.ID,
	}
}
