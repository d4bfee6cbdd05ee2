// Package category manages transaction categories: the seeded
// catalog and the assignment of categories to imported transactions.
package category

import (
	"strings"

	"github.com/bankfold-dev/bankfold/internal/auth"
	"github.com/bankfold-dev/bankfold/internal/clock"
	"github.com/bankfold-dev/bankfold/internal/event"
	"github.com/bankfold-dev/bankfold/internal/id"
	"github.com/bankfold-dev/bankfold/internal/model"
	"github.com/bankfold-dev/bankfold/internal/projection"
)

// TransactionReader looks up one transaction read model by stream id.
type TransactionReader interface {
	Get(transactionID string) (projection.TransactionReadModel, bool)
}

// CategoryReader looks up one category read model by id.
type CategoryReader interface {
	Get(categoryID string) (projection.CategoryReadModel, bool)
}

// AssignHandler assigns a category to an imported transaction, or
// clears the assignment.
//
// The version of the published event is read from the store just
// before publishing, with no compare-and-set: two concurrent
// assignments to the same transaction can race and the last publish
// wins.
type AssignHandler struct {
	store        event.Store
	transactions TransactionReader
	categories   CategoryReader
	gateway      auth.Gateway
	ids          id.Generator
	clock        clock.Clock
}

// NewAssignHandler creates an assignment handler.
func NewAssignHandler(
	store event.Store,
	transactions TransactionReader,
	categories CategoryReader,
	gateway auth.Gateway,
	ids id.Generator,
	clk clock.Clock,
) *AssignHandler {
	return &AssignHandler{
		store:        store,
		transactions: transactions,
		categories:   categories,
		gateway:      gateway,
		ids:          ids,
		clock:        clk,
	}
}

// Handle assigns categoryID to the transaction, or clears the current
// assignment when categoryID is blank. Clearing is always allowed;
// assigning requires a known category whose flow type matches the
// transaction's, and neutral transactions never accept a category.
func (h *AssignHandler) Handle(transactionID, categoryID string) error {
	user, ok := h.gateway.ConnectedUser()
	if !ok {
		return model.ErrNonAuthenticatedUser
	}

	transaction, ok := h.transactions.Get(transactionID)
	if !ok {
		return model.ErrTransactionNotFound
	}

	if strings.TrimSpace(categoryID) == "" {
		return h.publish(transactionID, nil, nil, user)
	}

	if transaction.FlowType.Is(model.FlowNeutral) {
		return model.ErrCategoryForbiddenForNeutralFlow
	}

	category, ok := h.categories.Get(categoryID)
	if !ok {
		return model.ErrInvalidTransactionCategory
	}

	if !category.FlowType.Is(transaction.FlowType) {
		return model.ErrCategoryNotAllowedForFlow
	}

	return h.publish(transactionID, &category.CategoryID, &category.Name, user)
}

func (h *AssignHandler) publish(transactionID string, categoryID, categoryName *string, user model.User) error {
	return h.store.Publish(event.TransactionCategoryAssigned{
		Event: event.Meta{
			AggregateID: transactionID,
			ID:          h.ids.New(),
			Version:     h.store.CurrentVersion(transactionID) + 1,
			Timestamp:   h.clock.Now(),
			PublisherID: user.ID,
		},
		CategoryID:   categoryID,
		CategoryName: categoryName,
	})
}
