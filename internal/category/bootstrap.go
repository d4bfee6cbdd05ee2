package category

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bankfold-dev/bankfold/internal/clock"
	"github.com/bankfold-dev/bankfold/internal/event"
	"github.com/bankfold-dev/bankfold/internal/id"
	"github.com/bankfold-dev/bankfold/internal/model"
)

// Seed is one entry of the built-in category catalog.
type Seed struct {
	AggregateID string
	Name        string
	FlowType    model.FlowType
}

// DefaultCatalog is the catalog seeded at process start.
func DefaultCatalog() []Seed {
	return []Seed{
		{"Category-Expense-Alimentation", "Alimentation", model.FlowExpense},
		{"Category-Expense-Logement", "Logement", model.FlowExpense},
		{"Category-Expense-Transport", "Transport", model.FlowExpense},
		{"Category-Expense-Sante", "Santé", model.FlowExpense},
		{"Category-Expense-Loisirs", "Loisirs", model.FlowExpense},
		{"Category-Expense-Factures", "Factures", model.FlowExpense},
		{"Category-Expense-Education", "Éducation", model.FlowExpense},
		{"Category-Expense-Impots", "Impôts", model.FlowExpense},
		{"Category-Expense-Autres", "Autres", model.FlowExpense},
		{"Category-Income-Salaire", "Salaire", model.FlowIncome},
		{"Category-Income-Freelance", "Freelance", model.FlowIncome},
		{"Category-Income-Remboursement", "Remboursement", model.FlowIncome},
		{"Category-Income-Aides", "Aides", model.FlowIncome},
		{"Category-Income-Placement", "Placement", model.FlowIncome},
		{"Category-Income-Autres", "Autres", model.FlowIncome},
	}
}

// Bootstrapper seeds the category catalog into the event log. Seeding
// is idempotent: categories whose stream already exists are skipped,
// so running it at every process start publishes each category once.
type Bootstrapper struct {
	store   event.Store
	catalog []Seed
	ids     id.Generator
	clock   clock.Clock
}

// NewBootstrapper creates a bootstrapper over the given catalog.
func NewBootstrapper(store event.Store, catalog []Seed, ids id.Generator, clk clock.Clock) *Bootstrapper {
	return &Bootstrapper{store: store, catalog: catalog, ids: ids, clock: clk}
}

// Bootstrap publishes a category-created event for every catalog entry
// not yet present in the log. The publisher is the zero UUID: seeding
// is a system action, not a user one.
func (b *Bootstrapper) Bootstrap() error {
	for _, seed := range b.catalog {
		if b.store.Has(seed.AggregateID) {
			continue
		}

		err := b.store.Publish(event.CategoryCreated{
			Event: event.Meta{
				AggregateID: seed.AggregateID,
				ID:          b.ids.New(),
				Version:     b.store.CurrentVersion(seed.AggregateID) + 1,
				Timestamp:   b.clock.Now(),
				PublisherID: uuid.Nil,
			},
			Name:     seed.Name,
			FlowType: seed.FlowType,
		})
		if err != nil {
			return fmt.Errorf("seeding category %s: %w", seed.AggregateID, err)
		}
	}
	return nil
}
