package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bankfold-dev/bankfold/internal/auth"
	"github.com/bankfold-dev/bankfold/internal/category"
	"github.com/bankfold-dev/bankfold/internal/clock"
	"github.com/bankfold-dev/bankfold/internal/config"
	"github.com/bankfold-dev/bankfold/internal/event"
	"github.com/bankfold-dev/bankfold/internal/id"
	"github.com/bankfold-dev/bankfold/internal/importing"
	"github.com/bankfold-dev/bankfold/internal/model"
	"github.com/bankfold-dev/bankfold/internal/projection"
	"github.com/bankfold-dev/bankfold/internal/query"
)

// app holds the wired domain core for one CLI invocation. The event
// log and projections are constructed once here and every handler
// shares the same handles; nothing is ambient.
type app struct {
	log zerolog.Logger

	importer *importing.Handler
	assigner *category.AssignHandler

	balanceQuery     *query.AccountBalances
	transactionQuery *query.Transactions
	categoryQuery    *query.Categories
}

// newApp builds the event store, projections, and handlers from the
// configuration, and seeds the category catalog.
func newApp(cfg *config.Config, log zerolog.Logger) (*app, error) {
	userID, err := uuid.Parse(cfg.User.ID)
	if err != nil {
		return nil, fmt.Errorf("parsing user id %q: %w", cfg.User.ID, err)
	}

	gateway := auth.Fixed{User: model.User{ID: userID, Email: cfg.User.Email}}
	ids := id.UUID{}
	clk := clock.System{}

	balances := projection.NewAccountBalance()
	transactions := projection.NewTransactions()
	categories := projection.NewCategories()
	store := event.NewProjectingStore(event.NewMemoryStore(), balances, transactions, categories)

	bootstrapper := category.NewBootstrapper(store, category.DefaultCatalog(), ids, clk)
	if err := bootstrapper.Bootstrap(); err != nil {
		return nil, fmt.Errorf("seeding categories: %w", err)
	}

	return &app{
		log:              log,
		importer:         importing.NewHandler(store, gateway, ids, clk),
		assigner:         category.NewAssignHandler(store, transactions, categories, gateway, ids, clk),
		balanceQuery:     query.NewAccountBalances(balances, gateway),
		transactionQuery: query.NewTransactions(transactions, gateway),
		categoryQuery:    query.NewCategories(categories, gateway),
	}, nil
}

// loadConfig reads the config file, falling back to defaults when the
// path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default("user@bankfold.local"), nil
	}
	return config.Load(path)
}
