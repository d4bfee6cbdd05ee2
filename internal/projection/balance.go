// Package projection holds the read models folded from the event log.
// Every projection is rebuildable from scratch by replaying the log.
package projection

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankfold-dev/bankfold/internal/event"
)

// AccountBalanceReadModel is the computed balance of one account.
type AccountBalanceReadModel struct {
	AccountNumber string
	Balance       decimal.Decimal
	Currency      string
}

// AccountBalance folds transaction imports and declared balances into
// per-account running balances. Account numbers are compared
// case-insensitively.
//
// The fold keeps every imported transaction plus the single
// most-recently-dated declared-balance snapshot, comparing the
// declared dates themselves rather than arrival order. A late-arriving
// balance fact with an older date never displaces a newer snapshot, so
// the final state does not depend on the order events were applied in.
type AccountBalance struct {
	mu     sync.RWMutex
	states map[string]*accountState
}

type accountState struct {
	accountNumber string
	transactions  []importedTransaction
	snapshot      *balanceSnapshot
}

type importedTransaction struct {
	date     time.Time
	amount   decimal.Decimal
	currency string
}

type balanceSnapshot struct {
	date     time.Time
	amount   decimal.Decimal
	currency string
}

// NewAccountBalance creates an empty balance projection.
func NewAccountBalance() *AccountBalance {
	return &AccountBalance{states: make(map[string]*accountState)}
}

// Apply folds one event; events of other kinds are ignored.
func (p *AccountBalance) Apply(e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e := e.(type) {
	case event.TransactionImported:
		state := p.state(e.AccountNumber)
		state.transactions = append(state.transactions, importedTransaction{
			date:     e.Date,
			amount:   e.Amount.Value,
			currency: e.Amount.Currency,
		})

	case event.BalanceDeclared:
		accountNumber, ok := event.AccountNumberFromAggregateID(e.Meta().AggregateID)
		if !ok {
			return nil
		}
		state := p.state(accountNumber)
		if state.snapshot == nil || !e.Date.Before(state.snapshot.date) {
			state.snapshot = &balanceSnapshot{
				date:     e.Date,
				amount:   e.Balance.Value,
				currency: e.Balance.Currency,
			}
		}
	}
	return nil
}

func (p *AccountBalance) state(accountNumber string) *accountState {
	key := strings.ToLower(accountNumber)
	state, ok := p.states[key]
	if !ok {
		state = &accountState{accountNumber: accountNumber}
		p.states[key] = state
	}
	return state
}

// All computes the balance of every account with at least one recorded
// fact, ordered by account number ascending, case-insensitively.
//
// With a declared-balance snapshot the balance is the snapshot amount
// plus the sum of transactions dated strictly after the snapshot date,
// in the snapshot's currency. Without one it is the sum of all
// transactions, in the first transaction's currency. Accounts with
// neither are omitted.
func (p *AccountBalance) All() []AccountBalanceReadModel {
	p.mu.RLock()
	defer p.mu.RUnlock()

	models := make([]AccountBalanceReadModel, 0, len(p.states))
	for _, state := range p.states {
		if model, ok := balanceOf(state); ok {
			models = append(models, model)
		}
	}
	sort.Slice(models, func(i, j int) bool {
		return strings.ToLower(models[i].AccountNumber) < strings.ToLower(models[j].AccountNumber)
	})
	return models
}

func balanceOf(state *accountState) (AccountBalanceReadModel, bool) {
	if snapshot := state.snapshot; snapshot != nil {
		balance := snapshot.amount
		for _, txn := range state.transactions {
			if txn.date.After(snapshot.date) {
				balance = balance.Add(txn.amount)
			}
		}
		return AccountBalanceReadModel{
			AccountNumber: state.accountNumber,
			Balance:       balance,
			Currency:      snapshot.currency,
		}, true
	}

	if len(state.transactions) == 0 {
		return AccountBalanceReadModel{}, false
	}

	balance := decimal.Zero
	for _, txn := range state.transactions {
		balance = balance.Add(txn.amount)
	}
	return AccountBalanceReadModel{
		AccountNumber: state.accountNumber,
		Balance:       balance,
		Currency:      state.transactions[0].currency,
	}, true
}
