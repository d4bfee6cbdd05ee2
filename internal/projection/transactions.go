package projection

import (
	"sync"
	"time"

	"github.com/bankfold-dev/bankfold/internal/event"
	"github.com/bankfold-dev/bankfold/internal/model"
)

// TransactionReadModel is one imported transaction as shown to the
// user, keyed by its stream id. Category fields are nil until an
// assignment event sets them.
type TransactionReadModel struct {
	TransactionID string
	Amount        model.Amount
	Date          time.Time
	Description   string
	AccountNumber string
	FlowType      model.FlowType
	CategoryID    *string
	CategoryName  *string
}

// Transactions folds transaction imports and category assignments into
// an ordered list of read models. The list preserves import order;
// assignments overwrite the matching record's category fields in
// place, last write wins. Result depends on application order only
// through that overwrite, whose ordering is the command handler's
// responsibility.
type Transactions struct {
	mu      sync.RWMutex
	records []TransactionReadModel
	index   map[string]int
}

// NewTransactions creates an empty transaction projection.
func NewTransactions() *Transactions {
	return &Transactions{index: make(map[string]int)}
}

// Apply folds one event; events of other kinds are ignored.
func (p *Transactions) Apply(e event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e := e.(type) {
	case event.TransactionImported:
		p.index[e.Meta().AggregateID] = len(p.records)
		p.records = append(p.records, TransactionReadModel{
			TransactionID: e.Meta().AggregateID,
			Amount:        e.Amount,
			Date:          e.Date,
			Description:   e.Description,
			AccountNumber: e.AccountNumber,
			FlowType:      e.FlowType,
		})

	case event.TransactionCategoryAssigned:
		if i, ok := p.index[e.Meta().AggregateID]; ok {
			p.records[i].CategoryID = e.CategoryID
			p.records[i].CategoryName = e.CategoryName
		}
	}
	return nil
}

// All returns every transaction in import order.
func (p *Transactions) All() []TransactionReadModel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]TransactionReadModel, len(p.records))
	copy(out, p.records)
	return out
}

// Get returns the transaction with the given stream id.
func (p *Transactions) Get(transactionID string) (TransactionReadModel, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	i, ok := p.index[transactionID]
	if !ok {
		return TransactionReadModel{}, false
	}
	return p.records[i], true
}
