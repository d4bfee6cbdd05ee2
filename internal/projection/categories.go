package projection

import (
	"sort"
	"sync"

	"github.com/bankfold-dev/bankfold/internal/event"
	"github.com/bankfold-dev/bankfold/internal/model"
)

// CategoryReadModel is one selectable transaction category.
type CategoryReadModel struct {
	CategoryID string
	Name       string
	FlowType   model.FlowType
}

// Categories folds category-created events into a lookup by category
// id. Re-creating an existing id replaces the entry, so replaying the
// same event is idempotent and the result does not depend on
// application order for distinct ids.
type Categories struct {
	mu   sync.RWMutex
	byID map[string]CategoryReadModel
}

// NewCategories creates an empty category projection.
func NewCategories() *Categories {
	return &Categories{byID: make(map[string]CategoryReadModel)}
}

// Apply folds one event; events of other kinds are ignored.
func (p *Categories) Apply(e event.Event) error {
	created, ok := e.(event.CategoryCreated)
	if !ok {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID[created.Meta().AggregateID] = CategoryReadModel{
		CategoryID: created.Meta().AggregateID,
		Name:       created.Name,
		FlowType:   created.FlowType,
	}
	return nil
}

// All returns every category, ordered by flow type then name.
func (p *Categories) All() []CategoryReadModel {
	p.mu.RLock()
	defer p.mu.RUnlock()

	models := make([]CategoryReadModel, 0, len(p.byID))
	for _, model := range p.byID {
		models = append(models, model)
	}
	sort.Slice(models, func(i, j int) bool {
		if models[i].FlowType != models[j].FlowType {
			return models[i].FlowType < models[j].FlowType
		}
		return models[i].Name < models[j].Name
	})
	return models
}

// Get returns the category with the given id.
func (p *Categories) Get(categoryID string) (CategoryReadModel, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	model, ok := p.byID[categoryID]
	return model, ok
}
