package projection

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankfold-dev/bankfold/internal/event"
	"github.com/bankfold-dev/bankfold/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func meta(aggregateID string, version int) event.Meta {
	return event.Meta{
		AggregateID: aggregateID,
		ID:          uuid.New(),
		Version:     version,
		Timestamp:   date(2024, 1, 1),
		PublisherID: uuid.New(),
	}
}

func imported(account, txnID, amount string, on time.Time) event.TransactionImported {
	value := dec(amount)
	return event.TransactionImported{
		Event:         meta(event.TransactionAggregateID(account, txnID), 1),
		Amount:        model.NewAmount(value, "EUR"),
		Date:          on,
		Description:   "txn " + txnID,
		AccountNumber: account,
		FlowType:      model.FlowTypeOf(value),
	}
}

func declared(account, amount string, on time.Time, version int) event.BalanceDeclared {
	return event.BalanceDeclared{
		Event:   meta(event.AccountAggregateID(account), version),
		Balance: model.NewAmount(dec(amount), "EUR"),
		Date:    on,
	}
}

func categoryCreated(id, name string, flow model.FlowType) event.CategoryCreated {
	return event.CategoryCreated{
		Event:    meta(id, 1),
		Name:     name,
		FlowType: flow,
	}
}

// permutations returns every ordering of events. Fine for the small
// fixtures used in tests.
func permutations(events []event.Event) [][]event.Event {
	if len(events) <= 1 {
		return [][]event.Event{append([]event.Event(nil), events...)}
	}
	var out [][]event.Event
	for i := range events {
		rest := make([]event.Event, 0, len(events)-1)
		rest = append(rest, events[:i]...)
		rest = append(rest, events[i+1:]...)
		for _, tail := range permutations(rest) {
			out = append(out, append([]event.Event{events[i]}, tail...))
		}
	}
	return out
}
