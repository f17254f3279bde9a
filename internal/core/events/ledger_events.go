package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published by the ledger and its collaborators. Chart and
// summary views subscribe to these to stay in sync with mutations.
const (
	EventTransactionAdded   = "transaction.added"
	EventTransactionUpdated = "transaction.updated"
	EventTransactionDeleted = "transaction.deleted"
	EventCategoriesChanged  = "categories.changed"
	EventBudgetUpdated      = "budget.updated"
	EventMonthRolledOver    = "month.rolled_over"
)

func NewLedgerEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
