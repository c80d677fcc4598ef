package amqp

import (
	"encoding/json"
	"time"
)

// Entities and actions carried by record events.
const (
	EntityIncome      = "income"
	EntityExpense     = "expense"
	EntitySavingsGoal = "savings_goal"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// RecordEvent announces a change to a persisted record. It is published
// after the write commits; the audit worker turns it into an audit_log row.
type RecordEvent struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	RecordID   int64     `json:"record_id"`
	UserID     int64     `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewRecordEvent creates an event stamped with the current time.
func NewRecordEvent(entity, action string, recordID, userID int64) *RecordEvent {
	return &RecordEvent{
		Entity:     entity,
		Action:     action,
		RecordID:   recordID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecordEventFromJSON creates an event from JSON bytes.
func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var ev RecordEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
