package amqp

import (
	"testing"
	"time"
)

func TestNewRecordEvent(t *testing.T) {
	before := time.Now().UTC()
	ev := NewRecordEvent(EntityIncome, ActionCreate, 42, 1)
	if ev.Entity != EntityIncome || ev.Action != ActionCreate {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.RecordID != 42 || ev.UserID != 1 {
		t.Fatalf("unexpected ids: %+v", ev)
	}
	if ev.OccurredAt.Before(before) {
		t.Fatalf("timestamp not set: %v", ev.OccurredAt)
	}
}

func TestRecordEventJSON(t *testing.T) {
	ev := NewRecordEvent(EntitySavingsGoal, ActionDelete, 7, 1)
	body, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := RecordEventFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Entity != ev.Entity || got.Action != ev.Action || got.RecordID != ev.RecordID {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, ev)
	}

	if _, err := RecordEventFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
}
