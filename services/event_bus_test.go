package services

import (
	"context"
	"testing"
	"time"

	"nutrilog/models"
)

type blockingNotifier struct {
	release chan struct{}
	done    chan string
}

func (n *blockingNotifier) PushToUser(ownerID, title, body string, data map[string]string) {
	<-n.release
	n.done <- data["recordId"]
}

func TestInsertDoesNotWaitForPush(t *testing.T) {
	push := &blockingNotifier{release: make(chan struct{}), done: make(chan string, 1)}
	bus := NewEventBus(nil, push)
	records := NewRecordService(newTestDB(t), bus)

	rec := &models.IntakeRecord{OwnerID: "u1", CapturedAt: time.Now()}
	inserted := make(chan error, 1)
	go func() { inserted <- records.Insert(context.Background(), rec) }()

	select {
	case err := <-inserted:
		if err != nil {
			close(push.release)
			t.Fatalf("Insert() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		close(push.release)
		t.Fatalf("Insert() blocked on a pending push")
	}

	close(push.release)
	bus.Wait()
	select {
	case got := <-push.done:
		if got != rec.ID {
			t.Fatalf("expected push for %s, got %s", rec.ID, got)
		}
	default:
		t.Fatalf("expected push to finish after Wait()")
	}
}

func TestEventBusSkipsPushForOtherKinds(t *testing.T) {
	events := &recordedEvents{}
	bus := NewEventBus(events, events)
	records := NewRecordService(newTestDB(t), bus)
	r := mustInsert(t, records, "u1", time.Now(), nil)

	if _, err := records.Confirm(context.Background(), "u1", r.ID); err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	bus.Wait()

	events.mu.Lock()
	defer events.mu.Unlock()
	if len(events.pushes) != 1 || len(events.events) != 2 {
		t.Fatalf("expected 2 events and 1 push, got %d events %d pushes", len(events.events), len(events.pushes))
	}
}
