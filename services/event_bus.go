package services

import (
	"log"
	"sync"
	"time"

	"nutrilog/models"
)

const (
	EventRecordCreated   = "record.created"
	EventRecordConfirmed = "record.confirmed"
	EventRecordDeleted   = "record.deleted"
)

// Broadcaster delivers a payload to every live socket of one owner.
type Broadcaster interface {
	Broadcast(ownerID string, payload any)
}

// Notifier pushes a message to an owner's registered devices.
type Notifier interface {
	PushToUser(ownerID, title, body string, data map[string]string)
}

// RecordEvent tells clients that derived totals for a day are stale.
type RecordEvent struct {
	Kind       string    `json:"kind"`
	RecordID   string    `json:"record_id"`
	CapturedAt time.Time `json:"captured_at"`
	Label      string    `json:"label"`
	Confirmed  bool      `json:"confirmed"`
}

// EventBus fans record mutations out to websockets and push. A nil bus, or
// one without sinks, drops events.
type EventBus struct {
	rt   Broadcaster
	push Notifier
	wg   sync.WaitGroup
}

func NewEventBus(rt Broadcaster, push Notifier) *EventBus {
	return &EventBus{rt: rt, push: push}
}

func (b *EventBus) RecordChanged(ownerID, kind string, rec *models.IntakeRecord) {
	if b == nil || rec == nil {
		return
	}
	ev := RecordEvent{
		Kind:       kind,
		RecordID:   rec.ID,
		CapturedAt: rec.CapturedAt,
		Label:      rec.Label,
		Confirmed:  rec.Confirmed,
	}
	if b.rt != nil {
		b.rt.Broadcast(ownerID, ev)
	}
	if b.push != nil && kind == EventRecordCreated {
		log.Printf("push estimate-ready owner=%s record=%s", ownerID, rec.ID)
		title, body := "Estimate ready", rec.Label+": review and confirm"
		data := map[string]string{"type": kind, "recordId": rec.ID}
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			b.push.PushToUser(ownerID, title, body, data)
		}()
	}
}

// Wait blocks until in-flight pushes finish.
func (b *EventBus) Wait() {
	if b == nil {
		return
	}
	b.wg.Wait()
}
