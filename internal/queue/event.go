// Package queue defines message payloads exchanged over the message broker
// together with the publisher and consumer of the hall events queue.
package queue

import (
	"fmt"
	"time"
)

// Notification kinds carried on the hall events queue.
const (
	KindEventRequested     = "event.requested"
	KindEventStatusChanged = "event.status_changed"
)

// EventNotification is published after a booking request is stored or its
// status changes.  It contains enough information for downstream consumers
// to log or notify without querying the primary database.
type EventNotification struct {
	Kind       string    `json:"kind"`
	EventID    uint64    `json:"event_id"`
	EventType  string    `json:"event_type,omitempty"`
	HallCode   string    `json:"hall_code,omitempty"`
	Status     string    `json:"status"`
	DateStart  string    `json:"date_start,omitempty"`
	DateEnd    string    `json:"date_end,omitempty"`
	SlotCount  int       `json:"slot_count,omitempty"`
	ActorID    uint64    `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LogLine renders the notification as a single human friendly line.
func (n EventNotification) LogLine() string {
	ts := n.OccurredAt.UTC().Format(time.RFC3339)
	switch n.Kind {
	case KindEventRequested:
		return fmt.Sprintf("[%s] Event requested | event_id=%d | type=%q | hall=%q | dates=%s..%s | slots=%d | by=%d (%s)\n",
			ts, n.EventID, n.EventType, n.HallCode, n.DateStart, n.DateEnd, n.SlotCount, n.ActorID, n.ActorRole)
	case KindEventStatusChanged:
		return fmt.Sprintf("[%s] Event status changed | event_id=%d | status=%s | by=%d (%s)\n",
			ts, n.EventID, n.Status, n.ActorID, n.ActorRole)
	default:
		return fmt.Sprintf("[%s] %s | event_id=%d | status=%s\n", ts, n.Kind, n.EventID, n.Status)
	}
}
