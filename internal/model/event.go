package model

import (
	"strings"
	"time"
)

// EventStatus is the lifecycle state of a booking request.
type EventStatus string

const (
	StatusPending   EventStatus = "PENDING"
	StatusConfirmed EventStatus = "CONFIRMED"
	StatusCancelled EventStatus = "CANCELLED"
)

// ParseEventStatus normalizes s and reports whether it names a known status.
func ParseEventStatus(s string) (EventStatus, bool) {
	st := EventStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return st, true
	}
	return "", false
}

// transitions lists, for every target status, the states an event may be
// in for the move to be accepted.  CANCELLED is terminal and nothing goes
// back to PENDING.
var transitions = map[EventStatus][]EventStatus{
	StatusConfirmed: {StatusPending},
	StatusCancelled: {StatusPending, StatusConfirmed},
}

// AllowedFrom returns the statuses from which an event may move to s.
// The result is empty when no transition into s exists.
func AllowedFrom(s EventStatus) []EventStatus {
	return transitions[s]
}

// CanTransition reports whether an event in status from may move to to.
func CanTransition(from, to EventStatus) bool {
	for _, s := range transitions[to] {
		if s == from {
			return true
		}
	}
	return false
}

// Event is a single hall booking request.  It is created PENDING together
// with its ownership link and time slots and is never physically deleted.
//
// Fields:
//  ID        – primary key identifier.
//  Type      – free text description (lecture, exam, seminar ...).
//  HallCode  – hall being booked.
//  Status    – PENDING, CONFIRMED or CANCELLED.
//  DateStart – first calendar day of the booking.
//  DateEnd   – last calendar day of the booking.
//  CreatedAt – creation timestamp.
type Event struct {
	ID        uint64      `json:"eventId"`   // events.id
	Type      string      `json:"type"`      // events.type
	HallCode  string      `json:"hallCode"`  // events.hall_code
	Status    EventStatus `json:"status"`    // events.status
	DateStart Date        `json:"dateStart"` // events.date_start
	DateEnd   Date        `json:"dateEnd"`   // events.date_end
	CreatedAt time.Time   `json:"createdAt"` // events.created_at
}

// TimeSlot is one day/start/end occupancy window of an event.  DayOfWeek
// is derived from Day and stored alongside it.
type TimeSlot struct {
	ID        uint64 `json:"id"`        // event_slots.id
	EventID   uint64 `json:"eventId"`   // event_slots.event_id
	Day       Date   `json:"day"`       // event_slots.day
	DayOfWeek string `json:"dayOfWeek"` // event_slots.day_of_week
	Start     string `json:"start"`     // event_slots.start_time (HH:MM:SS)
	End       string `json:"end"`       // event_slots.end_time (HH:MM:SS)
}
