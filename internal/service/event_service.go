package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/lecture-hall-booking/internal/clock"
	"github.com/iliyamo/lecture-hall-booking/internal/model"
	"github.com/iliyamo/lecture-hall-booking/internal/queue"
	"github.com/iliyamo/lecture-hall-booking/internal/repository"
)

// slotInsertLimit bounds the number of slot inserts in flight at once.
const slotInsertLimit = 4

// SlotInput is one requested time slot.  Day is YYYY-MM-DD; Start and End
// are HH:MM or HH:MM:SS.
type SlotInput struct {
	Day   string `json:"day" validate:"required"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// CreateEventInput is a booking request as received from the caller.
type CreateEventInput struct {
	Type      string      `json:"type" validate:"required"`
	HallCode  string      `json:"hallCode" validate:"required"`
	DateStart string      `json:"dateStart" validate:"required"`
	DateEnd   string      `json:"dateEnd" validate:"required"`
	Slots     []SlotInput `json:"timeSlots" validate:"required,min=1,dive"`
}

// StatusResult is returned by CreateEvent and SetStatus.
type StatusResult struct {
	EventID uint64            `json:"eventId"`
	Status  model.EventStatus `json:"status"`
}

type EventService struct {
	events   *repository.EventRepo
	halls    *repository.HallRepo
	notifier Notifier
	clock    clock.Clock
	logger   *zap.Logger
}

func NewEventService(events *repository.EventRepo, halls *repository.HallRepo, notifier Notifier, clk clock.Clock, logger *zap.Logger) *EventService {
	return &EventService{events: events, halls: halls, notifier: notifier, clock: clk, logger: logger}
}

// CreateEvent validates a booking request and stores the event, its
// ownership link and every slot in one transaction.  The event starts
// PENDING.  Nothing is written when validation fails or the hall is
// unknown; any store error rolls the whole transaction back.
func (s *EventService) CreateEvent(ctx context.Context, actor model.Actor, in CreateEventInput) (*StatusResult, error) {
	ev, slots, err := s.buildEvent(in)
	if err != nil {
		return nil, err
	}

	if _, err := s.halls.GetByCode(ctx, ev.HallCode); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return nil, fmt.Errorf("%w: hall %q", ErrNotFound, ev.HallCode)
		}
		return nil, s.storeFailure("lookup hall", err)
	}

	tx, err := s.events.BeginTx(ctx)
	if err != nil {
		return nil, s.storeFailure("begin transaction", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.events.CreateTx(ctx, tx, ev); err != nil {
		return nil, s.storeFailure("insert event", err)
	}
	if err := s.events.AddOwnerTx(ctx, tx, ev.ID, actor.ID); err != nil {
		return nil, s.storeFailure("insert ownership", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(slotInsertLimit)
	for i := range slots {
		slot := &slots[i]
		slot.EventID = ev.ID
		g.Go(func() error {
			return s.events.AddSlotTx(gctx, tx, slot)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.storeFailure("insert slots", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, s.storeFailure("commit", err)
	}
	committed = true

	s.logger.Info("event requested",
		zap.Uint64("event_id", ev.ID),
		zap.String("hall", ev.HallCode),
		zap.Uint64("account_id", actor.ID),
		zap.Int("slots", len(slots)))
	s.notify(ctx, queue.EventNotification{
		Kind:      queue.KindEventRequested,
		EventID:   ev.ID,
		EventType: ev.Type,
		HallCode:  ev.HallCode,
		Status:    string(ev.Status),
		DateStart: ev.DateStart.String(),
		DateEnd:   ev.DateEnd.String(),
		SlotCount: len(slots),
		ActorID:   actor.ID,
		ActorRole: string(actor.Role),
	})

	return &StatusResult{EventID: ev.ID, Status: ev.Status}, nil
}

// buildEvent checks a request against the booking rules and converts it to
// rows ready for insertion.
func (s *EventService) buildEvent(in CreateEventInput) (*model.Event, []model.TimeSlot, error) {
	typ := strings.TrimSpace(in.Type)
	hall := strings.TrimSpace(in.HallCode)
	if typ == "" || hall == "" || strings.TrimSpace(in.DateStart) == "" || strings.TrimSpace(in.DateEnd) == "" {
		return nil, nil, fmt.Errorf("%w: type, hallCode, dateStart and dateEnd are required", ErrValidation)
	}
	if len(in.Slots) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one time slot is required", ErrValidation)
	}
	start, err := model.ParseDate(in.DateStart)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dateStart must be YYYY-MM-DD", ErrValidation)
	}
	end, err := model.ParseDate(in.DateEnd)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dateEnd must be YYYY-MM-DD", ErrValidation)
	}
	if start.Before(clock.Today(s.clock)) {
		return nil, nil, fmt.Errorf("%w: dateStart is in the past", ErrValidation)
	}
	if end.Before(start.Time) {
		return nil, nil, fmt.Errorf("%w: dateEnd is before dateStart", ErrValidation)
	}

	slots := make([]model.TimeSlot, 0, len(in.Slots))
	for i, sl := range in.Slots {
		d, err := model.ParseDate(sl.Day)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: slot %d: day must be YYYY-MM-DD", ErrValidation, i)
		}
		if d.Before(start.Time) || d.After(end.Time) {
			return nil, nil, fmt.Errorf("%w: slot %d: day %s is outside the event dates", ErrValidation, i, d)
		}
		from, fromSec, err := parseClock(sl.Start)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: slot %d: start must be HH:MM", ErrValidation, i)
		}
		to, toSec, err := parseClock(sl.End)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: slot %d: end must be HH:MM", ErrValidation, i)
		}
		if fromSec >= toSec {
			return nil, nil, fmt.Errorf("%w: slot %d: start must be before end", ErrValidation, i)
		}
		slots = append(slots, model.TimeSlot{
			Day:       d,
			DayOfWeek: d.Weekday().String(),
			Start:     from,
			End:       to,
		})
	}

	ev := &model.Event{
		Type:      typ,
		HallCode:  hall,
		Status:    model.StatusPending,
		DateStart: start,
		DateEnd:   end,
	}
	return ev, slots, nil
}

// parseClock accepts HH:MM or HH:MM:SS and returns the HH:MM:SS form with
// the number of seconds since midnight.
func parseClock(s string) (string, int, error) {
	s = strings.TrimSpace(s)
	var t time.Time
	var err error
	if strings.Count(s, ":") == 1 {
		t, err = time.Parse("15:04", s)
	} else {
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return "", 0, err
	}
	return t.Format("15:04:05"), t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// SetStatus moves an event to a new status.  Only elevated actors may call
// it; the role is checked before the status value and before the store is
// touched.  The move is a
// single conditional update, so a concurrent change cannot slip an illegal
// transition through.  Hall availability is not re-checked.
func (s *EventService) SetStatus(ctx context.Context, actor model.Actor, eventID uint64, status string) (*StatusResult, error) {
	if !actor.Role.Elevated() {
		return nil, fmt.Errorf("%w: role %s cannot change event status", ErrAccessDenied, actor.Role)
	}
	to, ok := model.ParseEventStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: status must be PENDING, CONFIRMED or CANCELLED", ErrValidation)
	}

	changed, err := s.events.UpdateStatus(ctx, eventID, to, model.AllowedFrom(to))
	if err != nil {
		return nil, s.storeFailure("update status", err)
	}
	if !changed {
		cur, err := s.events.GetStatus(ctx, eventID)
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
		}
		if err != nil {
			return nil, s.storeFailure("read status", err)
		}
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, cur, to)
	}

	s.logger.Info("event status changed",
		zap.Uint64("event_id", eventID),
		zap.String("status", string(to)),
		zap.Uint64("actor_id", actor.ID))
	s.notify(ctx, queue.EventNotification{
		Kind:      queue.KindEventStatusChanged,
		EventID:   eventID,
		Status:    string(to),
		ActorID:   actor.ID,
		ActorRole: string(actor.Role),
	})
	return &StatusResult{EventID: eventID, Status: to}, nil
}

// UserEvents lists the actor's own events, newest start date first.
func (s *EventService) UserEvents(ctx context.Context, actor model.Actor) ([]repository.EventSummary, error) {
	out, err := s.events.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, s.storeFailure("list user events", err)
	}
	return out, nil
}

// AllEvents lists every event.  Elevated actors only.
func (s *EventService) AllEvents(ctx context.Context, actor model.Actor) ([]repository.EventSummary, error) {
	if !actor.Role.Elevated() {
		return nil, fmt.Errorf("%w: role %s cannot list all events", ErrAccessDenied, actor.Role)
	}
	out, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, s.storeFailure("list events", err)
	}
	return out, nil
}

// EventsByStatus lists the events in one status.  Elevated actors only.
func (s *EventService) EventsByStatus(ctx context.Context, actor model.Actor, status string) ([]repository.EventSummary, error) {
	if !actor.Role.Elevated() {
		return nil, fmt.Errorf("%w: role %s cannot list events by status", ErrAccessDenied, actor.Role)
	}
	st, ok := model.ParseEventStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	out, err := s.events.ListByStatus(ctx, st)
	if err != nil {
		return nil, s.storeFailure("list events by status", err)
	}
	return out, nil
}

// EventByID returns one event with its hall and slots.  The owner and
// elevated actors may read it.  Other actors get ErrAccessDenied whether or
// not the event exists.
func (s *EventService) EventByID(ctx context.Context, actor model.Actor, eventID uint64) (*repository.EventDetail, error) {
	d, err := s.events.GetDetail(ctx, eventID)
	if errors.Is(err, repository.ErrEventNotFound) {
		if actor.Role.Elevated() {
			return nil, fmt.Errorf("%w: event %d", ErrNotFound, eventID)
		}
		return nil, fmt.Errorf("%w: event %d", ErrAccessDenied, eventID)
	}
	if err != nil {
		return nil, s.storeFailure("get event", err)
	}
	if d.RequesterID != actor.ID && !actor.Role.Elevated() {
		return nil, fmt.Errorf("%w: event %d", ErrAccessDenied, eventID)
	}
	return d, nil
}

// ConfirmedEvents is the calendar feed: confirmed events, earliest first.
func (s *EventService) ConfirmedEvents(ctx context.Context) ([]repository.EventSummary, error) {
	out, err := s.events.ListConfirmed(ctx)
	if err != nil {
		return nil, s.storeFailure("list confirmed events", err)
	}
	return out, nil
}

func (s *EventService) notify(ctx context.Context, n queue.EventNotification) {
	n.OccurredAt = s.clock.Now()
	if err := s.notifier.Publish(ctx, n); err != nil {
		s.logger.Warn("notification not published", zap.String("kind", n.Kind), zap.Uint64("event_id", n.EventID), zap.Error(err))
	}
}

func (s *EventService) storeFailure(op string, err error) error {
	s.logger.Error("store failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %w", ErrStoreFailure, op, err)
}
