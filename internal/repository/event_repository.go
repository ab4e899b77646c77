package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lecture-hall-booking/internal/model"
)

// ErrEventNotFound is returned when no event matches a lookup.
var ErrEventNotFound = errors.New("event not found")

// EventRepo provides access to events together with their ownership link
// and time slots.  Writes that must be atomic are exposed as *Tx methods
// so the caller controls the transaction.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// EventSummary is an event header annotated with its requester and a
// single line describing all of its time slots.
type EventSummary struct {
	model.Event
	RequesterID   uint64 `json:"requesterId"`
	RequesterName string `json:"requesterName"`
	TimeSlots     string `json:"timeSlots"`
}

// EventDetail is the full view of one event: header, requester, the
// static attributes of its hall and its slots ordered by day and start.
type EventDetail struct {
	model.Event
	RequesterID   uint64           `json:"requesterId"`
	RequesterName string           `json:"requesterName"`
	Hall          model.Hall       `json:"hall"`
	Slots         []model.TimeSlot `json:"timeSlots"`
}

// BookedSlot is one occupied window of a hall together with the event
// holding it.
type BookedSlot struct {
	EventID   uint64            `json:"eventId"`
	EventType string            `json:"type"`
	Status    model.EventStatus `json:"status"`
	DateStart model.Date        `json:"dateStart"`
	DateEnd   model.Date        `json:"dateEnd"`
	Day       model.Date        `json:"day"`
	DayOfWeek string            `json:"dayOfWeek"`
	Start     string            `json:"start"`
	End       string            `json:"end"`
}

// BeginTx starts a transaction on the underlying database.
func (r *EventRepo) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// CreateTx inserts the event header within the scope of an existing
// transaction and populates the generated ID.  The caller must commit or
// rollback the transaction.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
	const q = `INSERT INTO events (type, hall_code, status, date_start, date_end) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, e.Type, e.HallCode, string(e.Status), e.DateStart.String(), e.DateEnd.String())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// AddOwnerTx links an event to the account that requested it.  The
// event_owners primary key on event_id allows exactly one owner.
func (r *EventRepo) AddOwnerTx(ctx context.Context, tx *sql.Tx, eventID, accountID uint64) error {
	const q = `INSERT INTO event_owners (event_id, account_id) VALUES (?, ?)`
	_, err := tx.ExecContext(ctx, q, eventID, accountID)
	return err
}

// AddSlotTx inserts one time slot and populates its ID.  It is safe to call
// from several goroutines on the same transaction; database/sql serialises
// the statements on the transaction's connection.
func (r *EventRepo) AddSlotTx(ctx context.Context, tx *sql.Tx, s *model.TimeSlot) error {
	const q = `INSERT INTO event_slots (event_id, day, day_of_week, start_time, end_time) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, s.EventID, s.Day.String(), s.DayOfWeek, s.Start, s.End)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// UpdateStatus moves an event to status to, but only while its current
// status is one of from.  It reports whether a row was changed.  An empty
// from never matches.
func (r *EventRepo) UpdateStatus(ctx context.Context, id uint64, to model.EventStatus, from []model.EventStatus) (bool, error) {
	if len(from) == 0 {
		return false, nil
	}
	args := make([]interface{}, 0, len(from)+2)
	args = append(args, string(to), id)
	for _, s := range from {
		args = append(args, string(s))
	}
	q := `UPDATE events SET status = ? WHERE id = ? AND status IN (` + placeholders(len(from)) + `)`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetStatus returns the current status of an event or ErrEventNotFound.
func (r *EventRepo) GetStatus(ctx context.Context, id uint64) (model.EventStatus, error) {
	var st string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM events WHERE id = ?`, id).Scan(&st)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrEventNotFound
		}
		return "", err
	}
	return model.EventStatus(st), nil
}

const summarySelect = `SELECT e.id, e.type, e.hall_code, e.status, e.date_start, e.date_end, e.created_at,
                              o.account_id, a.name
                       FROM events e
                       JOIN event_owners o ON o.event_id = e.id
                       JOIN accounts a ON a.id = o.account_id`

// ListByOwner returns the events requested by an account, newest start
// date first.
func (r *EventRepo) ListByOwner(ctx context.Context, accountID uint64) ([]EventSummary, error) {
	return r.listSummaries(ctx, summarySelect+` WHERE o.account_id = ? ORDER BY e.date_start DESC, e.id DESC`, accountID)
}

// ListAll returns every event, newest start date first.
func (r *EventRepo) ListAll(ctx context.Context) ([]EventSummary, error) {
	return r.listSummaries(ctx, summarySelect+` ORDER BY e.date_start DESC, e.id DESC`)
}

// ListByStatus returns the events currently in status, newest start date
// first.
func (r *EventRepo) ListByStatus(ctx context.Context, status model.EventStatus) ([]EventSummary, error) {
	return r.listSummaries(ctx, summarySelect+` WHERE e.status = ? ORDER BY e.date_start DESC, e.id DESC`, string(status))
}

// ListConfirmed returns the calendar feed: confirmed events in ascending
// start date order.
func (r *EventRepo) ListConfirmed(ctx context.Context) ([]EventSummary, error) {
	return r.listSummaries(ctx, summarySelect+` WHERE e.status = ? ORDER BY e.date_start ASC, e.id ASC`, string(model.StatusConfirmed))
}

func (r *EventRepo) listSummaries(ctx context.Context, q string, args ...interface{}) ([]EventSummary, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EventSummary, 0)
	ids := make([]uint64, 0)
	for rows.Next() {
		var s EventSummary
		var status string
		if err := rows.Scan(&s.ID, &s.Type, &s.HallCode, &status, &s.DateStart.Time, &s.DateEnd.Time, &s.CreatedAt,
			&s.RequesterID, &s.RequesterName); err != nil {
			return nil, err
		}
		s.Status = model.EventStatus(status)
		out = append(out, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	slots, err := r.slotsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].TimeSlots = SlotSummary(slots[out[i].ID])
	}
	return out, nil
}

// GetDetail loads one event with its requester, hall and slots.  It
// returns ErrEventNotFound when the event does not exist.
func (r *EventRepo) GetDetail(ctx context.Context, id uint64) (*EventDetail, error) {
	const q = `SELECT e.id, e.type, e.hall_code, e.status, e.date_start, e.date_end, e.created_at,
                      o.account_id, a.name,
                      h.code, h.capacity, h.projectors, h.blackboards, h.whiteboards, h.edupad
               FROM events e
               JOIN event_owners o ON o.event_id = e.id
               JOIN accounts a ON a.id = o.account_id
               JOIN halls h ON h.code = e.hall_code
               WHERE e.id = ?`
	var d EventDetail
	var status string
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Type, &d.HallCode, &status, &d.DateStart.Time, &d.DateEnd.Time, &d.CreatedAt,
		&d.RequesterID, &d.RequesterName,
		&d.Hall.Code, &d.Hall.Capacity, &d.Hall.Projectors, &d.Hall.Blackboards, &d.Hall.Whiteboards, &d.Hall.EduPad,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	d.Status = model.EventStatus(status)

	slots, err := r.slotsFor(ctx, []uint64{d.ID})
	if err != nil {
		return nil, err
	}
	d.Slots = slots[d.ID]
	if d.Slots == nil {
		d.Slots = []model.TimeSlot{}
	}
	return &d, nil
}

// slotsFor loads the slots of several events in one query, grouped by
// event and ordered by day then start time.
func (r *EventRepo) slotsFor(ctx context.Context, eventIDs []uint64) (map[uint64][]model.TimeSlot, error) {
	args := make([]interface{}, len(eventIDs))
	for i, id := range eventIDs {
		args[i] = id
	}
	q := `SELECT id, event_id, day, day_of_week, start_time, end_time
          FROM event_slots
          WHERE event_id IN (` + placeholders(len(eventIDs)) + `)
          ORDER BY event_id, day, start_time`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint64][]model.TimeSlot, len(eventIDs))
	for rows.Next() {
		var s model.TimeSlot
		if err := rows.Scan(&s.ID, &s.EventID, &s.Day.Time, &s.DayOfWeek, &s.Start, &s.End); err != nil {
			return nil, err
		}
		out[s.EventID] = append(out[s.EventID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOccupiedSlots returns the slots of every non-cancelled event of a
// hall whose date range overlaps [start, end], ordered by day then start.
func (r *EventRepo) ListOccupiedSlots(ctx context.Context, hallCode string, start, end model.Date) ([]BookedSlot, error) {
	const q = `SELECT e.id, e.type, e.status, e.date_start, e.date_end,
                      s.day, s.day_of_week, s.start_time, s.end_time
               FROM events e
               JOIN event_slots s ON s.event_id = e.id
               WHERE e.hall_code = ?
                 AND e.status <> 'CANCELLED'
                 AND e.date_start <= ?
                 AND e.date_end >= ?
               ORDER BY s.day, s.start_time, e.id`
	rows, err := r.db.QueryContext(ctx, q, hallCode, end.String(), start.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BookedSlot, 0)
	for rows.Next() {
		var b BookedSlot
		var status string
		if err := rows.Scan(&b.EventID, &b.EventType, &status, &b.DateStart.Time, &b.DateEnd.Time,
			&b.Day.Time, &b.DayOfWeek, &b.Start, &b.End); err != nil {
			return nil, err
		}
		b.Status = model.EventStatus(status)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SlotSummary renders slots as "YYYY-MM-DD HH:MM:SS-HH:MM:SS" entries
// joined by ", ".  Duplicate entries are written once.  The slots must
// already be ordered.
func SlotSummary(slots []model.TimeSlot) string {
	seen := make(map[string]struct{}, len(slots))
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		p := s.Day.String() + " " + s.Start + "-" + s.End
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
