package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions

	"github.com/iliyamo/lecture-hall-booking/internal/model"
)

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("hall not found")

// HallRepo reads the hall directory.  Halls are seeded by migrations and
// the application never writes them.
type HallRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

const hallColumns = `code, capacity, projectors, blackboards, whiteboards, edupad`

// List returns every hall ordered by code.
func (r *HallRepo) List(ctx context.Context) ([]model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls ORDER BY code`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Hall, 0)
	for rows.Next() {
		var h model.Hall
		if err := rows.Scan(&h.Code, &h.Capacity, &h.Projectors, &h.Blackboards, &h.Whiteboards, &h.EduPad); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByCode retrieves a single hall.  It returns ErrHallNotFound when no
// row matches.
func (r *HallRepo) GetByCode(ctx context.Context, code string) (*model.Hall, error) {
	const q = `SELECT ` + hallColumns + ` FROM halls WHERE code = ?`
	var h model.Hall
	err := r.db.QueryRowContext(ctx, q, code).
		Scan(&h.Code, &h.Capacity, &h.Projectors, &h.Blackboards, &h.Whiteboards, &h.EduPad)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}
