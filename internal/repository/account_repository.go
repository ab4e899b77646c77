package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/lecture-hall-booking/internal/model"
)

// ErrAccountNotFound is returned when no account matches a lookup.
var ErrAccountNotFound = errors.New("account not found")

type AccountRepo struct{ DB *sql.DB }

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

// Create inserts an account and sets its ID.  The password must already be
// hashed.  A taken username yields ErrConflict.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) error {
	a.Username = strings.TrimSpace(a.Username)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (username, password_hash, name, email, role) VALUES (?,?,?,?,?)",
		a.Username, a.PasswordHash, a.Name, a.Email, string(a.Role))
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	return nil
}

// GetByUsername fetches an account by its login name.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	var a model.Account
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,name,email,role,created_at FROM accounts WHERE username=? LIMIT 1",
		strings.TrimSpace(username)).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.Email, &role, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	a.Role = model.Role(role)
	return &a, nil
}

// UpdatePasswordHash replaces the stored hash of an account.
func (r *AccountRepo) UpdatePasswordHash(ctx context.Context, id uint64, hash string) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE accounts SET password_hash=? WHERE id=?", hash, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAccountNotFound
	}
	return nil
}
