package model

import (
	"strings"
	"time"
)

// Role classifies an account.  The set is closed; unknown values are
// rejected when parsed.
type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleProfessor Role = "PROFESSOR"
	RoleStaff     Role = "STAFF"
	RoleAdmin     Role = "ADMIN"
)

// Roles returns every known role.
func Roles() []Role {
	return []Role{RoleStudent, RoleProfessor, RoleStaff, RoleAdmin}
}

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Roles() {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Elevated reports whether the role may run privileged workflow and
// query operations.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleStaff
}

// SelfRegistrable reports whether an account with this role may be
// created through the public signup endpoint.
func (r Role) SelfRegistrable() bool {
	return r == RoleStudent || r == RoleProfessor
}

// Account mirrors a row of the `accounts` table.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hash of the password.
//  Name         – display name.
//  Email        – contact address.
//  Role         – account classification.
//  CreatedAt    – creation timestamp.
type Account struct {
	ID           uint64    // accounts.id
	Username     string    // accounts.username
	PasswordHash string    // accounts.password_hash
	Name         string    // accounts.name
	Email        string    // accounts.email
	Role         Role      // accounts.role
	CreatedAt    time.Time // accounts.created_at
}

// Actor is the authenticated identity a request runs as.  It is built by
// the identity middleware from a verified access token.
type Actor struct {
	ID   uint64
	Role Role
}
