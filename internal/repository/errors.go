// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow the service layer to
// distinguish a missing row from a constraint failure without inspecting
// driver errors itself.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when an insert violates a unique key, such as
// registering a username that is already taken.
var ErrConflict = errors.New("conflict")

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL duplicate entry error.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
