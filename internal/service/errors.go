// Package service holds the booking core: event creation, the status
// workflow, read paths over events and halls, and account signup/login.
// Every failure returned from this package wraps exactly one of the
// sentinels below so callers can branch with errors.Is.
package service

import "errors"

var (
	// ErrValidation reports missing or malformed input.  Nothing was
	// written to the store.
	ErrValidation = errors.New("validation failed")
	// ErrAccessDenied reports that the actor's role or ownership does not
	// permit the operation.
	ErrAccessDenied = errors.New("access denied")
	// ErrNotFound reports that a referenced event or hall is absent.
	ErrNotFound = errors.New("not found")
	// ErrStoreFailure reports a statement or transaction error.  Any open
	// transaction has been rolled back.
	ErrStoreFailure = errors.New("store failure")
	// ErrInvalidTransition reports a status change the workflow does not
	// allow from the event's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict reports a unique constraint clash, e.g. a taken username.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials reports a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
