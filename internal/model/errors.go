package model

import (
	"errors"
	"fmt"
)

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenExpired  = errors.New("token expired")

	// Entity related errors
	ErrHostNotFound       = errors.New("host not found")
	ErrCollectionNotFound = errors.New("collection not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrMessageNotFound    = errors.New("message not found")

	// Deletion lifecycle errors
	ErrUnknownTable = errors.New("table is not registered for soft deletion")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)

// ConflictError blocks a delete when live dependents would be orphaned, e.g.
// a host that still has collection records logged against its name.
type ConflictError struct {
	Table         string
	RecordID      string
	Dependent     string
	BlockingCount int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot delete %s %s: %d associated %s record(s) must be reassigned or removed first",
		e.Table, e.RecordID, e.BlockingCount, e.Dependent)
}
