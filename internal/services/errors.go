package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrProjectNotFound is returned when the project does not exist or belongs
	// to another account.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoBillableEntries is returned when invoice generation for an hourly
	// project finds no matching un-invoiced entries.
	ErrNoBillableEntries = errors.New("no un-invoiced time entries for project")

	// ErrPartialInvoice signals that tagging the selected entries could not
	// consume all of them (some were claimed by another invoice meanwhile).
	// The surrounding transaction is rolled back, so no orphan invoice row and
	// no double-referenced entry survive.
	ErrPartialInvoice = errors.New("invoice creation could not consume all selected entries")

	// ErrEntryInvoiced rejects deletion of an entry already consumed by an invoice.
	ErrEntryInvoiced = errors.New("time entry is attached to an invoice")

	// ErrInvalidTransition rejects a lifecycle update not in the status graph.
	ErrInvalidTransition = errors.New("invalid invoice status transition")

	// ErrTimerAlreadyRunning is returned by Start when a timer for the same
	// project is already active.
	ErrTimerAlreadyRunning = errors.New("timer is already running for this project")

	// ErrNoActiveTimer is returned by Pause/Resume when no timer exists.
	ErrNoActiveTimer = errors.New("no active timer")
)

// isUniqueViolation matches unique-index conflicts from the drivers gorm does
// not translate (sqlite "UNIQUE constraint failed", postgres "duplicate key").
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
