package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EntryStatusPending  = "pending"
	EntryStatusApproved = "approved"
	EntryStatusRejected = "rejected"
	EntryStatusInvoiced = "invoiced"
)

// TimeEntry is one recorded work interval. InvoiceID is nil until the entry is
// consumed by an invoice; it is set at most once and never cleared, and an
// entry with a non-nil InvoiceID cannot be deleted.
type TimeEntry struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ProjectID   string    `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     Project   `gorm:"foreignKey:ProjectID" json:"project"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Duration    int64     `json:"duration"` // seconds, equals EndTime-StartTime for timer-produced entries
	Description string    `json:"description"`
	InvoiceID   *string   `gorm:"type:uuid;index" json:"invoice_id"`
	Invoice     *Invoice  `gorm:"foreignKey:InvoiceID" json:"invoice"`
	Status      string    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e *TimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = EntryStatusPending
	}
	return nil
}

// Invoiced reports whether the entry has been consumed by an invoice.
func (e *TimeEntry) Invoiced() bool { return e.InvoiceID != nil }

// Hours converts the recorded duration to fractional hours.
func (e *TimeEntry) Hours() float64 { return float64(e.Duration) / 3600 }

// BillableAmount is the monetary value of the entry: duration-hours times the
// owning project's hourly rate. Zero when the project is absent or not billed
// by the hour.
func (e *TimeEntry) BillableAmount() float64 {
	rate := e.Project.HourlyRate()
	if rate <= 0 {
		return 0
	}
	return e.Hours() * rate
}

func ValidEntryStatus(s string) bool {
	switch s {
	case EntryStatusPending, EntryStatusApproved, EntryStatusRejected, EntryStatusInvoiced:
		return true
	}
	return false
}
