package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActiveTimer is the persisted state of a running work timer. One row per
// (user, project); the row exists only while the timer runs and is deleted
// when the timer is stopped or discarded, so timers survive restarts.
type ActiveTimer struct {
	ID                 string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             string     `gorm:"type:uuid;not null;index:idx_timer_user_project,unique" json:"user_id"`
	ProjectID          string     `gorm:"type:uuid;not null;index:idx_timer_user_project,unique" json:"project_id"`
	StartTime          time.Time  `json:"start_time"`
	PausedAt           *time.Time `json:"paused_at"`
	TotalPausedSeconds int64      `json:"total_paused_seconds"`
	Description        string     `json:"description"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (t *ActiveTimer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Paused reports whether the timer is currently paused.
func (t *ActiveTimer) Paused() bool { return t.PausedAt != nil }

// Elapsed returns the worked duration at instant now, excluding paused time.
func (t *ActiveTimer) Elapsed(now time.Time) time.Duration {
	total := now.Sub(t.StartTime)
	paused := time.Duration(t.TotalPausedSeconds) * time.Second
	if t.PausedAt != nil {
		paused += now.Sub(*t.PausedAt)
	}
	if total < paused {
		return 0
	}
	return total - paused
}

// Pause freezes the elapsed display time. No-op when already paused.
func (t *ActiveTimer) Pause(now time.Time) {
	if t.PausedAt == nil {
		t.PausedAt = &now
	}
}

// Resume accumulates the finished pause interval. No-op when running.
func (t *ActiveTimer) Resume(now time.Time) {
	if t.PausedAt != nil {
		t.TotalPausedSeconds += int64(now.Sub(*t.PausedAt).Seconds())
		t.PausedAt = nil
	}
}

// ToTimeEntry finalizes the timer at instant now into a pending TimeEntry.
// Pauses only freeze the elapsed display; the recorded duration is the whole
// start-to-stop interval, floored to seconds, so Duration always equals
// EndTime-StartTime.
func (t *ActiveTimer) ToTimeEntry(now time.Time) *TimeEntry {
	return &TimeEntry{
		UserID:      t.UserID,
		ProjectID:   t.ProjectID,
		StartTime:   t.StartTime,
		EndTime:     now,
		Duration:    int64(now.Sub(t.StartTime).Seconds()),
		Description: t.Description,
		Status:      EntryStatusPending,
	}
}
