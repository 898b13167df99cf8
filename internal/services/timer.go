package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
)

// TimerService manages persisted work timers. At most one timer runs per
// (user, project); timers on different projects may run concurrently, matching
// the dashboard's multiple active timers.
type TimerService struct {
	DB *gorm.DB

	// now is swappable for tests.
	now func() time.Time
}

func NewTimerService(db *gorm.DB) *TimerService {
	return &TimerService{DB: db, now: time.Now}
}

func (s *TimerService) get(ctx context.Context, userID, projectID string) (*models.ActiveTimer, error) {
	var timer models.ActiveTimer
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).First(&timer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load timer: %w", err)
	}
	return &timer, nil
}

// Start records the start instant for the given project.
func (s *TimerService) Start(ctx context.Context, userID, projectID, description string) (*models.ActiveTimer, error) {
	var project models.Project
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	timer := models.ActiveTimer{
		UserID:      userID,
		ProjectID:   projectID,
		StartTime:   s.now(),
		Description: description,
	}
	// The unique index on (user_id, project_id) is the authority on "already
	// running"; two racing starts cannot both insert.
	if err := s.DB.WithContext(ctx).Create(&timer).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrTimerAlreadyRunning
		}
		return nil, fmt.Errorf("save timer: %w", err)
	}
	return &timer, nil
}

// Pause freezes the elapsed display without finalizing an entry.
func (s *TimerService) Pause(ctx context.Context, userID, projectID string) (*models.ActiveTimer, error) {
	timer, err := s.get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if timer == nil {
		return nil, ErrNoActiveTimer
	}
	timer.Pause(s.now())
	if err := s.DB.WithContext(ctx).Save(timer).Error; err != nil {
		return nil, fmt.Errorf("save timer: %w", err)
	}
	return timer, nil
}

// Resume continues a paused timer.
func (s *TimerService) Resume(ctx context.Context, userID, projectID string) (*models.ActiveTimer, error) {
	timer, err := s.get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if timer == nil {
		return nil, ErrNoActiveTimer
	}
	timer.Resume(s.now())
	if err := s.DB.WithContext(ctx).Save(timer).Error; err != nil {
		return nil, fmt.Errorf("save timer: %w", err)
	}
	return timer, nil
}

// Stop finalizes the interval into a pending TimeEntry and removes the timer.
// A stop with no running timer is a no-op returning nil, so a double stop
// emits at most one entry per start/stop cycle. If persisting the entry fails
// the timer row is left in place and the error returned; the caller keeps the
// chance to retry instead of silently losing the interval.
func (s *TimerService) Stop(ctx context.Context, userID, projectID string) (*models.TimeEntry, error) {
	timer, err := s.get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if timer == nil {
		return nil, nil
	}
	entry := timer.ToTimeEntry(s.now())
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("save time entry: %w", err)
		}
		if err := tx.Delete(&models.ActiveTimer{}, "id = ?", timer.ID).Error; err != nil {
			return fmt.Errorf("clear timer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Discard drops the active timer without creating an entry.
func (s *TimerService) Discard(ctx context.Context, userID, projectID string) error {
	timer, err := s.get(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if timer == nil {
		return ErrNoActiveTimer
	}
	return s.DB.WithContext(ctx).Delete(&models.ActiveTimer{}, "id = ?", timer.ID).Error
}

// List returns all running timers for the account.
func (s *TimerService) List(ctx context.Context, userID string) ([]models.ActiveTimer, error) {
	var timers []models.ActiveTimer
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).Order("start_time asc").Find(&timers).Error; err != nil {
		return nil, fmt.Errorf("list timers: %w", err)
	}
	return timers, nil
}
