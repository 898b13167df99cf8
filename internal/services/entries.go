package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
)

// EntryService covers manual time-entry bookkeeping outside the timer path.
type EntryService struct {
	DB *gorm.DB
}

func NewEntryService(db *gorm.DB) *EntryService { return &EntryService{DB: db} }

// Create persists a manually logged interval. Duration is always recomputed
// from the timestamps so the stored value cannot drift from end-start.
func (s *EntryService) Create(ctx context.Context, entry *models.TimeEntry) error {
	var project models.Project
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", entry.ProjectID, entry.UserID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("load project: %w", err)
	}
	entry.Duration = int64(entry.EndTime.Sub(entry.StartTime).Seconds())
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("save time entry: %w", err)
	}
	return nil
}

// Delete removes an entry, refusing once it has been consumed by an invoice.
func (s *EntryService) Delete(ctx context.Context, userID, entryID string) error {
	var entry models.TimeEntry
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return err
	}
	if entry.Invoiced() {
		return ErrEntryInvoiced
	}
	return s.DB.WithContext(ctx).Delete(&models.TimeEntry{}, "id = ?", entry.ID).Error
}

// ListOptions filter entry listings.
type ListOptions struct {
	ProjectID      string
	OnlyUninvoiced bool
}

// List returns the account's entries newest first, with Project->Client and
// Invoice joined for display and aggregation.
func (s *EntryService) List(ctx context.Context, userID string, opts ListOptions) ([]models.TimeEntry, error) {
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if opts.ProjectID != "" {
		q = q.Where("project_id = ?", opts.ProjectID)
	}
	if opts.OnlyUninvoiced {
		q = q.Where("invoice_id IS NULL")
	}
	var entries []models.TimeEntry
	if err := q.Preload("Project").Preload("Project.Client").Preload("Invoice").
		Order("start_time desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return entries, nil
}

// UpdateStatus moves an entry between review states. The invoiced status is
// owned by invoice generation and cannot be set by hand.
func (s *EntryService) UpdateStatus(ctx context.Context, userID, entryID, status string) (*models.TimeEntry, error) {
	if !models.ValidEntryStatus(status) || status == models.EntryStatusInvoiced {
		return nil, fmt.Errorf("invalid entry status %q", status)
	}
	var entry models.TimeEntry
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return nil, err
	}
	if entry.Invoiced() {
		return nil, ErrEntryInvoiced
	}
	if err := s.DB.WithContext(ctx).Model(&entry).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	entry.Status = status
	return &entry, nil
}
