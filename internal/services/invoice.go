package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
)

const (
	invoiceNumberPrefix   = "INV"
	invoiceNumberAttempts = 5
	defaultDueDays        = 30
)

// InvoiceService encapsulates invoice generation and lifecycle updates.
type InvoiceService struct {
	DB *gorm.DB

	// BeforeTag runs between the entry fetch and the generation transaction;
	// tests swap it in to interleave a concurrent consumer.
	BeforeTag func()
}

func NewInvoiceService(db *gorm.DB) *InvoiceService { return &InvoiceService{DB: db} }

// GenerateOptions narrow invoice generation. Zero values mean: all un-invoiced
// entries, due date 30 days after issue.
type GenerateOptions struct {
	EntryIDs []string
	DueDate  time.Time
}

// NewInvoiceNumber builds the human-readable number: fixed prefix, issue date,
// random 3-digit suffix (e.g. INV-20260901-042).
func NewInvoiceNumber(issue time.Time) string {
	return fmt.Sprintf("%s-%s-%03d", invoiceNumberPrefix, issue.Format("20060102"), rand.Intn(1000))
}

// Generate creates a draft invoice for the project and atomically tags the
// consumed entries. Hourly projects sum selected entry durations times the
// hourly rate; monthly and fixed projects bypass entry selection and bill
// their flat rate directly. The random number suffix can collide, so the
// insert is retried with a fresh suffix a bounded number of times.
func (s *InvoiceService) Generate(ctx context.Context, userID, projectID string, opts GenerateOptions) (*models.Invoice, error) {
	var project models.Project
	if err := s.DB.WithContext(ctx).Preload("Client").
		Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}

	issue := time.Now()
	due := opts.DueDate
	if due.IsZero() {
		due = issue.AddDate(0, 0, defaultDueDays)
	}

	hourly := project.PricingType == models.PricingHourly

	var entries []models.TimeEntry
	if hourly {
		q := s.DB.WithContext(ctx).
			Where("project_id = ? AND user_id = ? AND invoice_id IS NULL", projectID, userID)
		if len(opts.EntryIDs) > 0 {
			q = q.Where("id IN ?", opts.EntryIDs)
		}
		if err := q.Order("start_time asc").Find(&entries).Error; err != nil {
			return nil, fmt.Errorf("load time entries: %w", err)
		}
		if len(entries) == 0 {
			return nil, ErrNoBillableEntries
		}
	}

	var total float64
	if hourly {
		var totalSeconds int64
		for _, e := range entries {
			totalSeconds += e.Duration
		}
		total = float64(totalSeconds) / 3600 * project.HourlyRate()
	} else {
		total = project.FlatRate()
	}

	inv := models.Invoice{
		UserID:      userID,
		ProjectID:   projectID,
		IssueDate:   issue,
		DueDate:     due,
		TotalAmount: total,
		Status:      models.InvoiceStatusDraft,
	}

	if s.BeforeTag != nil {
		s.BeforeTag()
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The 3-digit suffix is random, so retry on unique-number conflicts.
		var created bool
		for attempt := 0; attempt < invoiceNumberAttempts; attempt++ {
			inv.InvoiceNumber = NewInvoiceNumber(issue)
			var count int64
			if err := tx.Model(&models.Invoice{}).Where("invoice_number = ?", inv.InvoiceNumber).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&inv).Error; err != nil {
				return err
			}
			created = true
			break
		}
		if !created {
			return fmt.Errorf("could not allocate a unique invoice number after %d attempts", invoiceNumberAttempts)
		}

		if hourly {
			ids := make([]string, 0, len(entries))
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			// The IS NULL guard keeps an entry from ever being referenced by two
			// invoices; a shortfall means someone else consumed part of the
			// selection, and the rollback removes the would-be orphan invoice.
			res := tx.Model(&models.TimeEntry{}).
				Where("id IN ? AND invoice_id IS NULL", ids).
				Updates(map[string]any{"invoice_id": inv.ID, "status": models.EntryStatusInvoiced})
			if res.Error != nil {
				return fmt.Errorf("tag entries: %w", res.Error)
			}
			if res.RowsAffected != int64(len(ids)) {
				return ErrPartialInvoice
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Transition applies one explicit lifecycle step. Only edges in the status
// graph are allowed; paid and cancelled are terminal. Overdue is never derived
// from the due date here, it must be requested like any other transition.
func (s *InvoiceService) Transition(ctx context.Context, userID, invoiceID string, to models.InvoiceStatus) (*models.Invoice, error) {
	var inv models.Invoice
	if err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", invoiceID, userID).First(&inv).Error; err != nil {
		return nil, err
	}
	if !models.CanTransition(inv.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, inv.Status, to)
	}
	if err := s.DB.WithContext(ctx).Model(&inv).Update("status", to).Error; err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	inv.Status = to
	return &inv, nil
}
