package services

import (
	"context"
	"testing"
	"time"

	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
)

func TestEntryCreateRecomputesDuration(t *testing.T) {
	db := setupTestDB(t)
	user, project := seedHourlyProject(t, db, 50)
	svc := NewEntryService(db)

	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	entry := models.TimeEntry{
		UserID:    user.ID,
		ProjectID: project.ID,
		StartTime: start,
		EndTime:   start.Add(45 * time.Minute),
		Duration:  999999, // client-supplied value is ignored
	}
	if err := svc.Create(context.Background(), &entry); err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.Duration != 45*60 {
		t.Fatalf("duration: want %d, got %d", 45*60, entry.Duration)
	}
}

func TestEntryDeleteRules(t *testing.T) {
	db := setupTestDB(t)
	user, project := seedHourlyProject(t, db, 50)
	free := seedEntry(t, db, user, project, 3600)
	locked := seedEntry(t, db, user, project, 1800)

	// consume the second entry with an invoice
	invSvc := NewInvoiceService(db)
	if _, err := invSvc.Generate(context.Background(), user.ID, project.ID, GenerateOptions{EntryIDs: []string{locked.ID}}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc := NewEntryService(db)
	if err := svc.Delete(context.Background(), user.ID, locked.ID); err != ErrEntryInvoiced {
		t.Fatalf("want ErrEntryInvoiced, got %v", err)
	}
	if err := svc.Delete(context.Background(), user.ID, free.ID); err != nil {
		t.Fatalf("delete free entry: %v", err)
	}

	// deleted entry drops out of every subsequent aggregation
	entries, err := svc.List(context.Background(), user.ID, ListOptions{ProjectID: project.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != locked.ID {
		t.Fatalf("want only the invoiced entry to remain, got %d entries", len(entries))
	}
	f := ComputeFinancials(entries)
	if f.TotalNotInvoiced != 0 {
		t.Fatalf("deleted entry still aggregated: %+v", f)
	}
}

func TestEntryListUninvoicedFilter(t *testing.T) {
	db := setupTestDB(t)
	user, project := seedHourlyProject(t, db, 50)
	seedEntry(t, db, user, project, 3600)
	consumed := seedEntry(t, db, user, project, 1800)

	invSvc := NewInvoiceService(db)
	if _, err := invSvc.Generate(context.Background(), user.ID, project.ID, GenerateOptions{EntryIDs: []string{consumed.ID}}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc := NewEntryService(db)
	entries, err := svc.List(context.Background(), user.ID, ListOptions{OnlyUninvoiced: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("want 1 un-invoiced entry, got %d", len(entries))
	}
	if entries[0].InvoiceID != nil {
		t.Fatalf("filter returned a consumed entry")
	}
}

func TestEntryStatusUpdateRules(t *testing.T) {
	db := setupTestDB(t)
	user, project := seedHourlyProject(t, db, 50)
	entry := seedEntry(t, db, user, project, 3600)
	svc := NewEntryService(db)

	updated, err := svc.UpdateStatus(context.Background(), user.ID, entry.ID, models.EntryStatusApproved)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if updated.Status != models.EntryStatusApproved {
		t.Fatalf("status: want approved, got %s", updated.Status)
	}
	// invoiced is reserved for invoice generation
	if _, err := svc.UpdateStatus(context.Background(), user.ID, entry.ID, models.EntryStatusInvoiced); err == nil {
		t.Fatalf("manual invoiced status must be rejected")
	}
}
