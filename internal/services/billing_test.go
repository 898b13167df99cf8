package services

import (
	"math"
	"testing"

	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
)

func hourlyProject(rate float64) models.Project {
	return models.Project{PricingType: models.PricingHourly, Rate: rate}
}

func entryWith(project models.Project, duration int64, invoiceStatus models.InvoiceStatus, invoiced bool) models.TimeEntry {
	e := models.TimeEntry{Duration: duration, Project: project}
	if invoiced {
		id := "inv-1"
		e.InvoiceID = &id
		e.Invoice = &models.Invoice{ID: id, Status: invoiceStatus}
	}
	return e
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestComputeFinancialsEmpty(t *testing.T) {
	f := ComputeFinancials(nil)
	if f.TotalBilled != 0 || f.TotalPaid != 0 || f.TotalInvoiced != 0 || f.TotalNotInvoiced != 0 {
		t.Fatalf("expected all zeros, got %+v", f)
	}
}

func TestComputeFinancialsBuckets(t *testing.T) {
	p := hourlyProject(50)
	entries := []models.TimeEntry{
		entryWith(p, 3600, models.InvoiceStatusPaid, true),  // 50 paid
		entryWith(p, 7200, models.InvoiceStatusSent, true),  // 100 invoiced, unpaid
		entryWith(p, 1800, models.InvoiceStatusDraft, true), // 25 invoiced, unpaid
		entryWith(p, 3600, "", false),                       // 50 not invoiced
	}
	f := ComputeFinancials(entries)
	if !almostEqual(f.TotalPaid, 50) {
		t.Fatalf("paid: want 50, got %v", f.TotalPaid)
	}
	if !almostEqual(f.TotalInvoiced, 175) {
		t.Fatalf("invoiced: want 175, got %v", f.TotalInvoiced)
	}
	if !almostEqual(f.TotalBilled, 175) {
		t.Fatalf("billed: want 175, got %v", f.TotalBilled)
	}
	if !almostEqual(f.TotalNotInvoiced, 50) {
		t.Fatalf("not invoiced: want 50, got %v", f.TotalNotInvoiced)
	}
	if !almostEqual(f.UnpaidInvoiced(), 125) {
		t.Fatalf("unpaid invoiced: want 125, got %v", f.UnpaidInvoiced())
	}
}

// Each entry lands in exactly one bucket, so the ordering
// paid <= invoiced <= billed holds and billed + notInvoiced covers everything.
func TestComputeFinancialsInvariants(t *testing.T) {
	p := hourlyProject(80)
	cases := [][]models.TimeEntry{
		nil,
		{entryWith(p, 600, models.InvoiceStatusPaid, true)},
		{
			entryWith(p, 600, models.InvoiceStatusPaid, true),
			entryWith(p, 1234, models.InvoiceStatusOverdue, true),
			entryWith(p, 5000, "", false),
			entryWith(p, 99, models.InvoiceStatusCancelled, true),
		},
	}
	for i, entries := range cases {
		f := ComputeFinancials(entries)
		if f.TotalPaid > f.TotalInvoiced || f.TotalInvoiced > f.TotalBilled {
			t.Fatalf("case %d: ordering violated: %+v", i, f)
		}
		var sum float64
		for _, e := range entries {
			sum += e.BillableAmount()
		}
		if !almostEqual(f.TotalBilled+f.TotalNotInvoiced, sum) {
			t.Fatalf("case %d: partition violated: billed=%v notInvoiced=%v sum=%v", i, f.TotalBilled, f.TotalNotInvoiced, sum)
		}
	}
}

func TestComputeFinancialsNonHourlyExcluded(t *testing.T) {
	monthly := models.Project{PricingType: models.PricingMonthly, MonthlyRate: 2000, Rate: 100}
	fixed := models.Project{PricingType: models.PricingFixed, FixedRate: 5000, Rate: 100}
	noRate := models.Project{PricingType: models.PricingHourly}
	entries := []models.TimeEntry{
		entryWith(monthly, 3600, models.InvoiceStatusPaid, true),
		entryWith(fixed, 3600, "", false),
		entryWith(noRate, 3600, "", false),
	}
	f := ComputeFinancials(entries)
	if f.TotalBilled != 0 || f.TotalPaid != 0 || f.TotalInvoiced != 0 || f.TotalNotInvoiced != 0 {
		t.Fatalf("flat-rate and rate-less projects must contribute nothing, got %+v", f)
	}
}
