package services

import (
	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
)

// Financials are the per-project (or account-wide) money rollups derived from
// time entries. They are recomputed on demand from stored state and never
// persisted.
type Financials struct {
	TotalBilled      float64 `json:"total_billed"`
	TotalPaid        float64 `json:"total_paid"`
	TotalInvoiced    float64 `json:"total_invoiced"`
	TotalNotInvoiced float64 `json:"total_not_invoiced"`
}

// UnpaidInvoiced is the invoiced-but-unpaid remainder shown on dashboards.
func (f Financials) UnpaidInvoiced() float64 { return f.TotalInvoiced - f.TotalPaid }

// ComputeFinancials buckets every entry into exactly one of three mutually
// exclusive cases: consumed by a paid invoice, consumed by any other invoice,
// or not invoiced at all. Entries expect Project (for the rate) and Invoice
// (for the status) preloaded; missing joins simply contribute zero. The
// function is pure: TotalPaid <= TotalInvoiced <= TotalBilled always holds,
// and TotalBilled + TotalNotInvoiced equals the sum of billable amounts.
func ComputeFinancials(entries []models.TimeEntry) Financials {
	var f Financials
	for _, e := range entries {
		amount := e.BillableAmount()
		switch {
		case e.InvoiceID != nil && e.Invoice != nil && e.Invoice.Status == models.InvoiceStatusPaid:
			f.TotalPaid += amount
			f.TotalBilled += amount
			f.TotalInvoiced += amount
		case e.InvoiceID != nil:
			f.TotalInvoiced += amount
			f.TotalBilled += amount
		default:
			f.TotalNotInvoiced += amount
		}
	}
	return f
}
