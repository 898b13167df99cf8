package models

import "testing"

func TestInvoiceTransitionTable(t *testing.T) {
	allowed := map[[2]InvoiceStatus]bool{
		{InvoiceStatusDraft, InvoiceStatusSent}:        true,
		{InvoiceStatusDraft, InvoiceStatusCancelled}:   true,
		{InvoiceStatusSent, InvoiceStatusPaid}:         true,
		{InvoiceStatusSent, InvoiceStatusOverdue}:      true,
		{InvoiceStatusSent, InvoiceStatusCancelled}:    true,
		{InvoiceStatusOverdue, InvoiceStatusPaid}:      true,
		{InvoiceStatusOverdue, InvoiceStatusCancelled}: true,
	}
	statuses := []InvoiceStatus{
		InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]InvoiceStatus{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestPaidAndCancelledAreTerminal(t *testing.T) {
	for _, from := range []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusCancelled} {
		for _, to := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled} {
			if CanTransition(from, to) {
				t.Errorf("%s must be terminal, allowed -> %s", from, to)
			}
		}
	}
}
