// Package pdf renders printable invoice documents.
package pdf

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
)

const dateLayout = "Jan 2, 2006"

// RenderInvoice writes a single-page PDF with the invoice number, dates,
// client and project names, the consumed time entries, and the total amount.
// Entries expects the rows already tagged with the invoice id; it is empty for
// flat-rate invoices.
func RenderInvoice(w io.Writer, inv *models.Invoice, entries []models.TimeEntry) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Invoice "+inv.InvoiceNumber, false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.Cell(0, 12, "INVOICE")
	doc.Ln(14)

	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, "Invoice number: "+inv.InvoiceNumber)
	doc.Ln(6)
	doc.Cell(0, 6, "Issue date: "+inv.IssueDate.Format(dateLayout))
	doc.Ln(6)
	doc.Cell(0, 6, "Due date: "+inv.DueDate.Format(dateLayout))
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 12)
	doc.Cell(0, 7, "Billed to")
	doc.Ln(7)
	doc.SetFont("Helvetica", "", 11)
	doc.Cell(0, 6, inv.Project.Client.Name)
	doc.Ln(6)
	if inv.Project.Client.Address != "" {
		doc.Cell(0, 6, inv.Project.Client.Address)
		doc.Ln(6)
	}
	doc.Cell(0, 6, "Project: "+inv.Project.Name)
	doc.Ln(10)

	if len(entries) > 0 {
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(50, 7, "Date", "B", 0, "L", false, 0, "")
		doc.CellFormat(90, 7, "Description", "B", 0, "L", false, 0, "")
		doc.CellFormat(30, 7, "Hours", "B", 1, "R", false, 0, "")
		doc.SetFont("Helvetica", "", 10)
		for _, e := range entries {
			desc := e.Description
			if desc == "" {
				desc = "Work session"
			}
			doc.CellFormat(50, 6, e.StartTime.Format(dateLayout), "", 0, "L", false, 0, "")
			doc.CellFormat(90, 6, desc, "", 0, "L", false, 0, "")
			doc.CellFormat(30, 6, fmt.Sprintf("%.2f", e.Hours()), "", 1, "R", false, 0, "")
		}
		doc.Ln(4)
	}

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(140, 8, "Total", "T", 0, "L", false, 0, "")
	doc.CellFormat(30, 8, fmt.Sprintf("%.2f", inv.TotalAmount), "T", 1, "R", false, 0, "")

	doc.SetY(-30)
	doc.SetFont("Helvetica", "I", 9)
	doc.Cell(0, 5, fmt.Sprintf("Status: %s", inv.Status))

	return doc.Output(w)
}
