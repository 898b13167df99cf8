package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/vjayanthr/freelance-tracker-hub/httpx"
	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
	"github.com/vjayanthr/freelance-tracker-hub/internal/services"
	"github.com/vjayanthr/freelance-tracker-hub/pdf"
	"github.com/vjayanthr/freelance-tracker-hub/validation"
)

type InvoiceHandler struct {
	DB  *gorm.DB
	Svc *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Svc: svc}
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	var invoices []models.Invoice
	if err := h.DB.WithContext(r.Context()).Preload("Project").Preload("Project.Client").
		Where("user_id = ?", uid).Order("created_at desc").Find(&invoices).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_invoices", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": invoices, "total": len(invoices)})
}

type generateReq struct {
	ProjectID string    `json:"project_id"`
	EntryIDs  []string  `json:"entry_ids"`
	DueDate   time.Time `json:"due_date"`
}

// Create: POST /invoices – runs the generator.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("project_id", req.ProjectID, v)
	if !req.DueDate.IsZero() {
		validation.After("due_date", req.DueDate, time.Now(), v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	inv, err := h.Svc.Generate(r.Context(), uid, req.ProjectID, services.GenerateOptions{
		EntryIDs: req.EntryIDs,
		DueDate:  req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			httpx.JSONError(w, http.StatusNotFound, "project_not_found", nil)
		case errors.Is(err, services.ErrNoBillableEntries):
			httpx.JSONError(w, http.StatusBadRequest, "no_uninvoiced_entries", nil)
		case errors.Is(err, services.ErrPartialInvoice):
			httpx.JSONError(w, http.StatusConflict, "partial_invoice_creation", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// UpdateStatus: POST /invoices/status?id=...
func (h *InvoiceHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if !models.ValidInvoiceStatus(req.Status) {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		return
	}
	inv, err := h.Svc.Transition(r.Context(), uid, id, models.InvoiceStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		case errors.Is(err, services.ErrInvalidTransition):
			httpx.JSONError(w, http.StatusUnprocessableEntity, "invalid_status_transition", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_invoice", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// PDF: GET /invoices/pdf?id=... – printable document for the invoice.
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var inv models.Invoice
	if err := h.DB.WithContext(r.Context()).Preload("Project").Preload("Project.Client").
		Where("id = ? AND user_id = ?", id, uid).First(&inv).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
		return
	}
	var entries []models.TimeEntry
	if err := h.DB.WithContext(r.Context()).
		Where("invoice_id = ?", inv.ID).Order("start_time asc").Find(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_entries", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+inv.InvoiceNumber+`.pdf"`)
	if err := pdf.RenderInvoice(w, &inv, entries); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_render_pdf", nil)
	}
}

// DashboardMetrics: GET /dashboard/metrics – account-wide financial rollup
// plus simple counts, recomputed per request.
type DashboardHandler struct{ DB *gorm.DB }

func NewDashboardHandler(db *gorm.DB) *DashboardHandler { return &DashboardHandler{DB: db} }

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	var entries []models.TimeEntry
	if err := h.DB.WithContext(r.Context()).Preload("Project").Preload("Invoice").
		Where("user_id = ?", uid).Find(&entries).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_entries", nil)
		return
	}
	fin := services.ComputeFinancials(entries)
	var clientCount, projectCount, invoiceCount int64
	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Client{}, &clientCount},
		{&models.Project{}, &projectCount},
		{&models.Invoice{}, &invoiceCount},
	}
	for _, c := range counts {
		if err := h.DB.WithContext(r.Context()).Model(c.model).
			Where("user_id = ?", uid).Count(c.dst).Error; err != nil {
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_counts", nil)
			return
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"financials":      fin,
		"unpaid_invoiced": fin.UnpaidInvoiced(),
		"clients":         clientCount,
		"projects":        projectCount,
		"invoices":        invoiceCount,
	})
}
