package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vjayanthr/freelance-tracker-hub/httpx"
	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
	"github.com/vjayanthr/freelance-tracker-hub/internal/services"
	"github.com/vjayanthr/freelance-tracker-hub/validation"
)

type TimeEntryHandler struct {
	Svc *services.EntryService
}

func NewTimeEntryHandler(svc *services.EntryService) *TimeEntryHandler {
	return &TimeEntryHandler{Svc: svc}
}

type entryReq struct {
	ProjectID   string    `json:"project_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description"`
}

// List: GET /entries?project_id=&uninvoiced=1
func (h *TimeEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	opts := services.ListOptions{
		ProjectID:      r.URL.Query().Get("project_id"),
		OnlyUninvoiced: r.URL.Query().Get("uninvoiced") == "1",
	}
	entries, err := h.Svc.List(r.Context(), uid, opts)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_entries", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": entries, "total": len(entries)})
}

// Create: POST /entries – manual entry, duration derived from the timestamps.
func (h *TimeEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	var req entryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("project_id", req.ProjectID, v)
	if req.StartTime.IsZero() {
		v["start_time"] = "required"
	}
	if req.EndTime.IsZero() {
		v["end_time"] = "required"
	} else if !req.StartTime.IsZero() {
		validation.After("end_time", req.EndTime, req.StartTime, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	entry := models.TimeEntry{
		UserID:      uid,
		ProjectID:   req.ProjectID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.Svc.Create(r.Context(), &entry); err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			httpx.JSONError(w, http.StatusBadRequest, "project_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_entry", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// UpdateStatus: POST /entries/status?id=...
func (h *TimeEntryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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
	entry, err := h.Svc.UpdateStatus(r.Context(), uid, id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			httpx.JSONError(w, http.StatusNotFound, "entry_not_found", nil)
		case errors.Is(err, services.ErrEntryInvoiced):
			httpx.JSONError(w, http.StatusConflict, "entry_already_invoiced", nil)
		default:
			httpx.JSONError(w, http.StatusBadRequest, "invalid_status", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

// Delete: POST /entries/delete?id=... – refused once the entry is invoiced.
func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			httpx.JSONError(w, http.StatusNotFound, "entry_not_found", nil)
		case errors.Is(err, services.ErrEntryInvoiced):
			httpx.JSONError(w, http.StatusConflict, "entry_already_invoiced", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_entry", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
