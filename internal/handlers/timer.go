package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vjayanthr/freelance-tracker-hub/httpx"
	"github.com/vjayanthr/freelance-tracker-hub/internal/services"
	"github.com/vjayanthr/freelance-tracker-hub/validation"
)

type TimerHandler struct {
	Svc *services.TimerService
}

func NewTimerHandler(svc *services.TimerService) *TimerHandler { return &TimerHandler{Svc: svc} }

type timerReq struct {
	ProjectID   string `json:"project_id"`
	Description string `json:"description"`
}

func (h *TimerHandler) decode(w http.ResponseWriter, r *http.Request) (timerReq, bool) {
	var req timerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return req, false
	}
	v := validation.Violations{}
	validation.Required("project_id", req.ProjectID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return req, false
	}
	return req, true
}

// List: GET /timers – running timers with live elapsed seconds.
func (h *TimerHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	timers, err := h.Svc.List(r.Context(), uid)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_timers", nil)
		return
	}
	now := time.Now()
	items := make([]map[string]any, 0, len(timers))
	for _, t := range timers {
		items = append(items, map[string]any{
			"project_id":      t.ProjectID,
			"start_time":      t.StartTime,
			"paused":          t.Paused(),
			"elapsed_seconds": int64(t.Elapsed(now).Seconds()),
			"description":     t.Description,
		})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}

// Start: POST /timers/start
func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	timer, err := h.Svc.Start(r.Context(), uid, req.ProjectID, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			httpx.JSONError(w, http.StatusBadRequest, "project_not_found", nil)
		case errors.Is(err, services.ErrTimerAlreadyRunning):
			httpx.JSONError(w, http.StatusConflict, "timer_already_running", nil)
		default:
			httpx.JSONError(w, http.StatusInternalServerError, "failed_to_start_timer", nil)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"project_id": timer.ProjectID, "start_time": timer.StartTime})
}

// Pause: POST /timers/pause
func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	timer, err := h.Svc.Pause(r.Context(), uid, req.ProjectID)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveTimer) {
			httpx.JSONError(w, http.StatusNotFound, "no_active_timer", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_pause_timer", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"project_id":      timer.ProjectID,
		"paused":          true,
		"elapsed_seconds": int64(timer.Elapsed(time.Now()).Seconds()),
	})
}

// Resume: POST /timers/resume
func (h *TimerHandler) Resume(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	timer, err := h.Svc.Resume(r.Context(), uid, req.ProjectID)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveTimer) {
			httpx.JSONError(w, http.StatusNotFound, "no_active_timer", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_resume_timer", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"project_id": timer.ProjectID, "paused": false})
}

// Stop: POST /timers/stop – emits the finished entry; stopping an idle timer
// is a no-op so double stops never duplicate entries.
func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	entry, err := h.Svc.Stop(r.Context(), uid, req.ProjectID)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_entry", nil)
		return
	}
	if entry == nil {
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "idle"})
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// Discard: POST /timers/discard
func (h *TimerHandler) Discard(w http.ResponseWriter, r *http.Request) {
	uid, ok := tenant(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Discard(r.Context(), uid, req.ProjectID); err != nil {
		if errors.Is(err, services.ErrNoActiveTimer) {
			httpx.JSONError(w, http.StatusNotFound, "no_active_timer", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_discard_timer", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "discarded"})
}
