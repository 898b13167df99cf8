package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
	"github.com/vjayanthr/freelance-tracker-hub/internal/services"
)

func TestTimerStartStopEndpoints(t *testing.T) {
	db := setupHandlerTestDB(t)
	user, project, _ := seedBillingFixtures(t, db)
	h := NewTimerHandler(services.NewTimerService(db))
	body := `{"project_id":"` + project.ID + `"}`

	req := authedRequest(t, user.ID, http.MethodPost, "/timers/start", body)
	w := httptest.NewRecorder()
	h.Start(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	// second start on the same project conflicts
	req = authedRequest(t, user.ID, http.MethodPost, "/timers/start", body)
	w = httptest.NewRecorder()
	h.Start(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("restart: expected 409, got %d", w.Code)
	}

	req = authedRequest(t, user.ID, http.MethodPost, "/timers/stop", body)
	w = httptest.NewRecorder()
	h.Stop(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("stop: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var entry models.TimeEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry.ProjectID != project.ID {
		t.Fatalf("entry project mismatch")
	}

	// stop again: idle no-op, no extra entry
	req = authedRequest(t, user.ID, http.MethodPost, "/timers/stop", body)
	w = httptest.NewRecorder()
	h.Stop(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("idle stop: expected 200, got %d", w.Code)
	}
	var count int64
	db.Model(&models.TimeEntry{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 3 { // 2 seeded + 1 from the timer
		t.Fatalf("want 3 entries, got %d", count)
	}
}
