package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/vjayanthr/freelance-tracker-hub/auth"
	"github.com/vjayanthr/freelance-tracker-hub/httpx"
	"github.com/vjayanthr/freelance-tracker-hub/internal/handlers"
	"github.com/vjayanthr/freelance-tracker-hub/internal/models"
	"github.com/vjayanthr/freelance-tracker-hub/internal/services"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Configure a user verifier so RequireAuth can ensure the user still exists.
	auth.SetUserVerifier(func(ctx context.Context, uid string) bool {
		var count int64
		if err := db.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Limit(1).Count(&count).Error; err != nil {
			return false
		}
		return count > 0
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Auth endpoints
	handlers.NewAuthHandler(db).Register(mux)

	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}
	crud := func(list, create http.HandlerFunc) http.Handler {
		return protect(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				list(w, r)
			case http.MethodPost:
				create(w, r)
			default:
				w.Header().Set("Allow", "GET,POST")
				httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
			}
		})
	}
	post := func(h http.HandlerFunc) http.Handler {
		return protect(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.Header().Set("Allow", "POST")
				httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
				return
			}
			h(w, r)
		})
	}

	// Client endpoints
	ch := handlers.NewClientHandler(db)
	mux.Handle("/clients", crud(ch.List, ch.Create))
	mux.Handle("/clients/update", post(ch.Update))
	mux.Handle("/clients/delete", post(ch.Delete))

	// Project endpoints
	ph := handlers.NewProjectHandler(db)
	mux.Handle("/projects", crud(ph.List, ph.Create))
	mux.Handle("/projects/update", post(ph.Update))
	mux.Handle("/projects/delete", post(ph.Delete))
	mux.Handle("/projects/financials", protect(ph.Financials))

	// Time entry endpoints
	eh := handlers.NewTimeEntryHandler(services.NewEntryService(db))
	mux.Handle("/entries", crud(eh.List, eh.Create))
	mux.Handle("/entries/status", post(eh.UpdateStatus))
	mux.Handle("/entries/delete", post(eh.Delete))

	// Timer endpoints
	th := handlers.NewTimerHandler(services.NewTimerService(db))
	mux.Handle("/timers", protect(th.List))
	mux.Handle("/timers/start", post(th.Start))
	mux.Handle("/timers/pause", post(th.Pause))
	mux.Handle("/timers/resume", post(th.Resume))
	mux.Handle("/timers/stop", post(th.Stop))
	mux.Handle("/timers/discard", post(th.Discard))

	// Invoice endpoints
	ih := handlers.NewInvoiceHandler(db, services.NewInvoiceService(db))
	mux.Handle("/invoices", crud(ih.List, ih.Create))
	mux.Handle("/invoices/status", post(ih.UpdateStatus))
	mux.Handle("/invoices/pdf", protect(ih.PDF))

	// Dashboard metrics
	dh := handlers.NewDashboardHandler(db)
	mux.Handle("/dashboard/metrics", protect(dh.Metrics))

	return withRecover(withLogging(logger, mux))
}

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
