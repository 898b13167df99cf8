package handlers

import (
	"net/http"
	"os"

	"github.com/vjayanthr/freelance-tracker-hub/auth"
	"github.com/vjayanthr/freelance-tracker-hub/httpx"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// tenant extracts the authenticated account id, writing a 401 when absent.
// Every data operation requires this key; there is no ambient fallback.
func tenant(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return "", false
	}
	return uid, true
}
