package auth

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, "4f9d3b2a-0000-0000-0000-000000000001")

	r := httptest.NewRequest("GET", "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	uid, ok := ParseSession(r)
	if !ok || uid != "4f9d3b2a-0000-0000-0000-000000000001" {
		t.Fatalf("parse: ok=%v uid=%q", ok, uid)
	}
}

func TestSessionTamperedSignature(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, "user-a")

	r := httptest.NewRequest("GET", "/", nil)
	c := w.Result().Cookies()[0]
	c.Value = "user-b" + c.Value[len("user-a"):]
	r.AddCookie(c)
	if _, ok := ParseSession(r); ok {
		t.Fatalf("tampered session must not parse")
	}
}

func TestActionTokenRoundTrip(t *testing.T) {
	token := NewActionToken("password-reset", "uid-1", time.Hour)
	uid, ok := VerifyActionToken("password-reset", token)
	if !ok || uid != "uid-1" {
		t.Fatalf("verify: ok=%v uid=%q", ok, uid)
	}
	// wrong purpose
	if _, ok := VerifyActionToken("email-confirm", token); ok {
		t.Fatalf("token must be bound to its purpose")
	}
}

func TestActionTokenExpiry(t *testing.T) {
	token := NewActionToken("password-reset", "uid-1", -time.Minute)
	if _, ok := VerifyActionToken("password-reset", token); ok {
		t.Fatalf("expired token must not verify")
	}
}
