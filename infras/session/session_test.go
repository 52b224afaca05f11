package session_test

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"ruang/config"
	"ruang/infras/session"
	"ruang/shared/constant"
)

func newManager() session.Manager {
	cfg := &config.Config{}
	cfg.Session.CookieName = "session"
	cfg.Session.MaxAgeDays = 7

	return session.New(cfg)
}

func TestIssueAndDecode(t *testing.T) {
	manager := newManager()

	cookie := manager.Issue("admin@example.com", constant.RoleAdmin)

	if cookie.Name != "session" {
		t.Errorf("expected cookie name session, got %s", cookie.Name)
	}

	if !cookie.HttpOnly {
		t.Error("expected cookie to be httpOnly")
	}

	if cookie.MaxAge != 7*24*60*60 {
		t.Errorf("expected 7-day max-age, got %d", cookie.MaxAge)
	}

	sess, err := manager.Decode(cookie.Value)
	if err != nil {
		t.Fatalf("unexpected error decoding issued cookie: %v", err)
	}

	if sess.Email != "admin@example.com" {
		t.Errorf("expected email admin@example.com, got %s", sess.Email)
	}

	if sess.Role != constant.RoleAdmin {
		t.Errorf("expected role admin, got %s", sess.Role)
	}

	if sess.Timestamp == 0 {
		t.Error("expected issuance timestamp to be set")
	}
}

func TestDecodeMalformed(t *testing.T) {
	manager := newManager()

	tests := []struct {
		name  string
		value string
	}{
		{
			name:  "not base64",
			value: "%%%not-base64%%%",
		},
		{
			name:  "not json",
			value: base64.RawURLEncoding.EncodeToString([]byte("plain text")),
		},
		{
			name:  "missing role",
			value: base64.RawURLEncoding.EncodeToString([]byte(`{"email":"a@b.c"}`)),
		},
		{
			name:  "missing email",
			value: base64.RawURLEncoding.EncodeToString([]byte(`{"role":"admin"}`)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := manager.Decode(tt.value); err == nil {
				t.Errorf("expected error decoding %q", tt.value)
			}
		})
	}
}

func TestFromRequest(t *testing.T) {
	manager := newManager()

	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	if _, err := manager.FromRequest(r); err == nil {
		t.Error("expected error when no cookie is present")
	}

	r.AddCookie(manager.Issue("user@example.com", constant.RoleUser))

	sess, err := manager.FromRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sess.Email != "user@example.com" || sess.Role != constant.RoleUser {
		t.Errorf("unexpected session %+v", sess)
	}
}

func TestClear(t *testing.T) {
	manager := newManager()

	cookie := manager.Clear()
	if cookie.MaxAge != -1 {
		t.Errorf("expected max-age -1, got %d", cookie.MaxAge)
	}

	if cookie.Value != "" {
		t.Errorf("expected empty value, got %s", cookie.Value)
	}
}
