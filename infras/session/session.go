package session

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=./mocks/session_mock.go -package=mocks

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"ruang/config"
	"ruang/shared/constant"
	"ruang/shared/failure"
	"ruang/shared/timezone"
)

var (
	ErrNoSession        = failure.Unauthorized("Not authenticated")
	ErrMalformedSession = failure.Unauthorized("Invalid session")
)

const hoursPerDay = 24

// Session is the identity claim carried by the session cookie. It is never
// persisted server side; expiry is enforced by the cookie max-age alone.
type Session struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	Timestamp int64  `json:"timestamp"`
}

// Manager issues and parses the session cookie. The cookie value is the JSON
// payload in base64url form, since raw JSON is not a valid cookie octet
// sequence.
type Manager interface {
	Issue(email, role string) *http.Cookie
	Clear() *http.Cookie
	Decode(value string) (Session, error)
	FromRequest(r *http.Request) (Session, error)
}

type managerImpl struct {
	cfg *config.Config
}

func New(cfg *config.Config) Manager {
	return &managerImpl{cfg: cfg}
}

func (m *managerImpl) Issue(email, role string) *http.Cookie {
	payload, _ := json.Marshal(Session{
		Email:     email,
		Role:      role,
		Timestamp: timezone.Now().UnixMilli(),
	})

	return &http.Cookie{
		Name:     m.cfg.Session.CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   m.cfg.Session.MaxAgeDays * hoursPerDay * 60 * constant.MinutesToSeconds,
		HttpOnly: true,
		Secure:   m.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *managerImpl) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.Session.CookieName,
		Value:    constant.Empty,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *managerImpl) Decode(value string) (Session, error) {
	var sess Session

	payload, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return sess, ErrMalformedSession
	}

	if err := json.Unmarshal(payload, &sess); err != nil {
		return sess, ErrMalformedSession
	}

	if sess.Email == constant.Empty || sess.Role == constant.Empty {
		return sess, ErrMalformedSession
	}

	return sess, nil
}

func (m *managerImpl) FromRequest(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(m.cfg.Session.CookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}

	return m.Decode(cookie.Value)
}
