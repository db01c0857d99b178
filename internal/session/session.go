package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the name of the session cookie.
const CookieName = "ahp_session"

// Session is the server-held state for one browser. A session starts
// anonymous (it can hold a captcha challenge) and is promoted to an
// authenticated one on successful login.
type Session struct {
	ID        string
	UserID    int64
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time

	// Guarded by the owning Manager's mutex.
	challenge       string
	challengeExpiry time.Time
}

// Authenticated reports whether a login has populated this session.
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != 0
}

// Manager is an in-memory, token-keyed session store. Session cookies carry
// the token plus an HMAC signature so a forged token is rejected before the
// store is consulted.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	secret     []byte
	ttl        time.Duration
	captchaTTL time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewManager creates a session Manager. ttl bounds session lifetime,
// captchaTTL bounds how long an unconsumed challenge stays verifiable.
func NewManager(secret string, ttl, captchaTTL time.Duration) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		secret:     []byte(secret),
		ttl:        ttl,
		captchaTTL: captchaTTL,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run sweeps expired sessions until Stop is called. Meant to run as a
// goroutine from main.
func (m *Manager) Run() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	defer close(m.done)
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep(time.Now())
		}
	}
}

// Stop terminates the sweep loop and waits for it to exit.
func (m *Manager) Stop() {
	close(m.stop)
	<-m.done
}

func (m *Manager) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}

// Ensure returns the request's session, creating one (and setting the
// cookie) if the request carries none.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) *Session {
	if s, ok := m.FromRequest(r); ok {
		return s
	}
	s := m.create()
	m.SetCookie(w, s)
	return s
}

// FromRequest resolves the request's cookie to a live session. A missing
// cookie, bad signature, unknown token or expired session all yield false.
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, false
	}
	id, ok := m.verifyCookieValue(cookie.Value)
	if !ok {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, id)
		return nil, false
	}
	return s, true
}

func (m *Manager) create() *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// SetChallenge stores a captcha code against the session, overwriting any
// previous unconsumed one. At most one challenge is live per session.
func (m *Manager) SetChallenge(id, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return
	}
	s.challenge = strings.ToUpper(code)
	s.challengeExpiry = time.Now().Add(m.captchaTTL)
}

// TakeChallenge atomically reads and clears the session's stored challenge.
// Whatever the outcome, a second take observes nothing: the challenge is
// single-use. An expired challenge reads as absent.
func (m *Manager) TakeChallenge(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.challenge == "" {
		return "", false
	}
	code := s.challenge
	expiry := s.challengeExpiry
	s.challenge = ""
	s.challengeExpiry = time.Time{}
	if time.Now().After(expiry) {
		return "", false
	}
	return code, true
}

// Promote replaces the session with a fresh authenticated one. The old ID
// (and any challenge stored under it) is invalidated, so a login cannot be
// pinned to a pre-auth session ID.
func (m *Manager) Promote(id string, userID int64, username string) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	m.mu.Lock()
	delete(m.sessions, id)
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Destroy removes a session. Destroying an unknown ID is a no-op, which
// makes logout idempotent.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// SetCookie writes the signed session cookie.
func (m *Manager) SetCookie(w http.ResponseWriter, s *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.cookieValue(s.ID),
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

// ClearCookie expires the session cookie on the client.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}

func (m *Manager) cookieValue(id string) string {
	return id + "." + m.sign(id)
}

func (m *Manager) verifyCookieValue(value string) (string, bool) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(m.sign(id))) {
		return "", false
	}
	return id, true
}

func (m *Manager) sign(id string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
