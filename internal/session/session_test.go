package session

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret", time.Hour, time.Minute)
}

func ensureSession(t *testing.T, m *Manager) (*Session, *http.Cookie) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Ensure(w, r)
	require.NotNil(t, s)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return s, cookies[0]
}

func TestEnsureReusesExistingSession(t *testing.T) {
	m := newTestManager()
	s, cookie := ensureSession(t, m)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)
	again := m.Ensure(httptest.NewRecorder(), r)
	assert.Equal(t, s.ID, again.ID)
}

func TestCookieTamperingRejected(t *testing.T) {
	m := newTestManager()
	_, cookie := ensureSession(t, m)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: cookie.Value + "x"})
	_, ok := m.FromRequest(r)
	assert.False(t, ok)

	// A well-formed value signed with a different key must fail too.
	other := NewManager("other-secret", time.Hour, time.Minute)
	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(&http.Cookie{Name: CookieName, Value: other.cookieValue("forged-id")})
	_, ok = m.FromRequest(r2)
	assert.False(t, ok)
}

func TestTakeChallengeSingleUse(t *testing.T) {
	m := newTestManager()
	s, _ := ensureSession(t, m)

	m.SetChallenge(s.ID, "ab12")

	code, ok := m.TakeChallenge(s.ID)
	require.True(t, ok)
	assert.Equal(t, "AB12", code, "stored code is upper-cased")

	_, ok = m.TakeChallenge(s.ID)
	assert.False(t, ok, "a challenge can only be taken once")
}

func TestSetChallengeOverwrites(t *testing.T) {
	m := newTestManager()
	s, _ := ensureSession(t, m)

	m.SetChallenge(s.ID, "AAAA")
	m.SetChallenge(s.ID, "BBBB")

	code, ok := m.TakeChallenge(s.ID)
	require.True(t, ok)
	assert.Equal(t, "BBBB", code, "a fresh issue invalidates the prior challenge")
}

func TestTakeChallengeAbsent(t *testing.T) {
	m := newTestManager()
	s, _ := ensureSession(t, m)

	_, ok := m.TakeChallenge(s.ID)
	assert.False(t, ok, "no challenge issued")

	_, ok = m.TakeChallenge("no-such-session")
	assert.False(t, ok, "unknown session")
}

func TestTakeChallengeExpired(t *testing.T) {
	m := NewManager("test-secret", time.Hour, -time.Second)
	s, _ := ensureSession(t, m)

	m.SetChallenge(s.ID, "AB12")
	_, ok := m.TakeChallenge(s.ID)
	assert.False(t, ok, "expired challenge reads as absent")

	// And the expired value is gone, not retryable.
	_, ok = m.TakeChallenge(s.ID)
	assert.False(t, ok)
}

func TestConcurrentTakeChallenge(t *testing.T) {
	m := newTestManager()
	s, _ := ensureSession(t, m)
	m.SetChallenge(s.ID, "AB12")

	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := m.TakeChallenge(s.ID); ok {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins, "exactly one racer observes the challenge")
}

func TestPromoteRotatesSessionID(t *testing.T) {
	m := newTestManager()
	s, _ := ensureSession(t, m)
	m.SetChallenge(s.ID, "AB12")

	granted := m.Promote(s.ID, 7, "admin")
	require.NotNil(t, granted)
	assert.NotEqual(t, s.ID, granted.ID)
	assert.True(t, granted.Authenticated())
	assert.Equal(t, int64(7), granted.UserID)
	assert.Equal(t, "admin", granted.Username)

	// The pre-auth session and its challenge are gone.
	_, ok := m.TakeChallenge(s.ID)
	assert.False(t, ok)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: m.cookieValue(s.ID)})
	_, ok = m.FromRequest(r)
	assert.False(t, ok)
}

func TestDestroyIsIdempotent(t *testing.T) {
	m := newTestManager()
	s, _ := ensureSession(t, m)

	m.Destroy(s.ID)
	m.Destroy(s.ID)
	m.Destroy("never-existed")

	_, ok := m.TakeChallenge(s.ID)
	assert.False(t, ok)
}

func TestSweepDropsExpiredSessions(t *testing.T) {
	m := NewManager("test-secret", time.Millisecond, time.Minute)
	s, _ := ensureSession(t, m)

	m.sweep(time.Now().Add(time.Second))

	m.mu.Lock()
	_, exists := m.sessions[s.ID]
	m.mu.Unlock()
	assert.False(t, exists)
}

func TestAuthenticatedOnNil(t *testing.T) {
	var s *Session
	assert.False(t, s.Authenticated())
	assert.False(t, (&Session{}).Authenticated())
}
