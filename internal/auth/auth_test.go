package auth_test

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadpages/homepage-be/internal/auth"
	"github.com/acadpages/homepage-be/internal/captcha"
	"github.com/acadpages/homepage-be/internal/models"
	"github.com/acadpages/homepage-be/internal/session"
)

// fakeStore is an in-memory CredentialStore.
type fakeStore struct {
	users map[string]models.User
}

func (f *fakeStore) GetUserByUsername(username string) (models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %q not found: %w", username, sql.ErrNoRows)
	}
	return u, nil
}

func newFixture(t *testing.T) (*auth.Service, *session.Manager) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	store := &fakeStore{users: map[string]models.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: string(hash)},
	}}
	mgr := session.NewManager("test-secret", time.Hour, time.Minute)
	svc := auth.NewService(mgr, store, captcha.NewGenerator(false))
	return svc, mgr
}

func newSession(t *testing.T, mgr *session.Manager) *session.Session {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	return mgr.Ensure(w, r)
}

func TestLoginSuccessAndCaptchaReplay(t *testing.T) {
	svc, mgr := newFixture(t)
	sess := newSession(t, mgr)

	ch := svc.IssueChallenge(sess.ID)
	granted, err := svc.Login(sess.ID, "admin", "hunter22", strings.ToLower(ch.Code))
	require.NoError(t, err)
	require.NotNil(t, granted)
	assert.True(t, granted.Authenticated())
	assert.Equal(t, "admin", granted.Username)

	// Replaying the consumed captcha fails even with valid credentials.
	again := newSession(t, mgr)
	_, err = svc.Login(again.ID, "admin", "hunter22", ch.Code)
	assert.Equal(t, auth.ErrInvalidCaptcha, err)
}

func TestLoginMissingFields(t *testing.T) {
	svc, mgr := newFixture(t)
	sess := newSession(t, mgr)
	svc.IssueChallenge(sess.ID)

	for _, tc := range []struct{ username, password, code string }{
		{"", "hunter22", "AB12"},
		{"admin", "", "AB12"},
		{"admin", "hunter22", ""},
	} {
		_, err := svc.Login(sess.ID, tc.username, tc.password, tc.code)
		assert.Equal(t, auth.ErrMissingFields, err)
	}

	// Missing-field rejections never consumed the challenge.
	ch := svc.IssueChallenge(sess.ID)
	_, err := svc.Login(sess.ID, "admin", "hunter22", ch.Code)
	assert.NoError(t, err)
}

func TestLoginUnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	svc, mgr := newFixture(t)

	sess := newSession(t, mgr)
	ch := svc.IssueChallenge(sess.ID)
	_, errUnknown := svc.Login(sess.ID, "nobody", "whatever", ch.Code)

	sess2 := newSession(t, mgr)
	ch2 := svc.IssueChallenge(sess2.ID)
	_, errWrongPw := svc.Login(sess2.ID, "admin", "wrong", ch2.Code)

	assert.Equal(t, auth.ErrInvalidCredentials, errUnknown)
	assert.Equal(t, auth.ErrInvalidCredentials, errWrongPw)
}

func TestLoginConsumesChallengeOnCredentialFailure(t *testing.T) {
	svc, mgr := newFixture(t)
	sess := newSession(t, mgr)
	ch := svc.IssueChallenge(sess.ID)

	_, err := svc.Login(sess.ID, "admin", "wrong", ch.Code)
	require.Equal(t, auth.ErrInvalidCredentials, err)

	// The same challenge cannot back a second password guess.
	_, err = svc.Login(sess.ID, "admin", "hunter22", ch.Code)
	assert.Equal(t, auth.ErrInvalidCaptcha, err)
}

func TestVerifyChallengeCaseInsensitiveSingleUse(t *testing.T) {
	svc, mgr := newFixture(t)
	sess := newSession(t, mgr)

	ch := svc.IssueChallenge(sess.ID)
	assert.True(t, svc.VerifyChallenge(sess.ID, strings.ToLower(ch.Code)))
	assert.False(t, svc.VerifyChallenge(sess.ID, ch.Code), "verified once only")

	ch = svc.IssueChallenge(sess.ID)
	assert.False(t, svc.VerifyChallenge(sess.ID, "????"))
	assert.False(t, svc.VerifyChallenge(sess.ID, ch.Code), "a failed attempt still consumes")
}

func TestReissueInvalidatesPriorChallenge(t *testing.T) {
	svc, mgr := newFixture(t)
	sess := newSession(t, mgr)

	first := svc.IssueChallenge(sess.ID)
	second := svc.IssueChallenge(sess.ID)

	if first.Code != second.Code {
		assert.False(t, svc.VerifyChallenge(sess.ID, first.Code))
		// That attempt consumed the live (second) challenge too.
		assert.False(t, svc.VerifyChallenge(sess.ID, second.Code))
	}
}

func TestLogoutIdempotent(t *testing.T) {
	svc, mgr := newFixture(t)
	sess := newSession(t, mgr)
	ch := svc.IssueChallenge(sess.ID)

	granted, err := svc.Login(sess.ID, "admin", "hunter22", ch.Code)
	require.NoError(t, err)

	svc.Logout(granted.ID)
	svc.Logout(granted.ID)
	svc.Logout("never-existed")
}

func TestRequireAuth(t *testing.T) {
	svc, mgr := newFixture(t)

	var sawSession *session.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawSession, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	guarded := svc.RequireAuth(next)

	// No cookie at all.
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "unauthenticated")

	// Anonymous session: present but not authenticated.
	anonW := httptest.NewRecorder()
	mgr.Ensure(anonW, httptest.NewRequest(http.MethodGet, "/", nil))
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.AddCookie(anonW.Result().Cookies()[0])
	w = httptest.NewRecorder()
	guarded.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated session passes and lands in the context.
	sess := newSession(t, mgr)
	ch := svc.IssueChallenge(sess.ID)
	granted, err := svc.Login(sess.ID, "admin", "hunter22", ch.Code)
	require.NoError(t, err)

	cookieW := httptest.NewRecorder()
	mgr.SetCookie(cookieW, granted)
	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.AddCookie(cookieW.Result().Cookies()[0])
	w = httptest.NewRecorder()
	guarded.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sawSession)
	assert.Equal(t, "admin", sawSession.Username)
}
