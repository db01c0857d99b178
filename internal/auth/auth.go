package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadpages/homepage-be/internal/captcha"
	"github.com/acadpages/homepage-be/internal/models"
	"github.com/acadpages/homepage-be/internal/session"
)

// Reason is a user-facing rejection. The Code is machine-stable; the Message
// is for humans. Unknown-user and wrong-password share one Reason so the
// response never reveals whether a username exists.
type Reason struct {
	Code    string
	Message string
	Status  int
}

func (r *Reason) Error() string { return r.Message }

var (
	ErrMissingFields      = &Reason{Code: "missing_fields", Message: "Username, password and captcha required", Status: http.StatusBadRequest}
	ErrInvalidCaptcha     = &Reason{Code: "invalid_captcha", Message: "Invalid captcha", Status: http.StatusBadRequest}
	ErrInvalidCredentials = &Reason{Code: "invalid_credentials", Message: "Invalid credentials", Status: http.StatusUnauthorized}
	ErrUnauthenticated    = &Reason{Code: "unauthenticated", Message: "Authentication required", Status: http.StatusUnauthorized}
)

// CredentialStore is the read-only view of admin credentials the login
// procedure needs.
type CredentialStore interface {
	GetUserByUsername(username string) (models.User, error)
}

// Service implements challenge issuance, challenge verification and the
// login decision procedure on top of the session store.
type Service struct {
	sessions *session.Manager
	users    CredentialStore
	captcha  *captcha.Generator

	// Compared against when the username does not exist, so both failure
	// paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewService creates an auth Service.
func NewService(sessions *session.Manager, users CredentialStore, gen *captcha.Generator) *Service {
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		// bcrypt only fails on invalid cost
		panic(err)
	}
	return &Service{
		sessions:  sessions,
		users:     users,
		captcha:   gen,
		dummyHash: dummy,
	}
}

// IssueChallenge generates a challenge and binds it to the session,
// replacing any prior unconsumed one.
func (s *Service) IssueChallenge(sessionID string) captcha.Challenge {
	ch := s.captcha.Generate()
	s.sessions.SetChallenge(sessionID, ch.Code)
	return ch
}

// VerifyChallenge consumes the session's stored challenge and compares it,
// case-insensitively, to the submitted value. The stored challenge is gone
// after this call regardless of the outcome.
func (s *Service) VerifyChallenge(sessionID, submitted string) bool {
	code, ok := s.sessions.TakeChallenge(sessionID)
	return ok && code == strings.ToUpper(submitted)
}

// Login runs the login decision procedure for the given session. On success
// the pre-auth session is replaced by an authenticated one, which is
// returned. On failure the returned error is a *Reason for client-caused
// rejections, or an ordinary error for infrastructure faults.
func (s *Service) Login(sessionID, username, password, submittedCaptcha string) (*session.Session, error) {
	if username == "" || password == "" || submittedCaptcha == "" {
		return nil, ErrMissingFields
	}

	// The challenge is consumed before any credential work, so a failed
	// attempt never leaves a replayable challenge behind.
	if !s.VerifyChallenge(sessionID, submittedCaptcha) {
		log.Warn().Str("username", username).Msg("Login rejected: captcha mismatch or not issued")
		return nil, ErrInvalidCaptcha
	}

	user, err := s.users.GetUserByUsername(username)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		// Unknown username: burn a comparison anyway and fail with the
		// same reason as a wrong password.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		log.Warn().Str("username", username).Msg("Login rejected: unknown username")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("Login rejected: wrong password")
		return nil, ErrInvalidCredentials
	}

	granted := s.sessions.Promote(sessionID, user.ID, user.Username)
	log.Info().Str("username", user.Username).Msg("Admin logged in")
	return granted, nil
}

// Logout destroys the session unconditionally. Logging out an already
// destroyed or never-authenticated session is a no-op.
func (s *Service) Logout(sessionID string) {
	s.sessions.Destroy(sessionID)
}

type contextKey string

// sessionKey is the context key under which RequireAuth stores the session.
const sessionKey = contextKey("session")

// FromContext returns the authenticated session placed by RequireAuth.
func FromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok
}

// RequireAuth guards mutation endpoints: the wrapped handler only runs when
// the request carries a populated authenticated session.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.sessions.FromRequest(r)
		if !ok || !sess.Authenticated() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(ErrUnauthenticated.Status)
			json.NewEncoder(w).Encode(map[string]string{
				"error": ErrUnauthenticated.Message,
				"code":  ErrUnauthenticated.Code,
			})
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
