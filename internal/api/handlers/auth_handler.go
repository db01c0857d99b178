package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/auth"
	"github.com/acadpages/homepage-be/internal/config"
	"github.com/acadpages/homepage-be/internal/session"
)

// AuthHandler handles the captcha challenge, login, logout and auth-status
// endpoints.
type AuthHandler struct {
	service  *auth.Service
	sessions *session.Manager
	mode     string
}

// NewAuthHandler creates a new AuthHandler. mode is the configured captcha
// presentation mode (image or text).
func NewAuthHandler(service *auth.Service, sessions *session.Manager, mode string) *AuthHandler {
	return &AuthHandler{service: service, sessions: sessions, mode: mode}
}

// GetCaptcha issues a fresh challenge bound to the caller's session. In
// image mode only the rendered image leaves the server; the plaintext code
// is only exposed in the explicit text fallback.
func (h *AuthHandler) GetCaptcha(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Ensure(w, r)
	ch := h.service.IssueChallenge(sess.ID)

	resp := struct {
		Mode         string  `json:"mode"`
		ImageDataURL *string `json:"image_data_url"`
		Plaintext    *string `json:"plaintext"`
	}{}

	if h.mode == config.CaptchaModeImage && len(ch.ImagePNG) > 0 {
		url := ch.DataURL()
		resp.Mode = config.CaptchaModeImage
		resp.ImageDataURL = &url
	} else {
		code := ch.Code
		resp.Mode = config.CaptchaModeText
		resp.Plaintext = &code
	}

	respondJSON(w, http.StatusOK, resp)
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Captcha  string `json:"captcha"`
}

// Login runs the login decision procedure for the caller's session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	// A caller without a session gets a fresh one, which holds no
	// challenge, so the captcha step fails for it as it should.
	sess := h.sessions.Ensure(w, r)

	granted, err := h.service.Login(sess.ID, payload.Username, payload.Password, payload.Captcha)
	if err != nil {
		respondAuthError(w, err)
		return
	}

	h.sessions.SetCookie(w, granted)
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Login successful",
		"user":    granted.Username,
	})
}

// Logout destroys the caller's session. Always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := h.sessions.FromRequest(r); ok {
		h.service.Logout(sess.ID)
	}
	h.sessions.ClearCookie(w)
	respondMessage(w, http.StatusOK, "Logout successful")
}

// AuthStatus reports whether the caller holds an authenticated session.
func (h *AuthHandler) AuthStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.FromRequest(r)
	if !ok || !sess.Authenticated() {
		respondJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}
	log.Debug().Str("username", sess.Username).Msg("Auth status check")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"username":      sess.Username,
	})
}
