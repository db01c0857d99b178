package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadpages/homepage-be/internal/api"
	"github.com/acadpages/homepage-be/internal/auth"
	"github.com/acadpages/homepage-be/internal/captcha"
	"github.com/acadpages/homepage-be/internal/config"
	"github.com/acadpages/homepage-be/internal/database"
	"github.com/acadpages/homepage-be/internal/services"
	"github.com/acadpages/homepage-be/internal/session"
)

// newTestServer wires the full stack against a temp database, in text
// captcha mode so the challenge code round-trips through the API.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	cfg := &config.Config{
		DatabasePath:  filepath.Join(t.TempDir(), "test.db"),
		UploadDir:     t.TempDir(),
		AllowedOrigin: "http://localhost:3000",
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
		CaptchaTTL:    time.Minute,
		CaptchaMode:   config.CaptchaModeText,
	}

	db, err := database.New(cfg.DatabasePath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(db))

	userService := services.NewUserService(db)
	_, err = userService.CreateAdmin("admin", "hunter22", "")
	require.NoError(t, err)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CaptchaTTL)
	authService := auth.NewService(sessions, userService, captcha.NewGenerator(false))

	router := api.NewRouter(cfg, sessions, authService,
		services.NewProfileService(db),
		services.NewEducationService(db),
		services.NewPublicationService(db),
		services.NewProjectService(db),
		services.NewExperienceService(db),
		services.NewAwardService(db),
		services.NewFriendService(db))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}, out interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func fetchCaptcha(t *testing.T, client *http.Client, base string) string {
	t.Helper()
	var ch struct {
		Mode         string  `json:"mode"`
		ImageDataURL *string `json:"image_data_url"`
		Plaintext    *string `json:"plaintext"`
	}
	resp := doJSON(t, client, http.MethodGet, base+"/api/v1/captcha-challenge", nil, &ch)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, config.CaptchaModeText, ch.Mode)
	require.Nil(t, ch.ImageDataURL, "exactly one presentation is populated")
	require.NotNil(t, ch.Plaintext)
	return *ch.Plaintext
}

func login(t *testing.T, client *http.Client, base, username, password, code string) *http.Response {
	t.Helper()
	return doJSON(t, client, http.MethodPost, base+"/api/v1/login", map[string]string{
		"username": username,
		"password": password,
		"captcha":  code,
	}, nil)
}

func TestPublicReadsNeedNoAuth(t *testing.T) {
	srv, client := newTestServer(t)

	for _, path := range []string{
		"/api/v1/profile", "/api/v1/settings", "/api/v1/education",
		"/api/v1/publications", "/api/v1/projects", "/api/v1/experience",
		"/api/v1/awards", "/api/v1/friends",
	} {
		resp, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestMutationsRequireAuth(t *testing.T) {
	srv, client := newTestServer(t)

	var body map[string]string
	resp := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/education",
		map[string]string{"degree": "PhD", "institution": "X"}, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "unauthenticated", body["code"])
}

func TestLoginFlow(t *testing.T) {
	srv, client := newTestServer(t)

	code := fetchCaptcha(t, client, srv.URL)

	var loginBody map[string]string
	resp := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/login", map[string]string{
		"username": "admin", "password": "hunter22", "captcha": code,
	}, &loginBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", loginBody["user"])

	var status map[string]interface{}
	doJSON(t, client, http.MethodGet, srv.URL+"/api/v1/auth-status", nil, &status)
	assert.Equal(t, true, status["authenticated"])
	assert.Equal(t, "admin", status["username"])

	// The grant opens the mutation surface.
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/education",
		map[string]interface{}{"degree": "PhD", "institution": "Example University", "start_year": 2018}, nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Logout closes it again.
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/logout", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	doJSON(t, client, http.MethodGet, srv.URL+"/api/v1/auth-status", nil, &status)
	assert.Equal(t, false, status["authenticated"])

	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/education",
		map[string]string{"degree": "MSc", "institution": "X"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginReplaySameCaptchaFails(t *testing.T) {
	srv, client := newTestServer(t)

	code := fetchCaptcha(t, client, srv.URL)
	resp := login(t, client, srv.URL, "admin", "hunter22", code)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/login", map[string]string{
		"username": "admin", "password": "hunter22", "captcha": code,
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_captcha", body["code"])
}

func TestLoginFailureCodes(t *testing.T) {
	srv, client := newTestServer(t)

	// Missing fields.
	code := fetchCaptcha(t, client, srv.URL)
	var body map[string]string
	resp := doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/login", map[string]string{
		"username": "admin", "captcha": code,
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "missing_fields", body["code"])

	// Wrong captcha.
	fetchCaptcha(t, client, srv.URL)
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/login", map[string]string{
		"username": "admin", "password": "hunter22", "captcha": "????",
	}, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_captcha", body["code"])

	// Unknown user and wrong password share one reason.
	code = fetchCaptcha(t, client, srv.URL)
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/login", map[string]string{
		"username": "nobody", "password": "whatever", "captcha": code,
	}, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", body["code"])

	code = fetchCaptcha(t, client, srv.URL)
	resp = doJSON(t, client, http.MethodPost, srv.URL+"/api/v1/login", map[string]string{
		"username": "admin", "password": "wrong", "captcha": code,
	}, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "invalid_credentials", body["code"])
}

func TestCaptchaIsCaseInsensitive(t *testing.T) {
	srv, client := newTestServer(t)

	code := fetchCaptcha(t, client, srv.URL)
	resp := login(t, client, srv.URL, "admin", "hunter22", swapCase(code))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func swapCase(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'A' && r <= 'Z':
			out[i] = r + ('a' - 'A')
		case r >= 'a' && r <= 'z':
			out[i] = r - ('a' - 'A')
		}
	}
	return string(out)
}

func TestUpload(t *testing.T) {
	srv, client := newTestServer(t)

	code := fetchCaptcha(t, client, srv.URL)
	resp := login(t, client, srv.URL, "admin", "hunter22", code)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	upload := func(name string) (*http.Response, map[string]string) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/upload", &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		r, err := client.Do(req)
		require.NoError(t, err)
		defer r.Body.Close()
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		return r, body
	}

	r, body := upload("avatar.png")
	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.Contains(t, body["url"], "/uploads/")
	assert.Contains(t, body["url"], "avatar.png")

	r, body = upload("malware.exe")
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
	assert.Equal(t, "invalid_file_type", body["code"])
}
