package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-booking-api/internal/repositories"
	"interview-booking-api/internal/repositories/repotest"
	"interview-booking-api/pkg/config"
	"interview-booking-api/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger(io.Discard, "ERROR")
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := &config.Config{Env: "test"}
	cfg.Server.TrustedProxies = []string{"127.0.0.1"}
	cfg.Server.BodyLimit = config.DefaultBodyLimit
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Server.WriteTimeout = 5 * time.Second
	cfg.Server.IdleTimeout = 5 * time.Second
	cfg.Server.ShutdownTimeout = time.Second
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expire = time.Hour
	cfg.JWT.CookieExpireDays = 30
	cfg.RateLimit.Window = config.DefaultRateLimitWindow
	cfg.RateLimit.Max = config.DefaultRateLimitMax
	cfg.RateLimit.Store = "memory"
	cfg.Throttle.RPS = 1000
	cfg.Throttle.Burst = 1000
	return cfg
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *App {
	t.Helper()
	cfg := testConfig()
	for _, fn := range mutate {
		fn(cfg)
	}

	app := &App{Config: cfg, checks: map[string]func(context.Context) error{}}
	app.initializeRateLimiter()
	app.initializeDependencies(repositorySet{
		users:     repotest.NewUsers(),
		companies: repotest.NewCompanies(),
		bookings:  repotest.NewBookings(),
		cache:     repositories.NewNoopCompanyCache(),
	})
	require.NoError(t, app.initializeRouter())
	return app
}

func call(t *testing.T, app *App, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func register(t *testing.T, app *App, email, role string) string {
	t.Helper()
	w := call(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Tester",
		"email":    email,
		"tel":      "0812345678",
		"password": "secret1",
		"role":     role,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func TestAPIDocsServesUI(t *testing.T) {
	app := newTestApp(t)

	path := "/api-docs"
	var w *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		w = call(t, app, http.MethodGet, path, nil, "")
		if w.Code != http.StatusMovedPermanently && w.Code != http.StatusFound && w.Code != http.StatusTemporaryRedirect {
			break
		}
		path = w.Header().Get("Location")
	}
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api-docs/index.html", path)
	assert.Contains(t, w.Body.String(), "swagger")

	w = call(t, app, http.MethodGet, "/api-docs/doc.json", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Library API")
	assert.Contains(t, w.Body.String(), "Job Interview Booking API")
	assert.Contains(t, w.Body.String(), "/api/v1")
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, http.StatusNotFound, call(t, app, http.MethodGet, "/api/v2/nothing", nil, "").Code)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", nil, "").Code)

	app.checks["MongoDB"] = func(context.Context) error { return errors.New("down") }
	w := call(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "MongoDB unavailable")
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	app := newTestApp(t)
	w := call(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "1000", w.Header().Get("X-RateLimit-Limit"))
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	w := call(t, app, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name": "Jane", "email": "jane@example.com", "tel": "0812345678", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["token"].(string)

	var tokenCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie)
	assert.Equal(t, token, tokenCookie.Value)
	assert.True(t, tokenCookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", me["email"])
	assert.NotContains(t, me, "password")

	w = call(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "jane@example.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "jane@example.com", "password": "nope!!"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, app, http.MethodPost, "/api/v1/auth/login", map[string]string{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, app, http.MethodGet, "/api/v1/auth/logout", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "token=none")

	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/v1/auth/me", nil, "").Code)
}

func TestFormBodiesReachHandlers(t *testing.T) {
	app := newTestApp(t)

	form := url.Values{
		"name":     {"Tester"},
		"email":    {"form@example.com"},
		"tel":      {"0812345678"},
		"password": {"secret1"},
		"role":     {"user"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode(t, w)["token"].(string)

	w = call(t, app, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "form@example.com", decode(t, w)["data"].(map[string]interface{})["email"])

	login := url.Values{"email": {"form@example.com"}, "password": {"secret1"}, "$where": {"1"}}
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(login.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestOperatorKeysNeverReachHandlers(t *testing.T) {
	app := newTestApp(t)
	admin := register(t, app, "admin@example.com", "admin")

	w := call(t, app, http.MethodPost, "/api/v1/companies", map[string]interface{}{
		"name":        "<b>Acme</b>",
		"address":     "1 Main Rd",
		"website":     "https://acme.example",
		"description": "Widgets",
		"tel":         "021234567",
		"$where":      "sleep(1000)",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	company := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Acme", company["name"])
}

func TestCompanyRoutes(t *testing.T) {
	app := newTestApp(t)
	user := register(t, app, "user@example.com", "user")
	admin := register(t, app, "admin@example.com", "admin")

	input := map[string]string{
		"name": "Acme", "address": "1 Main Rd", "website": "https://acme.example", "description": "Widgets", "tel": "021234567",
	}
	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodPost, "/api/v1/companies", input, "").Code)
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodPost, "/api/v1/companies", input, user).Code)

	w := call(t, app, http.MethodPost, "/api/v1/companies", input, admin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode(t, w)["data"].(map[string]interface{})["_id"].(string)

	w = call(t, app, http.MethodGet, "/api/v1/companies?sort=name&sort=-name", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode(t, w)
	assert.Equal(t, true, list["success"])
	assert.Equal(t, float64(1), list["count"])

	w = call(t, app, http.MethodGet, "/api/v1/companies/"+id, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/v1/companies/not-an-id", nil, "").Code)

	w = call(t, app, http.MethodPut, "/api/v1/companies/"+id, map[string]string{"address": "2 Side St"}, admin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2 Side St", decode(t, w)["data"].(map[string]interface{})["address"])

	assert.Equal(t, http.StatusBadRequest, call(t, app, http.MethodGet, "/api/v1/companies?password=x", nil, "").Code)
}

func TestBookingRoutes(t *testing.T) {
	app := newTestApp(t)
	user := register(t, app, "user@example.com", "user")
	other := register(t, app, "other@example.com", "user")
	admin := register(t, app, "admin@example.com", "admin")

	w := call(t, app, http.MethodPost, "/api/v1/companies", map[string]string{
		"name": "Acme", "address": "1 Main Rd", "website": "https://acme.example", "description": "Widgets", "tel": "021234567",
	}, admin)
	require.Equal(t, http.StatusCreated, w.Code)
	companyID := decode(t, w)["data"].(map[string]interface{})["_id"].(string)

	booking := map[string]string{"bookingDate": "2030-01-02T09:00:00Z"}
	var firstID string
	for i := 0; i < 3; i++ {
		w = call(t, app, http.MethodPost, "/api/v1/companies/"+companyID+"/bookings", booking, user)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		if firstID == "" {
			firstID = decode(t, w)["data"].(map[string]interface{})["_id"].(string)
		}
	}

	w = call(t, app, http.MethodPost, "/api/v1/bookings", map[string]string{"bookingDate": "2030-01-03T09:00:00Z", "company": companyID}, user)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BOOKING_LIMIT_REACHED")

	assert.Equal(t, http.StatusUnauthorized, call(t, app, http.MethodGet, "/api/v1/bookings", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, call(t, app, http.MethodGet, "/api/v1/bookings/"+firstID, nil, other).Code)
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/api/v1/bookings/"+firstID, nil, admin).Code)

	w = call(t, app, http.MethodGet, "/api/v1/bookings", nil, user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["count"])

	w = call(t, app, http.MethodGet, "/api/v1/companies/"+companyID+"/bookings", nil, admin)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), decode(t, w)["count"])

	w = call(t, app, http.MethodPut, "/api/v1/bookings/"+firstID, map[string]string{"bookingDate": "2030-02-01T09:00:00Z"}, user)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/v1/bookings/"+firstID, nil, user).Code)

	require.Equal(t, http.StatusOK, call(t, app, http.MethodDelete, "/api/v1/companies/"+companyID, nil, admin).Code)
	w = call(t, app, http.MethodGet, "/api/v1/bookings", nil, user)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decode(t, w)["count"])
}

func TestRateLimitAcrossRouter(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.RateLimit.Max = 2 })

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, call(t, app, http.MethodGet, "/health", nil, "").Code)
	}
	w := call(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin")+w.Header().Get("X-Request-ID"))
}

func TestRunFailsWhenBackgroundTaskFails(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.Server.Port = 0 })
	app.background("broken", func(ctx context.Context) error {
		return errors.New("boom")
	})

	err := app.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRunStopsCleanlyOnCancel(t *testing.T) {
	app := newTestApp(t, func(cfg *config.Config) { cfg.Server.Port = 0 })
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.NoError(t, app.Run(ctx))
}
