package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applicanthandler "shoptrack/internal/applicant/handler"
	applicantservice "shoptrack/internal/applicant/service"
	applicantstore "shoptrack/internal/applicant/store"
	"shoptrack/internal/auth"
	"shoptrack/internal/constants"
	notehandler "shoptrack/internal/note/handler"
	noteservice "shoptrack/internal/note/service"
	notestore "shoptrack/internal/note/store"
	"shoptrack/internal/platform/config"
	"shoptrack/internal/profile"
	profilestore "shoptrack/internal/profile/store"
	"shoptrack/internal/ratelimit"
	shophandler "shoptrack/internal/shop/handler"
	shopservice "shoptrack/internal/shop/service"
	shopstore "shoptrack/internal/shop/store"
	id "shoptrack/pkg/domain"
)

type env struct {
	router http.Handler
	jwt    *auth.JWTService
}

// newEnv wires the full stack on in-memory stores, the same shape main
// assembles for production.
func newEnv(t *testing.T) *env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shops := shopstore.NewInMemory()
	profiles := profilestore.NewInMemory()
	applicants := applicantstore.NewInMemory()
	notes := notestore.NewInMemory()
	catalog := constants.Default()

	resolver := profile.NewResolver(profiles)
	shopSvc := shopservice.New(shops, profiles, shopservice.WithLogger(logger))
	applicantSvc := applicantservice.New(applicants, notes, shopSvc, resolver, catalog,
		applicantservice.WithLogger(logger))
	noteSvc := noteservice.New(notes, applicants, resolver, noteservice.WithLogger(logger))

	jwtSvc := auth.NewJWTService("router-test-secret", "shoptrack-test", "authenticated")
	limiter := ratelimit.New(ratelimit.NewMemoryCounter(),
		config.RateLimitConfig{Limit: 1000, Window: time.Minute},
		ratelimit.WithLogger(logger))

	router := New(Dependencies{
		Logger:     logger,
		JWT:        auth.NewJWTServiceAdapter(jwtSvc),
		Limiter:    limiter,
		Applicants: applicanthandler.New(applicantSvc, logger),
		Notes:      notehandler.New(noteSvc, logger),
		Shops:      shophandler.New(shopSvc, logger),
		Constants:  constants.NewHandler(catalog),
		Health:     map[string]HealthCheck{},
	})
	return &env{router: router, jwt: jwtSvc}
}

func (e *env) token(t *testing.T, email string) string {
	t.Helper()
	userID, err := id.ParseUserID("7f9c2ba4-e88f-4a5c-9f32-5b7a9b1a2c3d")
	require.NoError(t, err)
	token, err := e.jwt.GenerateAccessToken(userID, email, "authenticated", time.Hour)
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	t.Run("root and health respond without auth", func(t *testing.T) {
		e := newEnv(t)
		assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/", "", "").Code)
		assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/api/health", "", "").Code)
	})

	t.Run("metrics endpoint is mounted", func(t *testing.T) {
		e := newEnv(t)
		assert.Equal(t, http.StatusOK, e.do(t, http.MethodGet, "/metrics", "", "").Code)
	})

	t.Run("catalog is public", func(t *testing.T) {
		e := newEnv(t)
		rec := e.do(t, http.MethodGet, "/api/constants", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "PHONE_SCREEN")
	})

	t.Run("staff surface rejects anonymous callers", func(t *testing.T) {
		e := newEnv(t)
		rec := e.do(t, http.MethodGet, "/api/applicants", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("full applicant lifecycle through the wire", func(t *testing.T) {
		e := newEnv(t)
		token := e.token(t, "owner@shop.test")

		// Provision the tenant.
		rec := e.do(t, http.MethodPost, "/api/shops", token, `{"name":"Joe's Garage"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var shop struct {
			ID   string `json:"id"`
			Slug string `json:"slug"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &shop))
		assert.Equal(t, "joes-garage", shop.Slug)

		// Public intake against that shop.
		intake := `{"shop_id":"` + shop.ID + `","full_name":"Jane Doe","email":"jane@example.com","phone":"555-0100","position_applied":"Lube Technician"}`
		rec = e.do(t, http.MethodPost, "/api/applicants", "", intake)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "NEW", created.Status)

		// Staff triage: list, advance status, read the trail.
		rec = e.do(t, http.MethodGet, "/api/applicants", token, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), created.ID)

		rec = e.do(t, http.MethodPatch, "/api/applicants/"+created.ID, token, `{"status":"CONTACTED"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		rec = e.do(t, http.MethodGet, "/api/applicants/"+created.ID+"/notes", token, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), "Status changed from NEW to CONTACTED.")
		assert.Contains(t, rec.Body.String(), "Application submitted via website.")
	})

	t.Run("shop lookup by slug is public", func(t *testing.T) {
		e := newEnv(t)
		token := e.token(t, "owner@shop.test")
		rec := e.do(t, http.MethodPost, "/api/shops", token, `{"name":"Slug Lookup Garage"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		rec = e.do(t, http.MethodGet, "/api/shops/by-slug/slug-lookup-garage", "", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.NotContains(t, rec.Body.String(), "settings")
	})
}
