package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoptrack/internal/shop/models"
	id "shoptrack/pkg/domain"
	dErrors "shoptrack/pkg/domain-errors"
)

type stubService struct {
	shop    *models.Shop
	public  *models.PublicShop
	err     error
	gotName string
	gotSlug string
}

func (s *stubService) CreateShop(_ context.Context, name, slug string) (*models.Shop, error) {
	s.gotName, s.gotSlug = name, slug
	return s.shop, s.err
}

func (s *stubService) GetBySlug(context.Context, string) (*models.PublicShop, error) {
	return s.public, s.err
}

func (s *stubService) GetByID(context.Context, id.ShopID) (*models.PublicShop, error) {
	return s.public, s.err
}

func (s *stubService) GetMine(context.Context) (*models.Shop, error) {
	return s.shop, s.err
}

func newRouter(svc Service) chi.Router {
	r := chi.NewRouter()
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.RegisterPublic(r)
	h.RegisterProtected(r)
	return r
}

func TestHandleCreate(t *testing.T) {
	t.Run("creates shop", func(t *testing.T) {
		shopID := id.NewShopID()
		svc := &stubService{shop: &models.Shop{ID: shopID, Name: "Joe's Garage", Slug: "joes-garage", Settings: map[string]any{}}}
		r := newRouter(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/shops", strings.NewReader(`{"name":"Joe's Garage"}`))
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Joe's Garage", svc.gotName)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "joes-garage", body["slug"])
	})

	t.Run("rejects missing name", func(t *testing.T) {
		r := newRouter(&stubService{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/shops", strings.NewReader(`{"slug":"x"}`))
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("maps already-has-shop to 400", func(t *testing.T) {
		svc := &stubService{err: dErrors.New(dErrors.CodeBadRequest, "User already has a shop")}
		r := newRouter(svc)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/shops", strings.NewReader(`{"name":"Another"}`))
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already has a shop")
	})
}

func TestPublicLookups(t *testing.T) {
	t.Run("by slug returns projection", func(t *testing.T) {
		shopID := id.NewShopID()
		svc := &stubService{public: &models.PublicShop{ID: shopID, Name: "Tire Town", Slug: "tire-town"}}
		r := newRouter(svc)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shops/by-slug/tire-town", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "tire-town", body["slug"])
		_, hasSettings := body["settings"]
		assert.False(t, hasSettings)
	})

	t.Run("by id rejects malformed uuid", func(t *testing.T) {
		r := newRouter(&stubService{})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shops/by-id/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown shop is 404", func(t *testing.T) {
		svc := &stubService{err: dErrors.New(dErrors.CodeNotFound, "Shop not found")}
		r := newRouter(svc)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shops/by-slug/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleGetMine(t *testing.T) {
	t.Run("no shop bound is 404", func(t *testing.T) {
		svc := &stubService{err: dErrors.New(dErrors.CodeNotFound, "No shop associated with user")}
		r := newRouter(svc)

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shops/mine", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
