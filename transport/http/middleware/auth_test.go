package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"rentdesk/config"
	"rentdesk/infras/jwt"
	jwtMocks "rentdesk/infras/jwt/mocks"
	"rentdesk/infras/otel/mocks"
	"rentdesk/permissions"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	"rentdesk/transport/http/middleware"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newAuthRouter(t *testing.T) (http.Handler, *jwtMocks.MockJWT) {
	t.Helper()

	perms := permissions.Get()
	require.NotNil(t, perms)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	tokens := jwtMocks.NewMockJWT(gomock.NewController(t))
	auth := middleware.NewAuthRoleMiddleware(tokens, mocks.NewOtel(), perms, cfg)

	router := chi.NewRouter()
	router.Use(auth.APIKey, auth.Auth, auth.RBAC)

	tenantEcho := func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := shared.GetTenantID(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		_, _ = w.Write([]byte(tenantID))
	}

	router.Post("/v1/auth/login", tenantEcho)
	router.Get("/v1/rentals", tenantEcho)

	return router, tokens
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("public route needs no token", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rentals", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		router, tokens := newAuthRouter(t)
		tokens.EXPECT().Validate("stale", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer stale")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token has expired")
	})

	t.Run("tenant is injected into the context", func(t *testing.T) {
		router, tokens := newAuthRouter(t)
		tokens.EXPECT().Validate("good", jwt.AccessToken).Return(&jwt.Claims{
			TenantID: "tenant-1",
			Email:    "owner@festas.com.br",
			Role:     constant.RoleTenant,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer good")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tenant-1", rec.Body.String())
	})

	t.Run("role without access", func(t *testing.T) {
		router, tokens := newAuthRouter(t)
		tokens.EXPECT().Validate("guest", jwt.AccessToken).Return(&jwt.Claims{
			TenantID: "tenant-1",
			Email:    "guest@festas.com.br",
			Role:     constant.ContextGuest,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer guest")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("wrong api key", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "nope")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("internal call acts for the named tenant", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "internal-key")
		req.Header.Set(constant.RequestHeaderTenantID, "tenant-9")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tenant-9", rec.Body.String())
	})

	t.Run("internal call without tenant", func(t *testing.T) {
		router, _ := newAuthRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/rentals", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "internal-key")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unmatched path reaches the router", func(t *testing.T) {
		router, tokens := newAuthRouter(t)
		tokens.EXPECT().Validate("good", jwt.AccessToken).Return(&jwt.Claims{TenantID: "tenant-1", Role: constant.RoleTenant}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/nowhere", nil)
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer good")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
