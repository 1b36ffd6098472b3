package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "rentdesk/infras/otel/mocks"
	authMocks "rentdesk/internal/domains/auth/mocks"
	"rentdesk/internal/domains/auth/model/dto"
	"rentdesk/internal/handlers/auth"
	"rentdesk/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *authMocks.MockAuth) {
	t.Helper()

	svc := authMocks.NewMockAuth(gomock.NewController(t))
	handler := auth.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func post(router http.Handler, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))

	var payload map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &payload)

	return rec, payload
}

func TestHandler_Register(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Register(gomock.Any(), dto.RegisterRequest{Email: "ana@example.com", Password: "s3cret-pass"}).Return(nil)

		rec, body := post(router, "/auth/register", `{"email":"ana@example.com","password":"s3cret-pass"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "User registered successfully", body["message"])
	})

	t.Run("invalid email never reaches the service", func(t *testing.T) {
		router, _ := newRouter(t)

		rec, body := post(router, "/auth/register", `{"email":"not-an-email","password":"s3cret-pass"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "email", body["field"])
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := newRouter(t)

		rec, _ := post(router, "/auth/register", `{"email":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("email taken", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(failure.Conflict("user already exists"))

		rec, body := post(router, "/auth/register", `{"email":"ana@example.com","password":"s3cret-pass"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "user already exists", body["error"])
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("returns the token pair", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Login(gomock.Any(), dto.LoginRequest{Email: "ana@example.com", Password: "s3cret-pass"}).
			Return(dto.LoginResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 3600}, nil)

		rec, body := post(router, "/auth/login", `{"email":"ana@example.com","password":"s3cret-pass"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "access", data["access_token"])
		assert.Equal(t, "Bearer", data["token_type"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.LoginResponse{}, failure.Unauthorized("invalid email or password"))

		rec, _ := post(router, "/auth/login", `{"email":"ana@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_RefreshToken(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		router, _ := newRouter(t)

		rec, body := post(router, "/auth/refresh-token", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "refresh_token", body["field"])
	})

	t.Run("refreshed", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "refresh"}).
			Return(dto.RefreshTokenResponse{AccessToken: "access-2"}, nil)

		rec, body := post(router, "/auth/refresh-token", `{"refresh_token":"refresh"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "access-2", body["data"].(map[string]any)["access_token"])
	})
}
