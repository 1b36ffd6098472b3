package jwt_test

import (
	"rentdesk/config"
	"rentdesk/infras/jwt"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "rentdesk"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60 * 24

	return jwt.New(cfg)
}

var owner = jwt.Identity{TenantID: "tenant-1", Email: "owner@festas.com.br", Role: "tenant"}

func TestIssueAndValidate(t *testing.T) {
	svc := newService()

	pair, err := svc.Issue(owner)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.Validate(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, owner, claims.Identity())
	assert.Equal(t, "rentdesk", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	_, err = svc.Validate(pair.RefreshToken, jwt.RefreshToken)
	assert.NoError(t, err)
}

func TestValidateRejects(t *testing.T) {
	svc := newService()

	pair, err := svc.Issue(owner)
	require.NoError(t, err)

	t.Run("refresh token used as access token", func(t *testing.T) {
		_, err := svc.Validate(pair.RefreshToken, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		_, err := svc.Validate(pair.AccessToken+"x", jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		claims := jwt.Claims{
			TenantID: owner.TenantID,
			Email:    owner.Email,
			Type:     jwt.AccessToken,
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "rentdesk",
				Subject:   owner.TenantID,
				ExpiresAt: gojwt.NewNumericDate(past),
			},
		}

		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
		require.NoError(t, err)

		_, err = svc.Validate(token, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("subject does not match tenant", func(t *testing.T) {
		claims := jwt.Claims{
			TenantID: owner.TenantID,
			Email:    owner.Email,
			Type:     jwt.AccessToken,
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "rentdesk",
				Subject:   "tenant-2",
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}

		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
		require.NoError(t, err)

		_, err = svc.Validate(token, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		claims := jwt.Claims{
			TenantID: owner.TenantID,
			Type:     jwt.AccessToken,
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "someone-else",
				Subject:   owner.TenantID,
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}

		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
		require.NoError(t, err)

		_, err = svc.Validate(token, jwt.AccessToken)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestIssueRequiresTenant(t *testing.T) {
	_, err := newService().Issue(jwt.Identity{Email: "owner@festas.com.br"})
	assert.ErrorIs(t, err, jwt.ErrInvalidClaim)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc.def", token: "abc.def", ok: true},
		{header: "bearer   abc.def ", token: "abc.def", ok: true},
		{header: "Basic abc", ok: false},
		{header: "Bearer ", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, err := jwt.BearerToken(tt.header)
			if !tt.ok {
				assert.ErrorIs(t, err, jwt.ErrMissingToken)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.token, token)
		})
	}
}
