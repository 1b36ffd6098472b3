package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"rentdesk/config"
	"rentdesk/infras/jwt"
	"rentdesk/infras/otel"
	"rentdesk/permissions"
	"rentdesk/shared/constant"
	"rentdesk/shared/failure"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type trustedKey struct{}

// Auth authenticates requests, either by bearer token or by service API key.
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role authorizes an authenticated request against the permission table.
type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func trusted(ctx context.Context) bool {
	ok, _ := ctx.Value(trustedKey{}).(bool)

	return ok
}

func withIdentity(ctx context.Context, tenantID, role string) context.Context {
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, tenantID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func deny(w http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()

	response.WithError(w, err)
}

// tokenMessages maps token failures to what the client is told.
var tokenMessages = []struct {
	err     error
	message string
}{
	{jwt.ErrExpiredToken, "Token has expired"},
	{jwt.ErrInvalidToken, "Invalid token"},
	{jwt.ErrInvalidClaim, "Invalid token claims"},
}

func tokenFailure(err error) error {
	for _, known := range tokenMessages {
		if errors.Is(err, known.err) {
			return failure.Unauthorized(known.message)
		}
	}

	return failure.Unauthorized("Token validation failed")
}

// Auth requires a valid access token on every non-public route and puts the
// token's tenant and role on the request context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if trusted(ctx) || (m.permission != nil && m.permission.Public(findRoute(r), r.Method)) {
			next.ServeHTTP(w, r)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "auth.middleware")
		scope.SetAttributes(map[string]any{
			"http.path":   r.URL.Path,
			"http.method": r.Method,
		})

		token, err := jwt.BearerToken(r.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			deny(w, scope, failure.Unauthorized("Missing or malformed bearer token"))

			return
		}

		claims, err := m.jwtService.Validate(token, jwt.AccessToken)
		if err != nil {
			deny(w, scope, tokenFailure(err))

			return
		}

		scope.SetAttribute(constant.OtelTenantAttributeKey, claims.TenantID)
		scope.End()

		log.Debug().Str("tenant_id", claims.TenantID).Str("token_id", claims.ID).Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(withIdentity(ctx, claims.TenantID, claims.Role)))
	})
}

// findRoute resolves the request to its registered chi pattern, e.g. /v1/rentals/{id}.
// It returns "" when no route matches.
func findRoute(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return r.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)
}

// RBAC lets a request through only when its role is listed for the route.
// Routes missing from the table are denied; unmatched paths reach the 404.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if trusted(ctx) {
			next.ServeHTTP(w, r)

			return
		}

		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if m.permission == nil {
			deny(w, scope, failure.ForbiddenError)

			return
		}

		route := findRoute(r)
		if route == "" {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !m.permission.Allows(route, r.Method, role) {
			scope.SetAttributes(map[string]any{
				"user_role":  role,
				"http.route": route,
			})
			deny(w, scope, failure.ForbiddenError)

			return
		}

		scope.End()
		next.ServeHTTP(w, r)
	})
}

// APIKey authenticates service-to-service calls. A caller presenting the
// configured key acts on behalf of the tenant named in X-Tenant-ID and skips
// token and role checks. Requests without a key continue to Auth.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			next.ServeHTTP(w, r)

			return
		}

		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		scope.SetAttribute("http.source", "internal")

		configured := m.cfg.App.APIKey
		if configured == "" || subtle.ConstantTimeCompare([]byte(key), []byte(configured)) != 1 {
			deny(w, scope, failure.ForbiddenError)

			return
		}

		tenantID := r.Header.Get(constant.RequestHeaderTenantID)
		if tenantID == "" {
			deny(w, scope, failure.BadRequestFromString(constant.RequestHeaderTenantID+" is required for internal calls"))

			return
		}

		scope.SetAttribute(constant.OtelTenantAttributeKey, tenantID)
		scope.End()

		ctx = context.WithValue(withIdentity(ctx, tenantID, constant.RoleInternal), trustedKey{}, true)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
