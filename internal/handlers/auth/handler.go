package auth

import (
	"context"
	"net/http"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/auth/model/dto"
	"rentdesk/internal/domains/auth/service"
	"rentdesk/shared/constant"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
	})
}

// exchange decodes and validates a Req body, runs it through call and writes
// the result. Every auth endpoint is a single body-in, body-out exchange.
func exchange[Req any](
	handler *Handler,
	w http.ResponseWriter,
	r *http.Request,
	op string,
	call func(ctx context.Context, req Req) (any, error),
) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+op)
	defer scope.End()

	var req Req

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("op", op).Msg("rejected auth request body")

		response.WithError(w, err)

		return
	}

	res, err := call(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("op", op).Msg("auth request failed")

		response.WithError(w, err)

		return
	}

	scope.AddEvent(op + " succeeded")

	if message, ok := res.(string); ok {
		response.WithMessage(w, http.StatusCreated, message)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Register creates a tenant account.
// @Summary Register a new tenant
// @Description Create the account that owns customers, inventory and rentals.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Message "User registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	exchange(handler, w, r, "Register", func(ctx context.Context, req dto.RegisterRequest) (any, error) {
		if err := handler.service.Register(ctx, req); err != nil {
			return nil, err //nolint:wrapcheck
		}

		return "User registered successfully", nil
	})
}

// Login trades credentials for a token pair.
// @Summary Login a tenant
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	exchange(handler, w, r, "Login", func(ctx context.Context, req dto.LoginRequest) (any, error) {
		return handler.service.Login(ctx, req) //nolint:wrapcheck
	})
}

// RefreshToken trades a refresh token for a new pair.
// @Summary Refresh a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	exchange(handler, w, r, "RefreshToken", func(ctx context.Context, req dto.RefreshTokenRequest) (any, error) {
		return handler.service.RefreshToken(ctx, req) //nolint:wrapcheck
	})
}
