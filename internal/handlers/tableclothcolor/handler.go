package tableclothcolor

import (
	"net/http"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/tableclothcolor/model/dto"
	"rentdesk/internal/domains/tableclothcolor/service"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.TableclothColor
	otel    otel.Otel
}

func New(service service.TableclothColor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tablecloth-colors", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateColor)
		routerGroup.Get("/", handler.GetColors)
		routerGroup.Patch("/{id}", handler.UpdateColor)
		routerGroup.Delete("/{id}", handler.DeleteColor)
	})
}

// CreateColor handles the creation of a new tablecloth color.
// @Summary Create a tablecloth color
// @Tags TableclothColor
// @Accept json
// @Produce json
// @Param request body dto.CreateColorRequest true "Create Color Request"
// @Success 201 {object} response.Data[dto.ColorResponse] "Color created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tablecloth-colors [post]
// @Security BearerAuth
func (handler *Handler) CreateColor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateColor")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.CreateColorRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, tenantID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create tablecloth color")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Tablecloth color created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetColors lists the tenant's tablecloth colors ordered by name.
// @Summary Get all tablecloth colors
// @Tags TableclothColor
// @Produce json
// @Success 200 {object} response.Data[dto.GetColorsResponse] "List of colors"
// @Failure 500 {object} response.Error
// @Router /v1/tablecloth-colors [get]
// @Security BearerAuth
func (handler *Handler) GetColors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetColors")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	colors, err := handler.service.GetAll(ctx, tenantID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tablecloth colors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, colors)
}

// UpdateColor updates a tablecloth color by its ID.
// @Summary Update a tablecloth color
// @Tags TableclothColor
// @Accept json
// @Produce json
// @Param id path string true "Color ID"
// @Param request body dto.UpdateColorRequest true "Update Color Request"
// @Success 200 {object} response.Message "Tablecloth color updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tablecloth-colors/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateColor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateColor")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateColorRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, tenantID, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update tablecloth color")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Tablecloth color updated successfully")
}

// DeleteColor deletes a tablecloth color. Rentals using it keep no color.
// @Summary Delete a tablecloth color
// @Tags TableclothColor
// @Produce json
// @Param id path string true "Color ID"
// @Success 200 {object} response.Message "Tablecloth color deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/tablecloth-colors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteColor")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, tenantID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete tablecloth color")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Tablecloth color deleted successfully")
}
