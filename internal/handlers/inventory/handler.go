package inventory

import (
	"net/http"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/inventory/model/dto"
	"rentdesk/internal/domains/inventory/service"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Inventory
	otel    otel.Otel
}

func New(service service.Inventory, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inventory", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetInventory)
		routerGroup.Put("/", handler.UpsertInventory)
	})
}

// GetInventory returns the tenant's item totals.
// @Summary Get inventory totals
// @Tags Inventory
// @Produce json
// @Success 200 {object} response.Data[dto.InventoryResponse] "Inventory totals"
// @Failure 500 {object} response.Error
// @Router /v1/inventory [get]
// @Security BearerAuth
func (handler *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInventory")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	inventory, err := handler.service.Get(ctx, tenantID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inventory")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, inventory)
}

// UpsertInventory replaces the tenant's item totals.
// @Summary Save inventory totals
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body dto.UpsertInventoryRequest true "Inventory totals"
// @Success 200 {object} response.Data[dto.InventoryResponse] "Inventory saved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inventory [put]
// @Security BearerAuth
func (handler *Handler) UpsertInventory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertInventory")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.UpsertInventoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upsert(ctx, tenantID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save inventory")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inventory saved successfully by tenant " + tenantID)

	response.WithJSON(w, http.StatusOK, res)
}
