package rental

import (
	"net/http"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/rental/listing"
	"rentdesk/internal/domains/rental/model/dto"
	"rentdesk/internal/domains/rental/service"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/validator"
	"rentdesk/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Rental
	otel    otel.Otel
}

func New(service service.Rental, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rentals", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRental)
		routerGroup.Get("/", handler.GetRentals)
		routerGroup.Get("/{id}", handler.GetRentalByID)
		routerGroup.Patch("/{id}", handler.UpdateRental)
		routerGroup.Delete("/{id}", handler.DeleteRental)
		routerGroup.Post("/{id}/return", handler.ReturnRental)
		routerGroup.Post("/{id}/reactivate", handler.ReactivateRental)
	})
}

// CreateRental handles the creation of a new rental.
// @Summary Create a new rental
// @Description Create an active rental for an existing customer_id or an inline customer.
// @Tags Rental
// @Accept json
// @Produce json
// @Param request body dto.CreateRentalRequest true "Create Rental Request"
// @Success 201 {object} response.Data[dto.RentalResponse] "Rental created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals [post]
// @Security BearerAuth
func (handler *Handler) CreateRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRental")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	req := dto.CreateRentalRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, tenantID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create rental")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rental created successfully by tenant " + tenantID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetRentals lists the tenant's rentals.
// @Summary Get all rentals
// @Description Filter by status, search by customer name and sort by date, price or customer.
// @Tags Rental
// @Produce json
// @Param status query string false "all, active or inactive"
// @Param search query string false "Case-insensitive search term"
// @Param sort_by query string false "date, price or customer"
// @Param sort_dir query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size, every rental when omitted"
// @Success 200 {object} response.Data[dto.GetRentalsResponse] "List of rentals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals [get]
// @Security BearerAuth
func (handler *Handler) GetRentals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentals")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	query := r.URL.Query()

	opts, err := listing.ParseOptions(
		query.Get(constant.RequestParamStatus),
		query.Get(constant.RequestParamSearch),
		query.Get(constant.RequestParamSortBy),
		query.Get(constant.RequestParamSortDir),
	)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse listing options")

		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	rentals, err := handler.service.List(ctx, tenantID, opts, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rentals")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rentals retrieved successfully")

	response.WithJSON(w, http.StatusOK, rentals)
}

// GetRentalByID retrieves a rental by its ID.
// @Summary Get a rental by ID
// @Tags Rental
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Data[dto.RentalResponse] "Rental details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRentalByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRentalByID")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	rental, err := handler.service.Get(ctx, tenantID, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rental by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rental)
}

// UpdateRental edits a rental by its ID.
// @Summary Update a rental by ID
// @Tags Rental
// @Accept json
// @Produce json
// @Param id path string true "Rental ID"
// @Param request body dto.UpdateRentalRequest true "Update Rental Request"
// @Success 200 {object} response.Message "Rental updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRental")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRentalRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, tenantID, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update rental")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rental updated successfully by tenant " + tenantID)

	response.WithMessage(w, http.StatusOK, "Rental updated successfully")
}

// ReturnRental marks a rental as returned, releasing its items.
// @Summary Mark a rental as returned
// @Tags Rental
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Message "Rental marked as returned"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id}/return [post]
// @Security BearerAuth
func (handler *Handler) ReturnRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReturnRental")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkReturned(ctx, tenantID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark rental as returned")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Rental marked as returned")
}

// ReactivateRental moves a returned rental back to active.
// @Summary Reactivate a rental
// @Tags Rental
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Message "Rental reactivated"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id}/reactivate [post]
// @Security BearerAuth
func (handler *Handler) ReactivateRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReactivateRental")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.MarkActive(ctx, tenantID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reactivate rental")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Rental reactivated")
}

// DeleteRental deletes a rental by its ID.
// @Summary Delete a rental by ID
// @Tags Rental
// @Produce json
// @Param id path string true "Rental ID"
// @Success 200 {object} response.Message "Rental deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rentals/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRental(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRental")
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
		log.Error().Err(err).Msg("failed to delete rental")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Rental deleted successfully by tenant " + tenantID)

	response.WithMessage(w, http.StatusOK, "Rental deleted successfully")
}
