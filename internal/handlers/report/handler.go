package report

import (
	"net/http"
	"rentdesk/infras/otel"
	"rentdesk/internal/domains/report/model/dto"
	"rentdesk/internal/domains/report/service"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	"rentdesk/shared/failure"
	"rentdesk/shared/timezone"
	"rentdesk/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	minYear = 1970
	maxYear = 9999
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/dashboard", handler.GetDashboard)
		routerGroup.Get("/revenue", handler.GetRevenue)
		routerGroup.Get("/monthly", handler.GetMonthlyRevenue)
		routerGroup.Get("/top-customer", handler.GetTopCustomer)
	})
}

// GetDashboard returns inventory usage, active rentals and the current month revenue.
// @Summary Get dashboard figures
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[dto.DashboardResponse] "Dashboard"
// @Failure 500 {object} response.Error
// @Router /v1/reports/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var res dto.DashboardResponse

	res, err = handler.service.Dashboard(ctx, tenantID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetRevenue returns revenue since the start of the week, month and year.
// @Summary Get revenue totals
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[dto.RevenueResponse] "Revenue"
// @Failure 500 {object} response.Error
// @Router /v1/reports/revenue [get]
// @Security BearerAuth
func (handler *Handler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRevenue")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var res dto.RevenueResponse

	res, err = handler.service.Revenue(ctx, tenantID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetMonthlyRevenue returns twelve monthly revenue entries for a year.
// @Summary Get monthly revenue
// @Tags Report
// @Produce json
// @Param year query int false "Year, current year when omitted"
// @Success 200 {object} response.Data[dto.MonthlyRevenueResponse] "Monthly revenue"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reports/monthly [get]
// @Security BearerAuth
func (handler *Handler) GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthlyRevenue")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	year, err := parseYear(r.URL.Query().Get(constant.RequestParamYear))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var res dto.MonthlyRevenueResponse

	res, err = handler.service.Monthly(ctx, tenantID, year)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly revenue")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTopCustomer returns the customer with the most rentals, null when there are none.
// @Summary Get top customer
// @Tags Report
// @Produce json
// @Success 200 {object} response.Data[dto.TopCustomerResponse] "Top customer"
// @Failure 500 {object} response.Error
// @Router /v1/reports/top-customer [get]
// @Security BearerAuth
func (handler *Handler) GetTopCustomer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTopCustomer")
	defer scope.End()

	tenantID, err := shared.GetTenantID(ctx)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	var res dto.TopCustomerResponse

	res, err = handler.service.TopCustomer(ctx, tenantID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get top customer")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func parseYear(value string) (int, error) {
	if value == "" {
		return timezone.Now().Year(), nil
	}

	year, err := strconv.Atoi(value)
	if err != nil || year < minYear || year > maxYear {
		return 0, failure.Validation(constant.RequestParamYear, "year must be a four digit number") //nolint:wrapcheck
	}

	return year, nil
}
