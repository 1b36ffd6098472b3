package router

import (
	"rentdesk/internal/handlers/auth"
	"rentdesk/internal/handlers/customer"
	"rentdesk/internal/handlers/inventory"
	"rentdesk/internal/handlers/rental"
	"rentdesk/internal/handlers/report"
	"rentdesk/internal/handlers/tableclothcolor"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth            auth.Handler
	Customer        customer.Handler
	TableclothColor tableclothcolor.Handler
	Inventory       inventory.Handler
	Rental          rental.Handler
	Report          report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.TableclothColor.Router(routerGroup)
		r.DomainHandlers.Inventory.Router(routerGroup)
		r.DomainHandlers.Rental.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
