//go:build wireinject
// +build wireinject

package di

import (
	"rentdesk/config"
	"rentdesk/infras/jwt"
	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/infras/redis"
	"rentdesk/permissions"
	"rentdesk/shared/cache"
	"rentdesk/transport/http"
	"rentdesk/transport/http/middleware"
	"rentdesk/transport/http/router"

	"github.com/google/wire"

	authService "rentdesk/internal/domains/auth/service"
	customerRepository "rentdesk/internal/domains/customer/repository"
	customerService "rentdesk/internal/domains/customer/service"
	inventoryRepository "rentdesk/internal/domains/inventory/repository"
	inventoryService "rentdesk/internal/domains/inventory/service"
	rentalRepository "rentdesk/internal/domains/rental/repository"
	rentalService "rentdesk/internal/domains/rental/service"
	reportService "rentdesk/internal/domains/report/service"
	colorRepository "rentdesk/internal/domains/tableclothcolor/repository"
	colorService "rentdesk/internal/domains/tableclothcolor/service"
	userRepository "rentdesk/internal/domains/user/repository"
	authHandler "rentdesk/internal/handlers/auth"
	customerHandler "rentdesk/internal/handlers/customer"
	inventoryHandler "rentdesk/internal/handlers/inventory"
	rentalHandler "rentdesk/internal/handlers/rental"
	reportHandler "rentdesk/internal/handlers/report"
	colorHandler "rentdesk/internal/handlers/tableclothcolor"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	wire.Bind(new(postgres.Transactor), new(*postgres.Connection)),
	otel.New,
	redis.New,
	jwt.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var colorDomain = wire.NewSet(
	colorRepository.New,
	colorService.New,
)

var inventoryDomain = wire.NewSet(
	inventoryRepository.New,
	inventoryService.New,
)

var rentalDomain = wire.NewSet(
	rentalRepository.New,
	rentalService.New,
)

var reportDomain = wire.NewSet(
	reportService.New,
)

var domains = wire.NewSet(
	authDomain,
	customerDomain,
	colorDomain,
	inventoryDomain,
	rentalDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	customerHandler.New,
	colorHandler.New,
	inventoryHandler.New,
	rentalHandler.New,
	reportHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
