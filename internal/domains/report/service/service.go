package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rentdesk/infras/otel"
	inventoryService "rentdesk/internal/domains/inventory/service"
	rentalModel "rentdesk/internal/domains/rental/model"
	rentalService "rentdesk/internal/domains/rental/service"
	"rentdesk/internal/domains/report/aggregate"
	"rentdesk/internal/domains/report/model/dto"
	"rentdesk/shared/constant"
	"rentdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Report derives figures from the rental snapshot and inventory, both of which are cached upstream.
type Report interface {
	Dashboard(ctx context.Context, tenantID string) (dto.DashboardResponse, error)
	Revenue(ctx context.Context, tenantID string) (dto.RevenueResponse, error)
	Monthly(ctx context.Context, tenantID string, year int) (dto.MonthlyRevenueResponse, error)
	TopCustomer(ctx context.Context, tenantID string) (dto.TopCustomerResponse, error)
}

type serviceImpl struct {
	rentals   rentalService.Rental
	inventory inventoryService.Inventory
	otel      otel.Otel
}

func New(rentals rentalService.Rental, inventory inventoryService.Inventory, otel otel.Otel) Report {
	return &serviceImpl{
		rentals:   rentals,
		inventory: inventory,
		otel:      otel,
	}
}

func (s *serviceImpl) Dashboard(ctx context.Context, tenantID string) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Dashboard")
	defer scope.Finish(&err)

	totals, err := s.inventory.Get(ctx, tenantID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inventory for dashboard")

		return res, fmt.Errorf("failed to get inventory: %w", err)
	}

	rentals, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return res, err
	}

	rented := aggregate.ActiveQuantities(rentals)

	res.Chairs = dto.NewCategoryStats(totals.TotalChairs, rented.Chairs)
	res.Tables = dto.NewCategoryStats(totals.TotalTables, rented.Tables)
	res.Tablecloths = dto.NewCategoryStats(totals.TotalTablecloths, rented.Tablecloths)
	res.MonthlyRevenue = aggregate.RevenueSince(rentals, timezone.StartOfMonth(timezone.Now()))

	for _, rental := range rentals {
		if rental.Active() {
			res.ActiveRentals++
		}
	}

	if res.Chairs.OverAllocated || res.Tables.OverAllocated || res.Tablecloths.OverAllocated {
		log.Warn().Str("tenantID", tenantID).Msg("active rentals exceed inventory totals")
	}

	return res, nil
}

// Revenue sums amounts since the start of the current week (Sunday), month and year.
func (s *serviceImpl) Revenue(ctx context.Context, tenantID string) (res dto.RevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Revenue")
	defer scope.Finish(&err)

	rentals, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	res.Weekly = aggregate.RevenueSince(rentals, timezone.StartOfWeek(now))
	res.Monthly = aggregate.RevenueSince(rentals, timezone.StartOfMonth(now))
	res.Yearly = aggregate.RevenueSince(rentals, timezone.StartOfYear(now))
	res.Total = aggregate.SumAmount(rentals)

	return res, nil
}

func (s *serviceImpl) Monthly(ctx context.Context, tenantID string, year int) (res dto.MonthlyRevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.Monthly")
	defer scope.Finish(&err)

	rentals, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return res, err
	}

	res.FromAggregate(year, aggregate.MonthlyBreakdown(rentals, year))

	return res, nil
}

func (s *serviceImpl) TopCustomer(ctx context.Context, tenantID string) (res dto.TopCustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".report.TopCustomer")
	defer scope.Finish(&err)

	rentals, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return res, err
	}

	res.FromAggregate(aggregate.TopCustomerByFrequency(rentals))

	return res, nil
}

func (s *serviceImpl) snapshot(ctx context.Context, tenantID string) ([]rentalModel.RentalDetail, error) {
	rentals, err := s.rentals.Snapshot(ctx, tenantID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rentals for report")

		return nil, fmt.Errorf("failed to get rentals: %w", err)
	}

	return rentals, nil
}
