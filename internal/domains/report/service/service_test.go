package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentdesk/infras/otel/mocks"
	inventoryMocks "rentdesk/internal/domains/inventory/mocks"
	inventoryDto "rentdesk/internal/domains/inventory/model/dto"
	rentalMocks "rentdesk/internal/domains/rental/mocks"
	"rentdesk/internal/domains/rental/model"
	"rentdesk/internal/domains/report/model/dto"
	"rentdesk/internal/domains/report/service"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
)

const tenantID = "tenant-1"

type fixture struct {
	svc       service.Report
	rentals   *rentalMocks.MockRentalService
	inventory *inventoryMocks.MockInventoryService
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	timezone.SetLocation(time.UTC)

	ctrl := gomock.NewController(t)

	f := fixture{
		rentals:   rentalMocks.NewMockRentalService(ctrl),
		inventory: inventoryMocks.NewMockInventoryService(ctrl),
	}
	f.svc = service.New(f.rentals, f.inventory, mocks.NewOtel())

	return f
}

func detail(customerID, name string, amount float64, created time.Time, returned bool, chairs, tables, tablecloths int) model.RentalDetail {
	return model.RentalDetail{
		Rental: model.Rental{
			ID:                 name + created.String(),
			UserID:             tenantID,
			CustomerID:         customerID,
			Amount:             amount,
			ChairQuantity:      chairs,
			TableQuantity:      tables,
			TableclothQuantity: tablecloths,
			Returned:           returned,
			Metadata:           gModel.Metadata{CreatedAt: created},
		},
		CustomerName: name,
	}
}

func TestReportService_Dashboard(t *testing.T) {
	f := newFixture(t)

	now := timezone.Now()
	lastYear := now.AddDate(-1, 0, 0)

	f.inventory.EXPECT().Get(gomock.Any(), tenantID).Return(inventoryDto.InventoryResponse{
		TotalChairs:      100,
		TotalTables:      10,
		TotalTablecloths: 0,
	}, nil)
	f.rentals.EXPECT().Snapshot(gomock.Any(), tenantID).Return([]model.RentalDetail{
		detail("a", "Ana", 200, now, false, 20, 12, 0),
		detail("b", "Bia", 150, now, false, 5, 0, 4),
		detail("a", "Ana", 300, lastYear, true, 50, 5, 0),
	}, nil)

	res, err := f.svc.Dashboard(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, dto.CategoryStats{Total: 100, Rented: 25, Available: 75, OccupancyRate: 25}, res.Chairs)
	assert.Equal(t, dto.CategoryStats{Total: 10, Rented: 12, Available: -2, OccupancyRate: 120, OverAllocated: true}, res.Tables)
	assert.Equal(t, dto.CategoryStats{Total: 0, Rented: 4, Available: -4, OccupancyRate: 0, OverAllocated: true}, res.Tablecloths)
	assert.Equal(t, 2, res.ActiveRentals)
	assert.InDelta(t, 350, res.MonthlyRevenue, 1e-9)
}

func TestReportService_DashboardErrors(t *testing.T) {
	t.Run("inventory", func(t *testing.T) {
		f := newFixture(t)

		f.inventory.EXPECT().Get(gomock.Any(), tenantID).Return(inventoryDto.InventoryResponse{}, errors.New("db down"))

		_, err := f.svc.Dashboard(context.Background(), tenantID)

		assert.ErrorContains(t, err, "failed to get inventory")
	})

	t.Run("rentals", func(t *testing.T) {
		f := newFixture(t)

		f.inventory.EXPECT().Get(gomock.Any(), tenantID).Return(inventoryDto.InventoryResponse{}, nil)
		f.rentals.EXPECT().Snapshot(gomock.Any(), tenantID).Return(nil, errors.New("db down"))

		_, err := f.svc.Dashboard(context.Background(), tenantID)

		assert.ErrorContains(t, err, "failed to get rentals")
	})
}

func TestReportService_DashboardEmptyTenant(t *testing.T) {
	f := newFixture(t)

	f.inventory.EXPECT().Get(gomock.Any(), tenantID).Return(inventoryDto.InventoryResponse{}, nil)
	f.rentals.EXPECT().Snapshot(gomock.Any(), tenantID).Return(nil, nil)

	res, err := f.svc.Dashboard(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, dto.DashboardResponse{}, res)
}

func TestReportService_Revenue(t *testing.T) {
	f := newFixture(t)

	now := timezone.Now()
	startOfYear := timezone.StartOfYear(now)

	f.rentals.EXPECT().Snapshot(gomock.Any(), tenantID).Return([]model.RentalDetail{
		detail("a", "Ana", 100, now, false, 1, 0, 0),
		detail("b", "Bia", 40, startOfYear, true, 1, 0, 0),
		detail("c", "Caio", 60, startOfYear.Add(-time.Hour), true, 1, 0, 0),
	}, nil)

	res, err := f.svc.Revenue(context.Background(), tenantID)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Weekly, 100.0)
	assert.GreaterOrEqual(t, res.Monthly, 100.0)
	assert.LessOrEqual(t, res.Monthly, res.Yearly)
	assert.InDelta(t, 140, res.Yearly, 1e-9)
	assert.InDelta(t, 200, res.Total, 1e-9)
}

func TestReportService_Monthly(t *testing.T) {
	f := newFixture(t)

	f.rentals.EXPECT().Snapshot(gomock.Any(), tenantID).Return([]model.RentalDetail{
		detail("a", "Ana", 100, time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC), false, 1, 0, 0),
		detail("b", "Bia", 50, time.Date(2024, time.February, 3, 12, 0, 0, 0, time.UTC), false, 1, 0, 0),
	}, nil)

	res, err := f.svc.Monthly(context.Background(), tenantID, 2024)

	require.NoError(t, err)
	assert.Equal(t, 2024, res.Year)
	require.Len(t, res.Months, 12)
	assert.Equal(t, dto.MonthRevenue{Month: 1, Revenue: 100}, res.Months[0])
	assert.Equal(t, dto.MonthRevenue{Month: 2, Revenue: 50}, res.Months[1])
	assert.Equal(t, dto.MonthRevenue{Month: 12, Revenue: 0}, res.Months[11])
}

func TestReportService_TopCustomer(t *testing.T) {
	t.Run("most frequent customer", func(t *testing.T) {
		f := newFixture(t)

		now := timezone.Now()

		f.rentals.EXPECT().Snapshot(gomock.Any(), tenantID).Return([]model.RentalDetail{
			detail("b", "Bia", 10, now, false, 1, 0, 0),
			detail("a", "Ana", 10, now, false, 1, 0, 0),
			detail("a", "Ana", 10, now, false, 1, 0, 0),
		}, nil)

		res, err := f.svc.TopCustomer(context.Background(), tenantID)

		require.NoError(t, err)
		assert.Equal(t, &dto.TopCustomer{CustomerID: "a", Name: "Ana", RentalCount: 2}, res.Customer)
	})

	t.Run("no rentals", func(t *testing.T) {
		f := newFixture(t)

		f.rentals.EXPECT().Snapshot(gomock.Any(), tenantID).Return(nil, nil)

		res, err := f.svc.TopCustomer(context.Background(), tenantID)

		require.NoError(t, err)
		assert.Nil(t, res.Customer)
	})

	t.Run("error", func(t *testing.T) {
		f := newFixture(t)

		f.rentals.EXPECT().Snapshot(gomock.Any(), tenantID).Return(nil, errors.New("db down"))

		_, err := f.svc.TopCustomer(context.Background(), tenantID)

		assert.ErrorContains(t, err, "failed to get rentals")
	})
}
