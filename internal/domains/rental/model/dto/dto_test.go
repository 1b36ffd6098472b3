package dto_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerDto "rentdesk/internal/domains/customer/model/dto"
	"rentdesk/internal/domains/rental/model"
	"rentdesk/internal/domains/rental/model/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/timezone"
	"rentdesk/shared/validator"
)

const customerID = "5f0c7a4e-8d54-4d3b-9b8e-0c1f2a3b4c5d"

func validationField(t *testing.T, err error) string {
	t.Helper()

	var validationErr *failure.ValidationError
	require.ErrorAs(t, err, &validationErr)

	return validationErr.Field
}

func TestCreateRentalRequest_Validate(t *testing.T) {
	start := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)

	tests := []struct {
		name      string
		req       dto.CreateRentalRequest
		wantField string
	}{
		{
			name: "customer id",
			req:  dto.CreateRentalRequest{CustomerID: customerID, ChairQuantity: 1},
		},
		{
			name: "inline customer",
			req:  dto.CreateRentalRequest{Customer: &customerDto.CreateCustomerRequest{Name: "Ana"}, TableQuantity: 1},
		},
		{
			name:      "no customer",
			req:       dto.CreateRentalRequest{ChairQuantity: 1},
			wantField: "customer_id",
		},
		{
			name: "both customers",
			req: dto.CreateRentalRequest{
				CustomerID:    customerID,
				Customer:      &customerDto.CreateCustomerRequest{Name: "Ana"},
				ChairQuantity: 1,
			},
			wantField: "customer",
		},
		{
			name:      "inline customer without name",
			req:       dto.CreateRentalRequest{Customer: &customerDto.CreateCustomerRequest{}, ChairQuantity: 1},
			wantField: "name",
		},
		{
			name:      "all quantities zero",
			req:       dto.CreateRentalRequest{CustomerID: customerID},
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			req:       dto.CreateRentalRequest{CustomerID: customerID, ChairQuantity: -1, TableQuantity: 2},
			wantField: "chair_quantity",
		},
		{
			name:      "end before start",
			req:       dto.CreateRentalRequest{CustomerID: customerID, ChairQuantity: 1, StartDate: &start, EndDate: &before},
			wantField: "end_date",
		},
		{
			name: "amount with cents",
			req:  dto.CreateRentalRequest{CustomerID: customerID, ChairQuantity: 1, Amount: 1500.75},
		},
		{
			name: "largest amount the column holds",
			req:  dto.CreateRentalRequest{CustomerID: customerID, ChairQuantity: 1, Amount: 99999999.99},
		},
		{
			name:      "amount above the column limit",
			req:       dto.CreateRentalRequest{CustomerID: customerID, ChairQuantity: 1, Amount: 1e12},
			wantField: "amount",
		},
		{
			name:      "amount with fractions of a cent",
			req:       dto.CreateRentalRequest{CustomerID: customerID, ChairQuantity: 1, Amount: 10.005},
			wantField: "amount",
		},
		{
			name:      "invalid customer id",
			req:       dto.CreateRentalRequest{CustomerID: "abc", ChairQuantity: 1},
			wantField: "customer_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantField, validationField(t, err))
		})
	}
}

func TestCreateRentalRequest_ToModel(t *testing.T) {
	req := dto.CreateRentalRequest{
		ChairQuantity:      4,
		TableclothQuantity: 0,
		Amount:             99.9,
		LocationName:       "  ",
		Notes:              "entregar cedo",
	}

	rental := req.ToModel("tenant-1", customerID)

	assert.NotEmpty(t, rental.ID)
	assert.Equal(t, model.ItemTypeChair, rental.ItemType)
	assert.Equal(t, 4, rental.Quantity)
	assert.Nil(t, rental.LocationName)
	assert.Nil(t, rental.TableclothColorID)
	require.NotNil(t, rental.Notes)
	assert.Equal(t, "entregar cedo", *rental.Notes)
	assert.False(t, rental.Returned)
}

func TestUpdateRentalRequest_Fields(t *testing.T) {
	current := model.Rental{ID: "r1", TableclothQuantity: 3, Quantity: 3, ItemType: model.ItemTypeTablecloth}

	t.Run("untouched quantities are not rewritten", func(t *testing.T) {
		amount := 10.5
		fields, err := (&dto.UpdateRentalRequest{Amount: &amount}).Fields(current)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{model.FieldAmount: 10.5}, fields)
	})

	t.Run("empty color clears the reference", func(t *testing.T) {
		empty := ""
		fields, err := (&dto.UpdateRentalRequest{TableclothColorID: &empty}).Fields(current)

		require.NoError(t, err)
		assert.Contains(t, fields, model.FieldTableclothColorID)
		assert.Nil(t, fields[model.FieldTableclothColorID])
	})

	t.Run("end date checked against stored start", func(t *testing.T) {
		start := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, -1)

		_, err := (&dto.UpdateRentalRequest{EndDate: &end}).Fields(model.Rental{StartDate: &start, ChairQuantity: 1})

		assert.Equal(t, "end_date", validationField(t, err))
	})

	t.Run("invalid color id", func(t *testing.T) {
		color := "not-a-uuid"

		err := validator.ValidateStruct(&dto.UpdateRentalRequest{TableclothColorID: &color})

		assert.Equal(t, "tablecloth_color_id", validationField(t, err))
	})

	t.Run("amount limits", func(t *testing.T) {
		tooLarge := 123456789.0
		fraction := 7.125

		assert.Equal(t, "amount", validationField(t, validator.ValidateStruct(&dto.UpdateRentalRequest{Amount: &tooLarge})))
		assert.Equal(t, "amount", validationField(t, validator.ValidateStruct(&dto.UpdateRentalRequest{Amount: &fraction})))
	})
}

func TestGetRentalsResponse_FromModels(t *testing.T) {
	now := time.Date(2024, time.June, 15, 14, 0, 0, 0, time.UTC)
	details := make([]model.RentalDetail, 25)

	tests := []struct {
		name      string
		page      int
		limit     int
		wantCount int
	}{
		{name: "unpaged", wantCount: 25},
		{name: "first page", page: 1, limit: 10, wantCount: 10},
		{name: "last partial page", page: 3, limit: 10, wantCount: 5},
		{name: "past the last page", page: 4, limit: 10, wantCount: 0},
		{name: "page large enough to overflow the offset", page: math.MaxInt/1000 + 2, limit: 1000, wantCount: 0},
		{name: "largest page", page: math.MaxInt, limit: 10, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res dto.GetRentalsResponse

			require.NotPanics(t, func() { res.FromModels(details, tt.page, tt.limit, now) })

			assert.Len(t, res.Rentals, tt.wantCount)
			assert.Equal(t, 25, res.TotalData)
		})
	}
}

func TestRentalResponse_DueFlags(t *testing.T) {
	timezone.SetLocation(time.UTC)

	now := time.Date(2024, time.June, 15, 14, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	earlierToday := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name         string
		end          *time.Time
		returned     bool
		wantOverdue  bool
		wantDueToday bool
		wantStatus   string
	}{
		{name: "no end date", wantStatus: dto.StatusActive},
		{name: "ended yesterday", end: &yesterday, wantOverdue: true, wantStatus: dto.StatusActive},
		{name: "ends today, hour passed", end: &earlierToday, wantDueToday: true, wantStatus: dto.StatusActive},
		{name: "ends tomorrow", end: &tomorrow, wantStatus: dto.StatusActive},
		{name: "returned late rental", end: &yesterday, returned: true, wantStatus: dto.StatusInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := dto.RentalResponse{}
			res.FromModel(model.RentalDetail{
				Rental:       model.Rental{ID: "r1", EndDate: tt.end, Returned: tt.returned},
				CustomerName: "Ana",
			}, now)

			assert.Equal(t, tt.wantOverdue, res.Overdue)
			assert.Equal(t, tt.wantDueToday, res.DueToday)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Nil(t, res.TableclothColor)
		})
	}
}
