package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentdesk/config"
	"rentdesk/infras/otel/mocks"
	inventoryMocks "rentdesk/internal/domains/inventory/mocks"
	"rentdesk/internal/domains/inventory/model"
	"rentdesk/internal/domains/inventory/model/dto"
	"rentdesk/internal/domains/inventory/service"
	cacheMocks "rentdesk/shared/cache/mocks"
	"rentdesk/shared/failure"
	"rentdesk/shared/validator"
)

const tenantID = "tenant-1"

func newService(t *testing.T) (service.Inventory, *inventoryMocks.MockInventory, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := inventoryMocks.NewMockInventory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func intPtr(v int) *int {
	return &v
}

func TestInventoryService_GetWithoutRowReturnsZeros(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Inventory{}, nil)

	res, err := svc.Get(context.Background(), tenantID)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, dto.InventoryResponse{}, res)
}

func TestInventoryService_GetError(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Inventory{}, failure.DataAccess(model.EntityName, "get", errors.New("timeout")))

	_, err := svc.Get(context.Background(), tenantID)

	var dataErr *failure.DataAccessError
	assert.ErrorAs(t, err, &dataErr)
}

func TestInventoryService_Upsert(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inventory model.Inventory) error {
			assert.Equal(t, tenantID, inventory.UserID)
			assert.Equal(t, 100, inventory.TotalChairs)
			assert.Equal(t, 0, inventory.TotalTables)

			return nil
		})

	res, err := svc.Upsert(context.Background(), tenantID, dto.UpsertInventoryRequest{
		TotalChairs:      intPtr(100),
		TotalTables:      intPtr(0),
		TotalTablecloths: intPtr(40),
	})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, dto.InventoryResponse{TotalChairs: 100, TotalTablecloths: 40}, res)
}

func TestUpsertInventoryRequest_Validation(t *testing.T) {
	err := validator.ValidateStruct(&dto.UpsertInventoryRequest{
		TotalChairs:      intPtr(-1),
		TotalTables:      intPtr(0),
		TotalTablecloths: intPtr(0),
	})

	var validationErr *failure.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "total_chairs", validationErr.Field)

	err = validator.ValidateStruct(&dto.UpsertInventoryRequest{TotalChairs: intPtr(1), TotalTables: intPtr(1)})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "total_tablecloths", validationErr.Field)
}
