package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"rentdesk/config"
	"rentdesk/infras/otel/mocks"
	colorMocks "rentdesk/internal/domains/tableclothcolor/mocks"
	"rentdesk/internal/domains/tableclothcolor/model"
	"rentdesk/internal/domains/tableclothcolor/model/dto"
	"rentdesk/internal/domains/tableclothcolor/service"
	cacheMocks "rentdesk/shared/cache/mocks"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/validator"
)

const tenantID = "tenant-1"

func newService(t *testing.T) (service.TableclothColor, *colorMocks.MockTableclothColor, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := colorMocks.NewMockTableclothColor(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return service.New(mockRepo, &config.Config{}, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestCreateColorRequest_Validation(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateColorRequest
		wantField string
	}{
		{name: "valid", req: dto.CreateColorRequest{Name: "Branco", HexColor: "#ffffff"}},
		{name: "missing name", req: dto.CreateColorRequest{HexColor: "#FFFFFF"}, wantField: "name"},
		{name: "short hex", req: dto.CreateColorRequest{Name: "Branco", HexColor: "#FFF"}, wantField: "hex_color"},
		{name: "not hex", req: dto.CreateColorRequest{Name: "Branco", HexColor: "#GGGGGG"}, wantField: "hex_color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			var validationErr *failure.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestColorService_Create(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, color model.TableclothColor) error {
			assert.Equal(t, tenantID, color.UserID)
			assert.Equal(t, "#A1B2C3", color.HexColor)

			return nil
		})

	res, err := svc.Create(context.Background(), tenantID, dto.CreateColorRequest{Name: "Azul", HexColor: "#a1b2c3"})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "Azul", res.Name)
}

func TestColorService_GetAll(t *testing.T) {
	svc, repo, cache := newService(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.TableclothColor, error) {
			assert.Equal(t, "tablecloth_colors.name", params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)
			assert.Zero(t, params.Limit)

			_, args := filter.GetWhereClause()
			assert.Equal(t, tenantID, args["user_id"])

			return []model.TableclothColor{{ID: "1", Name: "Azul"}, {ID: "2", Name: "Branco"}}, nil
		})

	res, err := svc.GetAll(context.Background(), tenantID)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.Colors, 2)
	assert.Equal(t, "Azul", res.Colors[0].Name)
}

func TestColorService_Update(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		svc, _, _ := newService(t)

		err := svc.Update(context.Background(), tenantID, dto.UpdateColorRequest{}, "1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("other tenant's color", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(context.Background(), tenantID, dto.UpdateColorRequest{Name: "Verde"}, "1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("success", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		err := svc.Update(context.Background(), tenantID, dto.UpdateColorRequest{HexColor: "#00ff00"}, "1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestColorService_Delete(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

	err := svc.Delete(context.Background(), tenantID, "1")

	assert.Error(t, err)
}
