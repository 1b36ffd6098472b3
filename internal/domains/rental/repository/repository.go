package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/rental/model"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Rental interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Rental) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Rental, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.RentalDetail, error)
	GetDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.RentalDetail, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Rental]
	details gRepo.Repository[model.RentalDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Rental {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rental](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.RentalDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// GetDetail reads one rental joined with its customer and color.
func (repo *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.RentalDetail, error) {
	return repo.details.Get(ctx, filter) //nolint:wrapcheck
}

// GetDetails reads rentals joined with their customer and color.
func (repo *repositoryImpl) GetDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.RentalDetail, error) {
	return repo.details.GetAll(ctx, params, filter) //nolint:wrapcheck
}
