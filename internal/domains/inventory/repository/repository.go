package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/inventory/model"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"
)

type Inventory interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Inventory, error)
	Upsert(ctx context.Context, inventory model.Inventory) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Inventory]
}

func New(db *postgres.Connection, otel otel.Otel) Inventory {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Inventory](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// Upsert stores the totals of inventory.UserID, replacing any previous row of that tenant.
func (repo *repositoryImpl) Upsert(ctx context.Context, inventory model.Inventory) error {
	return repo.Repository.Upsert(ctx, inventory, model.FieldUserID) //nolint:wrapcheck
}
