package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/tableclothcolor/model"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"
)

type TableclothColor interface {
	Insert(ctx context.Context, model model.TableclothColor) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TableclothColor, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TableclothColor, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.TableclothColor]
}

func New(db *postgres.Connection, otel otel.Otel) TableclothColor {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.TableclothColor](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
