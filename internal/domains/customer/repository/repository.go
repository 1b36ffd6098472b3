package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/internal/domains/customer/model"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	gRepo "rentdesk/shared/repository"
	"strings"

	"github.com/jmoiron/sqlx"
)

const rentalTable = "rentals"

type Customer interface {
	Insert(ctx context.Context, model model.Customer) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Customer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Customer, error)
	GetSummaries(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.CustomerSummary, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Customer]
}

func New(db *postgres.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// GetSummaries lists customers together with how many rentals each one has.
func (repo *repositoryImpl) GetSummaries(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (summaries []model.CustomerSummary, err error) {
	ctx, scope := repo.Span(ctx, "GetSummaries")
	defer scope.Finish(&err)

	where, args := repo.BuildWhereClause(filter)

	columns := append(repo.QualifiedColumns(), fmt.Sprintf("COUNT(%s.id) AS rental_count", rentalTable))

	query := fmt.Sprintf(
		"SELECT %s FROM %s LEFT JOIN %s ON %s.customer_id = %s.id %s GROUP BY %s.id %s",
		strings.Join(columns, ", "),
		model.TableName,
		rentalTable, rentalTable, model.TableName,
		where,
		model.TableName,
		gRepo.Page(params, args),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.Read(ctx, "get summaries", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &summaries, args)
	})

	return summaries, err
}
