package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"rentdesk/infras/otel"
	"rentdesk/infras/postgres"
	"rentdesk/shared/constant"
	"rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"rentdesk/shared/logger"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	errRequiredFilter = errors.New("required filter")
)

// Columns an upsert never overwrites on an existing row.
var immutableColumns = []string{constant.FieldCreatedAt, constant.FieldCreatedBy}

type column struct {
	name  string
	table string
	alias string
}

func (c column) String() string {
	switch {
	case c.table == "":
		return c.name
	case c.alias != "":
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	default:
		return c.table + "." + c.name
	}
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// Repository implements the tenant-agnostic CRUD shared by every table. T is
// scanned through its db tags; a GetJoinQuery method on T adds a join to reads,
// and fields tagged with another table are read but never written.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if joiner, ok := any(zero).(interface{ GetJoinQuery() string }); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

// Span opens a repository scope named after the entity and op.
func (repo *Repository[T]) Span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

// Read prepares query against the read node and hands the statement to scan.
// Failures come back as DataAccessError tagged with op.
func (repo *Repository[T]) Read(ctx context.Context, op, query string, scan func(stmt *sqlx.NamedStmt) error) error {
	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return failure.DataAccess(repo.entity, op, err)
	}
	defer stmt.Close()

	if err = scan(stmt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}

		logger.ErrorWithStack(err)

		return failure.DataAccess(repo.entity, op, err)
	}

	return nil
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, op, query string, arg any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		logger.ErrorWithStack(err)

		return repo.writeError(op, err)
	}

	return nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) (err error) {
	ctx, scope := repo.Span(ctx, "Insert")
	defer scope.Finish(&err)

	return repo.exec(ctx, scope, repo.db.Write, "insert", repo.insertQuery(), model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) (err error) {
	ctx, scope := repo.Span(ctx, "InsertTx")
	defer scope.Finish(&err)

	return repo.exec(ctx, scope, sqltx, "insert", repo.insertQuery(), model)
}

// Upsert inserts model, or overwrites the existing row that shares its
// conflictColumn value. The primary key and creation metadata are kept.
func (repo *Repository[T]) Upsert(ctx context.Context, model T, conflictColumn string) (err error) {
	ctx, scope := repo.Span(ctx, "Upsert")
	defer scope.Finish(&err)

	updates := make([]string, 0, len(repo.InsertColumns))

	for _, col := range repo.InsertColumns {
		if col == conflictColumn || col == repo.primaryColumn || slices.Contains(immutableColumns, col) {
			continue
		}

		updates = append(updates, col+" = EXCLUDED."+col)
	}

	query := fmt.Sprintf("%s ON CONFLICT (%s) DO UPDATE SET %s", repo.insertQuery(), conflictColumn, strings.Join(updates, ", "))

	return repo.exec(ctx, scope, repo.db.Write, "upsert", query, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (exist bool, err error) {
	ctx, scope := repo.Span(ctx, "Exist")
	defer scope.Finish(&err)

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return false, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.Read(ctx, "check exist", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &exist, args)
	})

	return exist, err
}

// Get returns the first matching row, or the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (model T, err error) {
	ctx, scope := repo.Span(ctx, "Get")
	defer scope.Finish(&err)

	where, args := repo.BuildWhereClause(filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.getSelectQuery(columns...), repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.Read(ctx, "get", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &model, args)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) (models []T, err error) {
	ctx, scope := repo.Span(ctx, "GetAll")
	defer scope.Finish(&err)

	where, args := repo.BuildWhereClause(filter)

	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s", repo.getSelectQuery(columns...), repo.table, repo.join, where, Page(params, args))
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.Read(ctx, "get all", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.SelectContext(ctx, &models, args)
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	ctx, scope := repo.Span(ctx, "Count")
	defer scope.Finish(&err)

	where, args := repo.BuildWhereClause(filter)

	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	err = repo.Read(ctx, "count", query, func(stmt *sqlx.NamedStmt) error {
		return stmt.GetContext(ctx, &count, args)
	})

	return count, err
}

// Delete removes the matching rows. An empty filter is refused.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (err error) {
	ctx, scope := repo.Span(ctx, "Delete")
	defer scope.Finish(&err)

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.exec(ctx, scope, repo.db.Write, "delete", fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args)
}

// Update sets the columns in mod on the matching rows. Columns are written in
// name order so the statement text is stable; an empty filter is refused.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (err error) {
	ctx, scope := repo.Span(ctx, "Update")
	defer scope.Finish(&err)

	if len(mod) == 0 {
		return nil
	}

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return errRequiredFilter
	}

	sets := make([]string, 0, len(mod))
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		sets = append(sets, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, mod)

	query := fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where)

	return repo.exec(ctx, scope, repo.db.Write, "update", query, args)
}

// writeError reports constraint violations as client errors and everything else as a DataAccessError.
func (repo *Repository[T]) writeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case constant.PqErrorCodeUniqueViolation:
			return failure.Conflict(repo.entity + " already exists")
		case constant.PqErrorCodeFkViolation:
			return failure.BadRequestFromString(repo.entity + " references a record that does not exist")
		case constant.PqErrorCodeNumericRange:
			return failure.BadRequestFromString(repo.entity + " has a value out of range")
		}
	}

	return failure.DataAccess(repo.entity, op, err)
}

func (repo *Repository[T]) getSelectQuery(only ...string) string {
	columns := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		columns = append(columns, col.String())
	}

	return strings.Join(columns, ", ")
}

// QualifiedColumns lists the writable columns prefixed with the table name.
func (repo *Repository[T]) QualifiedColumns() []string {
	columns := make([]string, len(repo.InsertColumns))
	for i, col := range repo.InsertColumns {
		columns[i] = repo.table + "." + col
	}

	return columns
}

func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where + " ", args
}

// Page renders the ORDER BY and LIMIT/OFFSET tail for params, registering the
// paging arguments in args. Without a positive limit every row is returned.
func Page(params dto.QueryParams, args map[string]any) string {
	var tail []string

	if params.SortBy != "" && params.SortDir != "" {
		tail = append(tail, fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir))
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		args["offset"] = params.Offset()

		tail = append(tail, "LIMIT :limit OFFSET :offset")
	}

	return strings.Join(tail, " ")
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)

			continue
		}

		name := field.Tag.Get("db")
		if name == "" || name == "-" {
			continue
		}

		owner := field.Tag.Get("table")
		if owner == "" {
			owner = table
		}

		if owner == table {
			insertColumns = append(insertColumns, name)
		}

		if source := field.Tag.Get("column"); source != "" {
			columns = append(columns, column{name: source, table: owner, alias: name})
		} else {
			columns = append(columns, column{name: name, table: owner})
		}
	}

	return columns, insertColumns
}
