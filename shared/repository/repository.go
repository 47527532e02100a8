package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"rental/infras/otel"
	"rental/infras/postgres"
	"rental/shared/constant"
	"rental/shared/dto"
	"rental/shared/logger"
	"reflect"
	"slices"
	"strings"
)

var (
	errRequiredFilter = errors.New("required filter")
)

type column struct {
	name  string
	table string
	alias string
}

// Repository is a read side helper for tables mapped by `db` tags. Columns of
// embedded structs are flattened, a `table` tag selects a joined table and a
// `column` tag aliases a column.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	join          string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	reflectType := reflect.TypeOf(zero)
	columns := getColumns(tableName, reflectType)

	joinQueryStr := ""
	if joiner, ok := any(zero).(interface{ GetJoinQuery() string }); ok {
		joinQueryStr = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          joinQueryStr,
	}
}

// Get returns the first matching row, or the zero value when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	where, args := repo.BuildWhereClause(filter)
	if where == "" {
		return model, errRequiredFilter
	}

	query := fmt.Sprintf("SELECT %s FROM %s %s %s LIMIT 1", repo.SelectColumns(columns...), repo.table, repo.join, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to prepare statement (%s): %w", repo.entitas, err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &model, args)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return model, nil
}

// SelectColumns renders the select list, optionally restricted to the given column names.
func (repo *Repository[T]) SelectColumns(columnsParam ...string) string {
	columns := []string{}

	for _, col := range repo.columns {
		if len(columnsParam) > 0 && !slices.Contains(columnsParam, col.name) {
			continue
		}

		switch {
		case col.table == "":
			columns = append(columns, col.name)
		case col.alias != "":
			columns = append(columns, fmt.Sprintf("%s.%s AS %s", col.table, col.name, col.alias))
		default:
			columns = append(columns, fmt.Sprintf("%s.%s", col.table, col.name))
		}
	}

	return strings.Join(columns, ", ")
}

func (repo *Repository[T]) BuildWhereClause(filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()

	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf("WHERE %s", where), args
}

func getColumns(table string, reflectType reflect.Type) []column {
	columns := []column{}

	for i := range reflectType.NumField() {
		field := reflectType.Field(i)
		dbTag := field.Tag.Get("db")
		tableField := field.Tag.Get("table")
		colTag := field.Tag.Get("column")

		if tableField == "" {
			tableField = table
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, getColumns(table, field.Type)...)
		}

		if dbTag == "" || dbTag == "-" {
			continue
		}

		if colTag == "" {
			columns = append(columns, column{name: dbTag, table: tableField})
		} else {
			columns = append(columns, column{name: colTag, table: tableField, alias: dbTag})
		}
	}

	return columns
}
