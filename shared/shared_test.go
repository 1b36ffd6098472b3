package shared_test

import (
	"context"
	"net/http"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	"rentdesk/shared/dto"
	"rentdesk/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no rows still has one page", total: 0, limit: 10, expected: 1},
		{name: "unpaged listing", total: 42, limit: 0, expected: 1},
		{name: "negative limit", total: 42, limit: -1, expected: 1},
		{name: "exact pages", total: 40, limit: 10, expected: 4},
		{name: "partial last page", total: 41, limit: 10, expected: 5},
		{name: "limit above total", total: 3, limit: 10, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type colorPatch struct {
	Name     string  `db:"name"`
	HexCode  *string `db:"hex_code"`
	Quantity int     `db:"quantity"`
	Internal string
}

func TestTransformFields(t *testing.T) {
	hex := "#FFFFFF"

	t.Run("only non-zero tagged fields are kept", func(t *testing.T) {
		fields := shared.TransformFields(colorPatch{Name: "Branco", HexCode: &hex, Internal: "x"}, "tenant-1")

		assert.Equal(t, "Branco", fields["name"])
		assert.Equal(t, &hex, fields["hex_code"])
		assert.NotContains(t, fields, "quantity")
		assert.NotContains(t, fields, "Internal")
		assert.Equal(t, "tenant-1", fields[constant.FieldModifiedBy])
		assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])
	})

	t.Run("empty patch only touches audit columns", func(t *testing.T) {
		fields := shared.TransformFields(colorPatch{}, "tenant-1")

		assert.Len(t, fields, 2)
		assert.Contains(t, fields, constant.FieldModifiedAt)
		assert.Contains(t, fields, constant.FieldModifiedBy)
	})
}

func TestFilterByID(t *testing.T) {
	where, args := shared.FilterByID("u-1", "id", "users").GetWhereClause()

	assert.Equal(t, "(users.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "u-1"}, args)
}

func TestFilterByTenant(t *testing.T) {
	where, args := shared.FilterByTenant("tenant-1", "customers").GetWhereClause()

	assert.Equal(t, "(customers.user_id = :user_id)", where)
	assert.Equal(t, "tenant-1", args["user_id"])
}

func TestFilterByIDAndTenant(t *testing.T) {
	where, args := shared.FilterByIDAndTenant("rental-1", "id", "tenant-1", "rentals").GetWhereClause()

	assert.Equal(t, "(rentals.user_id = :user_id AND rentals.id = :id)", where)
	assert.Equal(t, map[string]any{"user_id": "tenant-1", "id": "rental-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "rental:tenant-1:get:abc", shared.BuildCacheKey("rental", "tenant-1", "get", "abc"))
	assert.Equal(t, "rental", shared.BuildCacheKey("rental"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10, SortBy: "name", SortDir: dto.SortDirAsc}

	first := shared.BuildCacheKeyWithQuery("customer:gets", "tenant-1", params, shared.FilterByTenant("tenant-1", "customers"))
	second := shared.BuildCacheKeyWithQuery("customer:gets", "tenant-1", params, shared.FilterByTenant("tenant-1", "customers"))
	other := shared.BuildCacheKeyWithQuery("customer:gets", "tenant-1", params, shared.FilterByTenant("tenant-2", "customers"))

	params.Page = 2
	nextPage := shared.BuildCacheKeyWithQuery("customer:gets", "tenant-1", params, shared.FilterByTenant("tenant-1", "customers"))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.NotEqual(t, first, nextPage)
	assert.True(t, len(first) > len("customer:gets:tenant-1:"))
	assert.Equal(t, "customer:gets:tenant-1:", first[:len("customer:gets:tenant-1:")])
}

func TestGetTenantID(t *testing.T) {
	_, err := shared.GetTenantID(context.Background())
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = shared.GetTenantID(context.WithValue(context.Background(), constant.ContextKeyUserID, ""))
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	tenantID, err := shared.GetTenantID(context.WithValue(context.Background(), constant.ContextKeyUserID, "tenant-1"))
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", tenantID)
}
