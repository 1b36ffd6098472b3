package dto_test

import (
	"rentdesk/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterGetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		where     string
		arguments map[string]any
	}{
		{
			name:      "equality",
			filter:    dto.Eq("rentals", "status", "active"),
			where:     "rentals.status = :status",
			arguments: map[string]any{"status": "active"},
		},
		{
			name:      "search escapes wildcards",
			filter:    dto.ILike("customers", "name", "50%_off"),
			where:     "customers.name ILIKE :search_name",
			arguments: map[string]any{"search_name": `%50\%\_off%`},
		},
		{
			name:   "in list",
			filter: dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"active", "returned"}},
			where:  "status IN (:status_0, :status_1)",
			arguments: map[string]any{
				"status_0": "active",
				"status_1": "returned",
			},
		},
		{
			name:      "empty in list matches nothing",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{}},
			where:     "FALSE",
			arguments: map[string]any{},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Table: "rentals", Field: "tablecloth_color_id", Operator: dto.FilterOperatorIsNull},
			where:     "rentals.tablecloth_color_id IS NULL",
			arguments: map[string]any{},
		},
		{
			name:      "unknown operator renders nothing",
			filter:    dto.Filter{Field: "status", Operator: "between"},
			where:     "",
			arguments: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.arguments, args)
		})
	}
}

func TestFilterGroupGetWhereClause(t *testing.T) {
	t.Run("nested groups", func(t *testing.T) {
		group := dto.And(
			dto.Eq("customers", "user_id", "tenant-1"),
			dto.Or(
				dto.ILike("customers", "name", "ana"),
				dto.ILike("customers", "email", "ana"),
			),
		)

		where, args := group.GetWhereClause()

		assert.Equal(t, "(customers.user_id = :user_id AND (customers.name ILIKE :search_name OR customers.email ILIKE :search_email))", where)
		assert.Len(t, args, 3)
	})

	t.Run("empty filters are skipped", func(t *testing.T) {
		group := dto.FilterGroup{Filters: []any{dto.Filter{Operator: "between"}, dto.Eq("", "id", 1)}}

		where, _ := group.GetWhereClause()

		assert.Equal(t, "(id = :id)", where)
	})

	t.Run("empty group", func(t *testing.T) {
		where, args := dto.And().GetWhereClause()

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("with does not mutate the receiver", func(t *testing.T) {
		base := dto.And(dto.Eq("rentals", "user_id", "tenant-1"))
		extended := base.With(dto.Eq("rentals", "id", "r-1"))

		assert.Len(t, base.Filters, 1)
		assert.Len(t, extended.Filters, 2)
	})
}
