package model

import (
	"rentdesk/shared/model"
)

const (
	TableName  = "inventory"
	EntityName = "inventory"

	FieldID               = "id"
	FieldUserID           = "user_id"
	FieldTotalChairs      = "total_chairs"
	FieldTotalTables      = "total_tables"
	FieldTotalTablecloths = "total_tablecloths"
)

// Inventory holds the totals a tenant owns. Available counts are derived from
// active rentals and never stored.
type Inventory struct {
	ID               string `db:"id"`
	UserID           string `db:"user_id"`
	TotalChairs      int    `db:"total_chairs"`
	TotalTables      int    `db:"total_tables"`
	TotalTablecloths int    `db:"total_tablecloths"`
	model.Metadata
}
