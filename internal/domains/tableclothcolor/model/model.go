package model

import (
	"rentdesk/shared/model"
)

const (
	TableName  = "tablecloth_colors"
	EntityName = "tablecloth color"

	FieldID       = "id"
	FieldUserID   = "user_id"
	FieldName     = "name"
	FieldHexColor = "hex_color"
)

type TableclothColor struct {
	ID       string `db:"id"`
	UserID   string `db:"user_id"`
	Name     string `db:"name"`
	HexColor string `db:"hex_color"`
	model.Metadata
}
