package model

import (
	"rentdesk/shared/model"
	"time"
)

const (
	TableName  = "rentals"
	EntityName = "rental"

	FieldID                 = "id"
	FieldUserID             = "user_id"
	FieldCustomerID         = "customer_id"
	FieldTableclothColorID  = "tablecloth_color_id"
	FieldItemType           = "item_type"
	FieldQuantity           = "quantity"
	FieldChairQuantity      = "chair_quantity"
	FieldTableQuantity      = "table_quantity"
	FieldTableclothQuantity = "tablecloth_quantity"
	FieldAmount             = "amount"
	FieldStartDate          = "start_date"
	FieldEndDate            = "end_date"
	FieldLocationName       = "location_name"
	FieldLocationLat        = "location_lat"
	FieldLocationLng        = "location_lng"
	FieldNotes              = "notes"
	FieldReturned           = "returned"
	FieldCreatedAt          = "created_at"
)

const (
	customerTable = "customers"
	colorTable    = "tablecloth_colors"
)

// Rental is a row of the rentals table.
type Rental struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	CustomerID         string     `db:"customer_id"`
	TableclothColorID  *string    `db:"tablecloth_color_id"`
	ItemType           ItemType   `db:"item_type"`
	Quantity           int        `db:"quantity"`
	ChairQuantity      int        `db:"chair_quantity"`
	TableQuantity      int        `db:"table_quantity"`
	TableclothQuantity int        `db:"tablecloth_quantity"`
	Amount             float64    `db:"amount"`
	StartDate          *time.Time `db:"start_date"`
	EndDate            *time.Time `db:"end_date"`
	LocationName       *string    `db:"location_name"`
	LocationLat        *float64   `db:"location_lat"`
	LocationLng        *float64   `db:"location_lng"`
	Notes              *string    `db:"notes"`
	Returned           bool       `db:"returned"`
	model.Metadata
}

// Active reports whether the rental still holds inventory.
func (r Rental) Active() bool {
	return !r.Returned
}

// RentalDetail is the rental joined with its customer and optional tablecloth color.
// It is the only shape the listing engine and the report aggregator accept.
type RentalDetail struct {
	Rental
	CustomerName  string  `db:"customer_name"  table:"customers"         column:"name"`
	CustomerPhone *string `db:"customer_phone" table:"customers"         column:"phone"`
	ColorName     *string `db:"color_name"     table:"tablecloth_colors" column:"name"`
	ColorHex      *string `db:"color_hex"      table:"tablecloth_colors" column:"hex_color"`
}

// RentalDetailVersion identifies the join contract served by RentalDetail.
const RentalDetailVersion = "v1"

func (RentalDetail) GetJoinQuery() string {
	return "INNER JOIN " + customerTable + " ON " + customerTable + ".id = " + TableName + "." + FieldCustomerID +
		" LEFT JOIN " + colorTable + " ON " + colorTable + ".id = " + TableName + "." + FieldTableclothColorID
}
