package model

import (
	"rentdesk/shared/model"
)

const (
	TableName  = "customers"
	EntityName = "customer"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldPhone  = "phone"
)

type Customer struct {
	ID     string  `db:"id"`
	UserID string  `db:"user_id"`
	Name   string  `db:"name"`
	Email  *string `db:"email"`
	Phone  *string `db:"phone"`
	model.Metadata
}

// CustomerSummary is a customer with the number of rentals it owns.
type CustomerSummary struct {
	Customer
	RentalCount int `db:"rental_count"`
}
