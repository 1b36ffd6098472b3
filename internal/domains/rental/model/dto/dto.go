package dto

import (
	customerDto "rentdesk/internal/domains/customer/model/dto"
	"rentdesk/internal/domains/rental/model"
	"rentdesk/shared"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type CreateRentalRequest struct {
	CustomerID         string                             `json:"customer_id"         validate:"omitempty,uuid"`
	Customer           *customerDto.CreateCustomerRequest `json:"customer"            validate:"omitempty"`
	ChairQuantity      int                                `json:"chair_quantity"      validate:"gte=0"`
	TableQuantity      int                                `json:"table_quantity"      validate:"gte=0"`
	TableclothQuantity int                                `json:"tablecloth_quantity" validate:"gte=0"`
	TableclothColorID  string                             `json:"tablecloth_color_id" validate:"omitempty,uuid"`
	Amount             float64                            `json:"amount"              validate:"gte=0,lte=99999999.99,cents"`
	StartDate          *time.Time                         `json:"start_date"`
	EndDate            *time.Time                         `json:"end_date"`
	LocationName       string                             `json:"location_name"       validate:"omitempty,max=255"`
	LocationLat        *float64                           `json:"location_lat"        validate:"omitempty,latitude"`
	LocationLng        *float64                           `json:"location_lng"        validate:"omitempty,longitude"`
	Notes              string                             `json:"notes"               validate:"omitempty,max=2000"`
}

// Validate checks the rules that span several fields.
func (c *CreateRentalRequest) Validate() error {
	switch {
	case c.CustomerID == "" && c.Customer == nil:
		return failure.Validation("customer_id", "customer_id or customer is required")
	case c.CustomerID != "" && c.Customer != nil:
		return failure.Validation("customer", "customer cannot be combined with customer_id")
	}

	if err := model.ValidateQuantities(c.ChairQuantity, c.TableQuantity, c.TableclothQuantity); err != nil {
		return err //nolint:wrapcheck
	}

	return validatePeriod(c.StartDate, c.EndDate)
}

// ToModel builds an active rental owned by customerID.
func (c *CreateRentalRequest) ToModel(tenantID, customerID string) model.Rental {
	now := timezone.Now()

	return model.Rental{
		ID:                 uuid.NewString(),
		UserID:             tenantID,
		CustomerID:         customerID,
		TableclothColorID:  optional(c.TableclothColorID),
		ItemType:           model.Classify(c.ChairQuantity, c.TableQuantity, c.TableclothQuantity),
		Quantity:           c.ChairQuantity + c.TableQuantity + c.TableclothQuantity,
		ChairQuantity:      c.ChairQuantity,
		TableQuantity:      c.TableQuantity,
		TableclothQuantity: c.TableclothQuantity,
		Amount:             c.Amount,
		StartDate:          c.StartDate,
		EndDate:            c.EndDate,
		LocationName:       optional(c.LocationName),
		LocationLat:        c.LocationLat,
		LocationLng:        c.LocationLng,
		Notes:              optional(c.Notes),
		Returned:           false,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  tenantID,
			ModifiedBy: tenantID,
		},
	}
}

// UpdateRentalRequest edits a rental. Nil fields are left untouched; an empty
// string clears the optional text fields and the tablecloth color.
type UpdateRentalRequest struct {
	ChairQuantity      *int       `json:"chair_quantity"      validate:"omitempty,gte=0"`
	TableQuantity      *int       `json:"table_quantity"      validate:"omitempty,gte=0"`
	TableclothQuantity *int       `json:"tablecloth_quantity" validate:"omitempty,gte=0"`
	TableclothColorID  *string    `json:"tablecloth_color_id"`
	Amount             *float64   `json:"amount"              validate:"omitempty,gte=0,lte=99999999.99,cents"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	LocationName       *string    `json:"location_name"       validate:"omitempty,max=255"`
	LocationLat        *float64   `json:"location_lat"        validate:"omitempty,latitude"`
	LocationLng        *float64   `json:"location_lng"        validate:"omitempty,longitude"`
	Notes              *string    `json:"notes"               validate:"omitempty,max=2000"`
}

func (u *UpdateRentalRequest) Validate() error {
	if u.TableclothColorID != nil && *u.TableclothColorID != "" {
		if err := uuid.Validate(*u.TableclothColorID); err != nil {
			return failure.Validation("tablecloth_color_id", "tablecloth_color_id must be a valid UUID")
		}
	}

	return nil
}

// Fields merges the request into current and returns the columns to update,
// with item_type and quantity recomputed whenever a quantity changes.
func (u *UpdateRentalRequest) Fields(current model.Rental) (map[string]any, error) {
	fields := map[string]any{}

	if u.ChairQuantity != nil || u.TableQuantity != nil || u.TableclothQuantity != nil {
		chairs := valueOr(u.ChairQuantity, current.ChairQuantity)
		tables := valueOr(u.TableQuantity, current.TableQuantity)
		tablecloths := valueOr(u.TableclothQuantity, current.TableclothQuantity)

		if err := model.ValidateQuantities(chairs, tables, tablecloths); err != nil {
			return nil, err //nolint:wrapcheck
		}

		fields[model.FieldChairQuantity] = chairs
		fields[model.FieldTableQuantity] = tables
		fields[model.FieldTableclothQuantity] = tablecloths
		fields[model.FieldQuantity] = chairs + tables + tablecloths
		fields[model.FieldItemType] = model.Classify(chairs, tables, tablecloths)
	}

	if u.StartDate != nil || u.EndDate != nil {
		start := current.StartDate
		if u.StartDate != nil {
			start = u.StartDate
		}

		end := current.EndDate
		if u.EndDate != nil {
			end = u.EndDate
		}

		if err := validatePeriod(start, end); err != nil {
			return nil, err
		}

		if u.StartDate != nil {
			fields[model.FieldStartDate] = *u.StartDate
		}

		if u.EndDate != nil {
			fields[model.FieldEndDate] = *u.EndDate
		}
	}

	if u.Amount != nil {
		fields[model.FieldAmount] = *u.Amount
	}

	if u.TableclothColorID != nil {
		fields[model.FieldTableclothColorID] = optional(*u.TableclothColorID)
	}

	if u.LocationName != nil {
		fields[model.FieldLocationName] = optional(*u.LocationName)
	}

	if u.LocationLat != nil {
		fields[model.FieldLocationLat] = *u.LocationLat
	}

	if u.LocationLng != nil {
		fields[model.FieldLocationLng] = *u.LocationLng
	}

	if u.Notes != nil {
		fields[model.FieldNotes] = optional(*u.Notes)
	}

	return fields, nil
}

type CustomerSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

type ColorSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HexColor string `json:"hex_color"`
}

type RentalResponse struct {
	ID                 string          `json:"id"`
	Customer           CustomerSummary `json:"customer"`
	TableclothColor    *ColorSummary   `json:"tablecloth_color"`
	ItemType           string          `json:"item_type"`
	Quantity           int             `json:"quantity"`
	ChairQuantity      int             `json:"chair_quantity"`
	TableQuantity      int             `json:"table_quantity"`
	TableclothQuantity int             `json:"tablecloth_quantity"`
	Amount             float64         `json:"amount"`
	StartDate          *string         `json:"start_date"`
	EndDate            *string         `json:"end_date"`
	LocationName       *string         `json:"location_name"`
	LocationLat        *float64        `json:"location_lat"`
	LocationLng        *float64        `json:"location_lng"`
	Notes              *string         `json:"notes"`
	Returned           bool            `json:"returned"`
	Status             string          `json:"status"`
	Overdue            bool            `json:"overdue"`
	DueToday           bool            `json:"due_today"`
	gDto.Metadata
}

// FromModel fills the response from detail. now decides the overdue and
// due-today flags, which only ever apply to active rentals.
func (r *RentalResponse) FromModel(detail model.RentalDetail, now time.Time) {
	r.ID = detail.ID
	r.Customer = CustomerSummary{
		ID:    detail.CustomerID,
		Name:  detail.CustomerName,
		Phone: detail.CustomerPhone,
	}

	r.TableclothColor = nil
	if detail.TableclothColorID != nil && detail.ColorName != nil {
		r.TableclothColor = &ColorSummary{
			ID:       *detail.TableclothColorID,
			Name:     *detail.ColorName,
			HexColor: valueOr(detail.ColorHex, ""),
		}
	}

	r.ItemType = string(detail.ItemType)
	r.Quantity = detail.Quantity
	r.ChairQuantity = detail.ChairQuantity
	r.TableQuantity = detail.TableQuantity
	r.TableclothQuantity = detail.TableclothQuantity
	r.Amount = detail.Amount
	r.StartDate = formatDate(detail.StartDate)
	r.EndDate = formatDate(detail.EndDate)
	r.LocationName = detail.LocationName
	r.LocationLat = detail.LocationLat
	r.LocationLng = detail.LocationLng
	r.Notes = detail.Notes
	r.Returned = detail.Returned

	r.Status = StatusInactive
	r.Overdue = false
	r.DueToday = false

	if detail.Active() {
		r.Status = StatusActive

		if detail.EndDate != nil {
			r.DueToday = timezone.SameDay(*detail.EndDate, now)
			r.Overdue = !r.DueToday && detail.EndDate.Before(now)
		}
	}

	r.Metadata.FromModel(detail.Metadata)
}

type GetRentalsResponse struct {
	Rentals   []RentalResponse `json:"rentals"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

// FromModels pages through details when limit is positive, otherwise returns them all.
func (r *GetRentalsResponse) FromModels(details []model.RentalDetail, page, limit int, now time.Time) {
	r.TotalData = len(details)
	r.TotalPage = shared.CalculateTotalPage(len(details), limit)

	if limit > 0 {
		page = max(page, constant.DefaultValuePage)

		start := len(details)
		if page-1 < r.TotalPage {
			start = min((page-1)*limit, len(details))
		}

		details = details[start:min(start+limit, len(details))]
	}

	r.Rentals = make([]RentalResponse, len(details))
	for i, detail := range details {
		r.Rentals[i].FromModel(detail, now)
	}
}

func validatePeriod(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return failure.Validation("end_date", "end_date must not be before start_date")
	}

	return nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}

func valueOr[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}

	return *value
}
