package dto

import (
	"rentdesk/internal/domains/customer/model"
	"rentdesk/shared"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

// SortColumns maps the sort_by values accepted by the customer listing to columns.
var SortColumns = map[string]string{
	"name":       model.TableName + "." + model.FieldName,
	"created_at": model.TableName + ".created_at",
}

type CreateCustomerRequest struct {
	Name  string `json:"name"  validate:"required,notblank,max=255"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=64"`
}

func (c *CreateCustomerRequest) ToModel(tenantID string) model.Customer {
	now := timezone.Now()

	return model.Customer{
		ID:     uuid.NewString(),
		UserID: tenantID,
		Name:   strings.TrimSpace(c.Name),
		Email:  optional(strings.ToLower(c.Email)),
		Phone:  optional(c.Phone),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  tenantID,
			ModifiedBy: tenantID,
		},
	}
}

// UpdateCustomerRequest edits a customer. Nil fields are left untouched; an
// empty email or phone clears it. The name can be changed but not cleared.
type UpdateCustomerRequest struct {
	Name  *string `json:"name"  validate:"omitempty,notblank,max=255"`
	Email *string `json:"email" validate:"omitempty,emailorblank,max=255"`
	Phone *string `json:"phone" validate:"omitempty,max=64"`
}

func (u *UpdateCustomerRequest) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil
}

// Fields returns the columns the request changes. Cleared values map to nil.
func (u *UpdateCustomerRequest) Fields() map[string]any {
	fields := map[string]any{}

	if u.Name != nil {
		fields[model.FieldName] = strings.TrimSpace(*u.Name)
	}

	if u.Email != nil {
		fields[model.FieldEmail] = nullable(strings.ToLower(*u.Email))
	}

	if u.Phone != nil {
		fields[model.FieldPhone] = nullable(*u.Phone)
	}

	return fields
}

type CustomerResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	RentalCount *int    `json:"rental_count,omitempty"`
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Metadata.FromModel(model.Metadata)
}

func (r *CustomerResponse) FromSummary(summary model.CustomerSummary) {
	r.FromModel(summary.Customer)

	count := summary.RentalCount
	r.RentalCount = &count
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromSummaries(summaries []model.CustomerSummary, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(summaries))
	for i, summary := range summaries {
		r.Customers[i].FromSummary(summary)
	}
}

func nullable(value string) any {
	if v := optional(value); v != nil {
		return *v
	}

	return nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	return &value
}

// SearchFilter matches term against name, email or phone.
func SearchFilter(term string) gDto.FilterGroup {
	return gDto.Or(
		gDto.ILike(model.TableName, model.FieldName, term),
		gDto.ILike(model.TableName, model.FieldEmail, term),
		gDto.ILike(model.TableName, model.FieldPhone, term),
	)
}
