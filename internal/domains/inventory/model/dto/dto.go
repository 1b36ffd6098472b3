package dto

import (
	"rentdesk/internal/domains/inventory/model"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"

	"github.com/google/uuid"
)

type UpsertInventoryRequest struct {
	TotalChairs      *int `json:"total_chairs"      validate:"required,gte=0"`
	TotalTables      *int `json:"total_tables"      validate:"required,gte=0"`
	TotalTablecloths *int `json:"total_tablecloths" validate:"required,gte=0"`
}

func (r *UpsertInventoryRequest) ToModel(tenantID string) model.Inventory {
	now := timezone.Now()

	return model.Inventory{
		ID:               uuid.NewString(),
		UserID:           tenantID,
		TotalChairs:      *r.TotalChairs,
		TotalTables:      *r.TotalTables,
		TotalTablecloths: *r.TotalTablecloths,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  tenantID,
			ModifiedBy: tenantID,
		},
	}
}

type InventoryResponse struct {
	TotalChairs      int `json:"total_chairs"`
	TotalTables      int `json:"total_tables"`
	TotalTablecloths int `json:"total_tablecloths"`
}

func (r *InventoryResponse) FromModel(model model.Inventory) {
	r.TotalChairs = model.TotalChairs
	r.TotalTables = model.TotalTables
	r.TotalTablecloths = model.TotalTablecloths
}
