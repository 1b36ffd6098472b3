package dto

import (
	"rentdesk/internal/domains/tableclothcolor/model"
	gDto "rentdesk/shared/dto"
	gModel "rentdesk/shared/model"
	"rentdesk/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateColorRequest struct {
	Name     string `json:"name"      validate:"required,notblank,max=255"`
	HexColor string `json:"hex_color" validate:"required,len=7,hexcolor"`
}

func (c *CreateColorRequest) ToModel(tenantID string) model.TableclothColor {
	now := timezone.Now()

	return model.TableclothColor{
		ID:       uuid.NewString(),
		UserID:   tenantID,
		Name:     strings.TrimSpace(c.Name),
		HexColor: strings.ToUpper(c.HexColor),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  tenantID,
			ModifiedBy: tenantID,
		},
	}
}

type UpdateColorRequest struct {
	Name     string `db:"name"      json:"name"      validate:"omitempty,notblank,max=255"`
	HexColor string `db:"hex_color" json:"hex_color" validate:"omitempty,len=7,hexcolor"`
}

type ColorResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HexColor string `json:"hex_color"`
	gDto.Metadata
}

func (r *ColorResponse) FromModel(model model.TableclothColor) {
	r.ID = model.ID
	r.Name = model.Name
	r.HexColor = model.HexColor
	r.Metadata.FromModel(model.Metadata)
}

type GetColorsResponse struct {
	Colors []ColorResponse `json:"colors"`
}

func (r *GetColorsResponse) FromModels(models []model.TableclothColor) {
	r.Colors = make([]ColorResponse, len(models))
	for i, mod := range models {
		r.Colors[i].FromModel(mod)
	}
}
