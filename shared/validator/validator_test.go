package validator_test

import (
	"net/http"
	"rentdesk/shared/failure"
	"rentdesk/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type colorRequest struct {
	Name     string  `json:"name"      validate:"required,notblank,max=20"`
	HexColor string  `json:"hex_color" validate:"required,len=7,hexcolor"`
	Stock    int     `json:"stock"     validate:"gte=0"`
	Owner    string  `json:"owner_id"  validate:"omitempty,uuid"`
	Price    float64 `json:"price"     validate:"gte=0,lte=99999999.99,cents"`
	Internal string  `json:"-"`
}

type period struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (p *period) Validate() error {
	if p.From > p.To {
		return failure.Validation("from", "must not be after to")
	}

	return nil
}

func TestValidateStruct(t *testing.T) {
	valid := func() colorRequest {
		return colorRequest{Name: "Ivory", HexColor: "#FFFFF0", Stock: 3}
	}

	tests := []struct {
		name      string
		mutate    func(r *colorRequest)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(*colorRequest) {}},
		{name: "missing name", mutate: func(r *colorRequest) { r.Name = "" }, wantField: "name", wantMsg: "name is required"},
		{name: "blank name", mutate: func(r *colorRequest) { r.Name = "   " }, wantField: "name", wantMsg: "name must not be blank"},
		{name: "long name", mutate: func(r *colorRequest) { r.Name = strings.Repeat("a", 21) }, wantField: "name", wantMsg: "name must be less than or equal to 20"},
		{name: "short hex", mutate: func(r *colorRequest) { r.HexColor = "#FFF" }, wantField: "hex_color", wantMsg: "hex_color must be 7 characters long"},
		{name: "not hex", mutate: func(r *colorRequest) { r.HexColor = "#GGGGGG" }, wantField: "hex_color", wantMsg: "hex_color must be a hex color code"},
		{name: "negative stock", mutate: func(r *colorRequest) { r.Stock = -1 }, wantField: "stock", wantMsg: "stock must be greater than or equal to 0"},
		{name: "bad owner", mutate: func(r *colorRequest) { r.Owner = "tenant-1" }, wantField: "owner_id", wantMsg: "owner_id must be a valid UUID"},
		{name: "whole price", mutate: func(r *colorRequest) { r.Price = 250 }},
		{name: "price with cents", mutate: func(r *colorRequest) { r.Price = 19.9 }},
		{name: "price with fractions of a cent", mutate: func(r *colorRequest) { r.Price = 19.999 }, wantField: "price", wantMsg: "price must have at most 2 decimal places"},
		{name: "price too large", mutate: func(r *colorRequest) { r.Price = 1e9 }, wantField: "price", wantMsg: "price must be less than or equal to 99999999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			var validation *failure.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantField, validation.Field)
			assert.Equal(t, tt.wantMsg, validation.Message)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateStructRunsCrossFieldRules(t *testing.T) {
	require.NoError(t, validator.ValidateStruct(&period{From: 1, To: 2}))

	err := validator.ValidateStruct(&period{From: 3, To: 2})
	assert.EqualError(t, err, "from: must not be after to")
}

func TestValidate(t *testing.T) {
	t.Run("decodes and validates", func(t *testing.T) {
		var req colorRequest

		err := validator.Validate(strings.NewReader(`{"name":"Ivory","hex_color":"#FFFFF0","stock":2}`), &req)

		require.NoError(t, err)
		assert.Equal(t, "Ivory", req.Name)
		assert.Equal(t, 2, req.Stock)
	})

	t.Run("malformed json is a bad request", func(t *testing.T) {
		var req colorRequest

		err := validator.Validate(strings.NewReader(`{"name":`), &req)

		var fail *failure.Failure
		require.ErrorAs(t, err, &fail)
		assert.Equal(t, http.StatusBadRequest, fail.Code)
		assert.Contains(t, err.Error(), "failed to decode request body")
	})

	t.Run("wrong type is a bad request", func(t *testing.T) {
		var req colorRequest

		err := validator.Validate(strings.NewReader(`{"name":"Ivory","hex_color":"#FFFFF0","stock":"two"}`), &req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rule violation names the json field", func(t *testing.T) {
		var req colorRequest

		err := validator.Validate(strings.NewReader(`{"name":"Ivory","hex_color":"ivory"}`), &req)

		var validation *failure.ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "hex_color", validation.Field)
	})
}
