package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"rentdesk/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "bad request", err: failure.BadRequest(errors.New("quantity must be positive")), code: http.StatusBadRequest, message: "quantity must be positive"},
		{name: "bad request from string", err: failure.BadRequestFromString("invalid year"), code: http.StatusBadRequest, message: "invalid year"},
		{name: "unauthorized", err: failure.Unauthorized("invalid email or password"), code: http.StatusUnauthorized, message: "invalid email or password"},
		{name: "forbidden", err: failure.Forbidden("user account is deactivated"), code: http.StatusForbidden, message: "user account is deactivated"},
		{name: "not found", err: failure.NotFound("rental not found"), code: http.StatusNotFound, message: "rental not found"},
		{name: "conflict", err: failure.Conflict("customer already exists"), code: http.StatusConflict, message: "customer already exists"},
		{name: "role not allowed", err: failure.ForbiddenError, code: http.StatusForbidden, message: "You don't have the required permissions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fail *failure.Failure

			require.ErrorAs(t, tt.err, &fail)
			assert.Equal(t, tt.code, fail.Code)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestBadRequestNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestValidationError(t *testing.T) {
	err := failure.Validation("quantity", "at least one item is required")

	var validation *failure.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "quantity", validation.Field)
	assert.Equal(t, "quantity: at least one item is required", err.Error())

	assert.Equal(t, "year out of range", (&failure.ValidationError{Message: "year out of range"}).Error())
}

func TestDataAccess(t *testing.T) {
	cause := errors.New("connection refused")

	err := failure.DataAccess("rental", "get all", cause)

	var dataErr *failure.DataAccessError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "rental", dataErr.Entity)
	assert.Equal(t, "get all", dataErr.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to get all data (rental): connection refused", err.Error())

	assert.NoError(t, failure.DataAccess("rental", "get", nil))
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "failure", err: failure.NotFound("customer not found"), want: http.StatusNotFound},
		{name: "wrapped failure", err: fmt.Errorf("failed to get customer: %w", failure.NotFound("customer not found")), want: http.StatusNotFound},
		{name: "validation", err: failure.Validation("email", "email must be a valid email"), want: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("create rental: %w", failure.Validation("quantity", "required")), want: http.StatusBadRequest},
		{name: "data access", err: failure.DataAccess("inventory", "upsert", errors.New("timeout")), want: http.StatusInternalServerError},
		{name: "plain error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}
