package customer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "rentdesk/infras/otel/mocks"
	customerMocks "rentdesk/internal/domains/customer/mocks"
	"rentdesk/internal/domains/customer/model/dto"
	"rentdesk/internal/handlers/customer"
	"rentdesk/shared/constant"
	gDto "rentdesk/shared/dto"
	"rentdesk/shared/failure"
)

const (
	tenantID   = "7c1d0d9e-3f51-4a8e-b2f5-0f4c55e7a9d2"
	customerID = "c4b1f8a0-2e6d-4c3b-9a71-5d0e8f2b6a44"
)

func newRouter(t *testing.T, withTenant bool) (http.Handler, *customerMocks.MockCustomerService) {
	t.Helper()

	svc := customerMocks.NewMockCustomerService(gomock.NewController(t))
	handler := customer.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if withTenant {
				r = r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, tenantID))
			}

			next.ServeHTTP(w, r)
		})
	})
	handler.Router(router)

	return router, svc
}

func serve(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	return rec, payload
}

func TestHandler_CreateCustomer(t *testing.T) {
	t.Run("created for the caller's tenant", func(t *testing.T) {
		router, svc := newRouter(t, true)

		svc.EXPECT().
			Create(gomock.Any(), tenantID, dto.CreateCustomerRequest{Name: "Joana Lima", Phone: "+55 11 98888-0000"}).
			Return(dto.CustomerResponse{ID: customerID, Name: "Joana Lima"}, nil)

		rec, body := serve(t, router, http.MethodPost, "/customers", `{"name":"Joana Lima","phone":"+55 11 98888-0000"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, customerID, body["data"].(map[string]any)["id"])
	})

	t.Run("blank name", func(t *testing.T) {
		router, _ := newRouter(t, true)

		rec, body := serve(t, router, http.MethodPost, "/customers", `{"name":"   "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name", body["field"])
	})

	t.Run("invalid email", func(t *testing.T) {
		router, _ := newRouter(t, true)

		rec, body := serve(t, router, http.MethodPost, "/customers", `{"name":"Joana","email":"joana"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "email", body["field"])
	})

	t.Run("no tenant on the request", func(t *testing.T) {
		router, _ := newRouter(t, false)

		rec, _ := serve(t, router, http.MethodPost, "/customers", `{"name":"Joana"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_GetCustomers(t *testing.T) {
	t.Run("passes search and default paging", func(t *testing.T) {
		router, svc := newRouter(t, true)

		svc.EXPECT().
			GetAll(gomock.Any(), tenantID, gDto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}, "lima").
			Return(dto.GetCustomersResponse{TotalData: 1, TotalPage: 1, Customers: []dto.CustomerResponse{{ID: customerID}}}, nil)

		rec, body := serve(t, router, http.MethodGet, "/customers?search=lima", "")

		require.Equal(t, http.StatusOK, rec.Code)

		data := body["data"].(map[string]any)
		assert.InDelta(t, 1, data["total_data"], 0)
		assert.Len(t, data["customers"], 1)
	})

	t.Run("service failure", func(t *testing.T) {
		router, svc := newRouter(t, true)

		svc.EXPECT().
			GetAll(gomock.Any(), tenantID, gomock.Any(), "").
			Return(dto.GetCustomersResponse{}, failure.DataAccess("customer", "get summaries", assert.AnError))

		rec, _ := serve(t, router, http.MethodGet, "/customers", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_GetCustomerByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, svc := newRouter(t, true)

		svc.EXPECT().Get(gomock.Any(), tenantID, customerID).Return(dto.CustomerResponse{ID: customerID, Name: "Joana"}, nil)

		rec, body := serve(t, router, http.MethodGet, "/customers/"+customerID, "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Joana", body["data"].(map[string]any)["name"])
	})

	t.Run("not found", func(t *testing.T) {
		router, svc := newRouter(t, true)

		svc.EXPECT().Get(gomock.Any(), tenantID, customerID).Return(dto.CustomerResponse{}, failure.NotFound("customer not found"))

		rec, body := serve(t, router, http.MethodGet, "/customers/"+customerID, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "customer not found", body["error"])
	})
}

func TestHandler_UpdateCustomer(t *testing.T) {
	router, svc := newRouter(t, true)

	phone := "11 3333-4444"

	svc.EXPECT().
		Update(gomock.Any(), tenantID, dto.UpdateCustomerRequest{Phone: &phone}, customerID).
		Return(nil)

	rec, body := serve(t, router, http.MethodPatch, "/customers/"+customerID, `{"phone":"11 3333-4444"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Customer updated successfully", body["message"])
}

func TestHandler_UpdateCustomerValidatesContacts(t *testing.T) {
	t.Run("empty email clears it", func(t *testing.T) {
		router, svc := newRouter(t, true)

		empty := ""
		svc.EXPECT().Update(gomock.Any(), tenantID, dto.UpdateCustomerRequest{Email: &empty}, customerID).Return(nil)

		rec, _ := serve(t, router, http.MethodPatch, "/customers/"+customerID, `{"email":""}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed email", func(t *testing.T) {
		router, _ := newRouter(t, true)

		rec, body := serve(t, router, http.MethodPatch, "/customers/"+customerID, `{"email":"joana"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "email", body["field"])
		assert.Contains(t, body["error"], "must be a valid email address or empty")
	})

	t.Run("name cannot be blanked", func(t *testing.T) {
		router, _ := newRouter(t, true)

		rec, body := serve(t, router, http.MethodPatch, "/customers/"+customerID, `{"name":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name", body["field"])
	})
}

func TestHandler_DeleteCustomer(t *testing.T) {
	router, svc := newRouter(t, true)

	svc.EXPECT().Delete(gomock.Any(), tenantID, customerID).Return(nil)

	rec, body := serve(t, router, http.MethodDelete, "/customers/"+customerID, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Customer deleted successfully", body["message"])
}
