package mealrequest_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hallpoint/internal/api/mealrequest"
	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/middleware"
)

// MockMealRequestService é uma implementação mock da interface MealRequestService
type MockMealRequestService struct {
	mock.Mock
}

func (m *MockMealRequestService) Request(ctx context.Context, caller domain.Caller, sub domain.MealRequestSubmission) (domain.MealRequest, error) {
	args := m.Called(ctx, caller, sub)
	return args.Get(0).(domain.MealRequest), args.Error(1)
}

func (m *MockMealRequestService) Exists(ctx context.Context, mealID, userEmail string) (bool, error) {
	args := m.Called(ctx, mealID, userEmail)
	return args.Bool(0), args.Error(1)
}

func (m *MockMealRequestService) ListByUser(ctx context.Context, caller domain.Caller, email string, page, limit int) (domain.MealRequestPage, error) {
	args := m.Called(ctx, caller, email, page, limit)
	return args.Get(0).(domain.MealRequestPage), args.Error(1)
}

func (m *MockMealRequestService) ListAll(ctx context.Context, page, limit int) (domain.MealRequestPage, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).(domain.MealRequestPage), args.Error(1)
}

func (m *MockMealRequestService) Search(ctx context.Context, keyword string, page, limit int) (domain.MealRequestPage, error) {
	args := m.Called(ctx, keyword, page, limit)
	return args.Get(0).(domain.MealRequestPage), args.Error(1)
}

func (m *MockMealRequestService) Serve(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMealRequestService) Cancel(ctx context.Context, caller domain.Caller, id string) error {
	return m.Called(ctx, caller, id).Error(0)
}

var nadia = domain.Caller{Email: "nadia@hallpoint.dev", Role: domain.RoleUser}

func newRouter(svc *MockMealRequestService) http.Handler {
	h := mealrequest.NewHandler(svc, logger.New(io.Discard, "disabled"))
	r := chi.NewRouter()
	r.Get("/meal-requests", h.ExistsHandler)
	r.Post("/meal-requests", h.CreateHandler)
	r.Get("/meal-requests/user", h.ListMineHandler)
	r.Get("/meal-requests/all", h.ListAllHandler)
	r.Get("/meal-requests/search", h.SearchHandler)
	r.Patch("/meal-requests/serve/{id}", h.ServeHandler)
	r.Delete("/meal-requests/{id}", h.DeleteHandler)
	return r
}

// serveAs simula o Access Guard + RoleGate anexando as claims do caller.
func serveAs(h http.Handler, caller *domain.Caller, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if caller != nil {
		claims := middleware.UserClaims{Email: caller.Email, Role: caller.Role}
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserClaimsKey, claims))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateHandler(t *testing.T) {
	svc := new(MockMealRequestService)
	svc.On("Request", mock.Anything, nadia, domain.MealRequestSubmission{MealID: "m-1", UserEmail: "nadia@hallpoint.dev"}).
		Return(domain.MealRequest{ID: "q-1", Status: domain.RequestPending}, nil)
	svc.On("Request", mock.Anything, nadia, domain.MealRequestSubmission{MealID: "m-2", UserEmail: "nadia@hallpoint.dev"}).
		Return(domain.MealRequest{}, apperror.NewConflictError("Already requested"))

	rec := serveAs(newRouter(svc), &nadia, http.MethodPost, "/meal-requests", `{"mealId":"m-1","userEmail":"nadia@hallpoint.dev"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	rec = serveAs(newRouter(svc), &nadia, http.MethodPost, "/meal-requests", `{"mealId":"m-2","userEmail":"nadia@hallpoint.dev"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"code":400,"category":"CONFLICT","message":"Already requested"}`, rec.Body.String())

	rec = serveAs(newRouter(svc), nil, http.MethodPost, "/meal-requests", `{}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExistsHandler(t *testing.T) {
	svc := new(MockMealRequestService)
	svc.On("Exists", mock.Anything, "m-1", "nadia@hallpoint.dev").Return(true, nil)

	rec := serveAs(newRouter(svc), &nadia, http.MethodGet, "/meal-requests?mealId=m-1&userEmail=nadia@hallpoint.dev", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())
}

func TestListMineHandler(t *testing.T) {
	svc := new(MockMealRequestService)
	svc.On("ListByUser", mock.Anything, nadia, "", 1, 5).Return(domain.MealRequestPage{
		Total: 1, Page: 1, Limit: 5, TotalPages: 1, Data: []domain.MealRequest{},
	}, nil)

	rec := serveAs(newRouter(svc), &nadia, http.MethodGet, "/meal-requests/user?page=1&limit=5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":1,"page":1,"limit":5,"totalPages":1,"requests":[]}`, rec.Body.String())
}

func TestAdminListings(t *testing.T) {
	svc := new(MockMealRequestService)
	svc.On("ListAll", mock.Anything, 0, 0).Return(domain.MealRequestPage{Data: []domain.MealRequest{}}, nil)
	svc.On("Search", mock.Anything, "nadia", 2, 10).Return(domain.MealRequestPage{Total: 11, Page: 2, Limit: 10, TotalPages: 2, Data: []domain.MealRequest{}}, nil)

	rec := serveAs(newRouter(svc), nil, http.MethodGet, "/meal-requests/all", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveAs(newRouter(svc), nil, http.MethodGet, "/meal-requests/search?keyword=nadia&page=2&limit=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"total":11,"page":2,"limit":10,"totalPages":2,"data":[]}`, rec.Body.String())
}

func TestServeHandler(t *testing.T) {
	svc := new(MockMealRequestService)
	svc.On("Serve", mock.Anything, "q-1").Return(nil)
	svc.On("Serve", mock.Anything, "q-x").Return(apperror.NewNotFoundError("Meal request not found"))

	rec := serveAs(newRouter(svc), nil, http.MethodPatch, "/meal-requests/serve/q-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveAs(newRouter(svc), nil, http.MethodPatch, "/meal-requests/serve/q-x", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteHandler(t *testing.T) {
	svc := new(MockMealRequestService)
	svc.On("Cancel", mock.Anything, nadia, "q-1").Return(nil)
	svc.On("Cancel", mock.Anything, nadia, "q-2").Return(apperror.NewForbiddenError("Forbidden: not the request owner"))

	rec := serveAs(newRouter(svc), &nadia, http.MethodDelete, "/meal-requests/q-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Meal request deleted"}`, rec.Body.String())

	rec = serveAs(newRouter(svc), &nadia, http.MethodDelete, "/meal-requests/q-2", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
