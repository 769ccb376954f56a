package response_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/response"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	response.JSON(rec, http.StatusCreated, map[string]string{"insertedId": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"insertedId":"abc"}`, rec.Body.String())
}

func TestError_TypedError(t *testing.T) {
	log := logger.New(io.Discard, "disabled")
	req := httptest.NewRequest(http.MethodGet, "/meals/x", nil)
	rec := httptest.NewRecorder()

	response.Error(rec, req, log, apperror.NewNotFoundError("Meal not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, 404, body.Code)
	assert.Equal(t, "NOT_FOUND", body.Category)
	assert.Equal(t, "Meal not found", body.Message)
}

func TestError_HidesInternalCause(t *testing.T) {
	log := logger.New(io.Discard, "disabled")
	req := httptest.NewRequest(http.MethodGet, "/meals", nil)
	rec := httptest.NewRecorder()

	response.Error(rec, req, log, apperror.NewDBError("falha no select", errors.New("pq: relation does not exist")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.NotContains(t, rec.Body.String(), "relation")
}

func TestError_UntypedError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	response.Error(rec, req, nil, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "UNKNOWN_ERROR", decodeError(t, rec).Category)
}
