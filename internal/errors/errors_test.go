package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "hallpoint/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	dbCause := errors.New("pq: connection refused")

	tests := []struct {
		name     string
		err      error
		status   int
		category string
		message  string
	}{
		{"validation", apperror.NewValidationError("Missing required fields"), http.StatusBadRequest, "VALIDATION_ERROR", "Missing required fields"},
		{"duplicate vote", apperror.NewDuplicateVoteError(), http.StatusBadRequest, "DUPLICATE_VOTE", "You already liked this meal"},
		{"unauthorized", apperror.NewUnauthorizedError("Unauthorized Access: No token"), http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized Access: No token"},
		{"forbidden", apperror.NewForbiddenError("Forbidden: Invalid token"), http.StatusForbidden, "FORBIDDEN", "Forbidden: Invalid token"},
		{"not found", apperror.NewNotFoundError("Meal not found"), http.StatusNotFound, "NOT_FOUND", "Meal not found"},
		{"conflict", apperror.NewConflictError("Already requested"), http.StatusBadRequest, "CONFLICT", "Already requested"},
		{"too many requests", apperror.NewTooManyRequestsError("Too many requests"), http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests"},
		{"db error hides cause", apperror.NewDBError("failed to insert meal", dbCause), http.StatusInternalServerError, "INTERNAL_ERROR", "Internal Server Error"},
		{"wrapped app error", fmt.Errorf("falha no serviço: %w", apperror.NewNotFoundError("User not found")), http.StatusNotFound, "NOT_FOUND", "User not found"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, category, message := apperror.MapToHTTPStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestNewDBError_UnwrapKeepsCause(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := apperror.NewDBError("failed to publish meal", cause)

	assert.ErrorIs(t, err, cause)
	assert.NotContains(t, err.(apperror.AppError).Message(), "deadlock")
}
