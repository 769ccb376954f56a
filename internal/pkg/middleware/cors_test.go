package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"hallpoint/internal/pkg/middleware"
)

func TestCORS_AllowedOrigin(t *testing.T) {
	h := middleware.CORS([]string{"https://hall-point.web.app", " http://localhost:5173"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/meals", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_UnknownOrigin(t *testing.T) {
	h := middleware.CORS([]string{"https://hall-point.web.app"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/meals", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS([]string{"https://hall-point.web.app"})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/upcoming-meals/like/1", nil)
	req.Header.Set("Origin", "https://hall-point.web.app")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
