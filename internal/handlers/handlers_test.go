package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupEventRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandlers(nil, nil)

	r := gin.New()
	r.POST("/api/events", h.CreateEvent)
	r.PUT("/api/events/:id", h.UpdateEvent)
	return r
}

func TestUpdateEventRejectsInvalidID(t *testing.T) {
	r := setupEventRouter()

	body := `{"title":"Концерт","starts_at":"2024-05-01T19:00:00Z","ends_at":"2024-05-01T21:00:00Z"}`
	req, _ := http.NewRequest("PUT", "/api/events/abc", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid event id")
}

func TestUpdateEventRejectsMalformedBody(t *testing.T) {
	r := setupEventRouter()

	req, _ := http.NewRequest("PUT", "/api/events/1", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateEventRejectsInvertedWindow(t *testing.T) {
	r := setupEventRouter()

	body := `{"title":"Концерт","starts_at":"2024-05-01T21:00:00Z","ends_at":"2024-05-01T19:00:00Z"}`
	req, _ := http.NewRequest("PUT", "/api/events/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ends_at must be after starts_at")
}

func TestCreateEventRejectsMissingTitle(t *testing.T) {
	r := setupEventRouter()

	body := `{"starts_at":"2024-05-01T19:00:00Z","ends_at":"2024-05-01T21:00:00Z"}`
	req, _ := http.NewRequest("POST", "/api/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
