package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sahna/internal/models"
)

// CreateEvent - POST /api/events
// Создать событие (с опциональным правилом повторения)
func (h *Handlers) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at must be after starts_at"})
		return
	}

	response, err := h.services.Events.Create(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Failed to create event", "error", err)
		respondError(c, err, "Failed to create event")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// UpdateEvent - PUT /api/events/:id
// Обновить событие и его правило повторения
func (h *Handlers) UpdateEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ends_at must be after starts_at"})
		return
	}

	if err := h.services.Events.Update(c.Request.Context(), eventID, &req); err != nil {
		slog.Error("Failed to update event", "event_id", eventID, "error", err)
		respondError(c, err, "Failed to update event")
		return
	}

	// The cached expansion describes the old rule now
	if h.valkeyClient != nil {
		if err := h.valkeyClient.InvalidateOccurrences(c.Request.Context(), eventID); err != nil {
			slog.Warn("Failed to invalidate occurrences cache", "event_id", eventID, "error", err)
		}
	}

	c.Status(http.StatusOK)
}

// ListEvents - GET /api/events
// Получить список событий
func (h *Handlers) ListEvents(c *gin.Context) {
	query := c.Query("query")
	date := c.Query("date")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}

	if pageSize < 1 || pageSize > 20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 20"})
		return
	}

	response, err := h.services.Events.List(c.Request.Context(), query, date, page, pageSize)
	if err != nil {
		slog.Error("Failed to list events", "error", err)
		respondError(c, err, "Failed to list events")
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListOccurrences - GET /api/events/:id/occurrences
// Развернуть правило повторения события в конкретные вхождения
func (h *Handlers) ListOccurrences(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	// Expansion is recomputed on every request; serve the cached raw JSON
	// when we have it so hot events don't re-expand a five-year daily rule
	if h.valkeyClient != nil {
		if rawJSON, err := h.valkeyClient.GetOccurrencesRaw(c.Request.Context(), eventID); err == nil {
			slog.Info("Cache hit for occurrences", "event_id", eventID)
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	response, err := h.services.Events.ListOccurrences(c.Request.Context(), eventID)
	if err != nil {
		slog.Error("Failed to list occurrences", "event_id", eventID, "error", err)
		respondError(c, err, "Failed to list occurrences")
		return
	}

	if h.valkeyClient != nil {
		if err := h.valkeyClient.SetOccurrences(c.Request.Context(), eventID, response); err != nil {
			slog.Warn("Failed to cache occurrences", "event_id", eventID, "error", err)
		}
	}

	c.JSON(http.StatusOK, response)
}

// ListTicketClasses - GET /api/events/:id/ticket-classes
// Получить категории билетов события
func (h *Handlers) ListTicketClasses(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || eventID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
		return
	}

	response, err := h.services.Events.ListTicketClasses(c.Request.Context(), eventID)
	if err != nil {
		slog.Error("Failed to list ticket classes", "event_id", eventID, "error", err)
		respondError(c, err, "Failed to list ticket classes")
		return
	}

	c.JSON(http.StatusOK, response)
}
