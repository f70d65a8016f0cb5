package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"sahna/internal/models"
)

// PurchaseTickets - POST /api/tickets/purchase
// Выпустить билеты после успешной оплаты
func (h *Handlers) PurchaseTickets(c *gin.Context) {
	var req models.PurchaseTicketsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := h.services.Tickets.Purchase(c.Request.Context(), &req, userID)
	if err != nil {
		slog.Error("Failed to purchase tickets", "user_id", userID, "ticket_class_id", req.TicketClassID, "error", err)
		respondError(c, err, "Failed to purchase tickets")
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListTickets - GET /api/tickets
// Получить билеты текущего пользователя
func (h *Handlers) ListTickets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response, err := h.services.Tickets.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("Failed to list tickets", "user_id", userID, "error", err)
		respondError(c, err, "Failed to list tickets")
		return
	}

	c.JSON(http.StatusOK, response)
}

// UseTicket - PATCH /api/tickets/use
// Погасить билет
func (h *Handlers) UseTicket(c *gin.Context) {
	var req models.UseTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.services.Tickets.Use(c.Request.Context(), &req, userID); err != nil {
		slog.Error("Failed to use ticket", "ticket_id", req.TicketID, "error", err)
		respondError(c, err, "Failed to use ticket")
		return
	}

	c.Status(http.StatusOK)
}

// CancelTicket - PATCH /api/tickets/cancel
// Отменить билет
func (h *Handlers) CancelTicket(c *gin.Context) {
	var req models.CancelTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.services.Tickets.Cancel(c.Request.Context(), &req, userID); err != nil {
		slog.Error("Failed to cancel ticket", "ticket_id", req.TicketID, "error", err)
		respondError(c, err, "Failed to cancel ticket")
		return
	}

	c.Status(http.StatusOK)
}
