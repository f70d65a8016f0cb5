package consumers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nats-io/stan.go"

	"sahna/internal/models"
	"sahna/internal/repository"
)

type Handlers struct {
	repos *repository.Repositories
}

func NewHandlers(repos *repository.Repositories) *Handlers {
	return &Handlers{repos: repos}
}

func (h *Handlers) HandleEventCreated(m *stan.Msg) {
	var event models.EventCreatedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal event created event", "error", err)
		return
	}

	slog.Info("Processing event created event",
		"event_id", event.EventID, "title", event.Title, "recurring", event.Recurring)

	m.Ack()
}

func (h *Handlers) HandleTicketIssued(m *stan.Msg) {
	var event models.TicketIssuedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal ticket issued event", "error", err)
		return
	}

	slog.Info("Processing ticket issued event",
		"event_id", event.EventID, "user_id", event.UserID, "count", len(event.TicketIDs))

	// Audit trail only for now; notification delivery lives outside this service

	m.Ack()
}

func (h *Handlers) HandleTicketUsed(m *stan.Msg) {
	var event models.TicketUsedEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal ticket used event", "error", err)
		return
	}

	slog.Info("Processing ticket used event", "ticket_id", event.TicketID, "used_by", event.UsedBy)

	m.Ack()
}

func (h *Handlers) HandleTicketCanceled(m *stan.Msg) {
	var event models.TicketCanceledEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal ticket canceled event", "error", err)
		return
	}

	slog.Info("Processing ticket canceled event",
		"ticket_id", event.TicketID, "canceled_by", event.CanceledBy, "reason", event.Reason)

	// Sanity check that the cancellation actually landed
	ctx := context.Background()
	ticket, err := h.repos.Tickets.GetByID(ctx, event.TicketID)
	if err != nil {
		slog.Error("Failed to get ticket", "ticket_id", event.TicketID, "error", err)
		return
	}
	if ticket != nil && ticket.Status != models.TicketStatusCanceled {
		slog.Warn("Ticket status diverged from cancellation event",
			"ticket_id", event.TicketID, "status", ticket.Status)
	}

	m.Ack()
}

func (h *Handlers) HandleTicketExpired(m *stan.Msg) {
	var event models.TicketExpiredEvent
	if err := json.Unmarshal(m.Data, &event); err != nil {
		slog.Error("Failed to unmarshal ticket expired event", "error", err)
		return
	}

	slog.Info("Processing ticket expired event", "ticket_id", event.TicketID)

	m.Ack()
}
