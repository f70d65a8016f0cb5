package service

import (
	"context"
	"fmt"
	"time"

	apperrors "sahna/internal/errors"
	"sahna/internal/logger"
	"sahna/internal/models"
	"sahna/internal/ticketing"
)

// Narrow store interfaces keep the purchase flow testable without a database;
// the concrete repositories satisfy them.

type ticketStore interface {
	CreateBatch(ctx context.Context, tickets []models.Ticket) error
	GetByID(ctx context.Context, ticketID string) (*models.Ticket, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Ticket, error)
	CountByUserAndClass(ctx context.Context, userID, ticketClassID int64) (int, error)
	UpdateStatus(ctx context.Context, t *models.Ticket) error
}

type ticketClassStore interface {
	GetByID(ctx context.Context, id int64) (*models.TicketClass, error)
	DecrementAvailability(ctx context.Context, id int64, n int) (bool, error)
	IncrementAvailability(ctx context.Context, id int64, n int) error
}

type eventStore interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

type eventPublisher interface {
	Publish(subject string, data interface{}) error
}

type TicketService struct {
	ticketRepo ticketStore
	classRepo  ticketClassStore
	eventRepo  eventStore
	natsClient eventPublisher
}

func NewTicketService(ticketRepo ticketStore, classRepo ticketClassStore, eventRepo eventStore, natsClient eventPublisher) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		classRepo:  classRepo,
		eventRepo:  eventRepo,
		natsClient: natsClient,
	}
}

// Purchase issues tickets for an already-paid request. The policy predicates
// are advisory; the guarded capacity decrement in the repository is what
// actually serializes concurrent purchases.
func (s *TicketService) Purchase(ctx context.Context, req *models.PurchaseTicketsRequest, userID int64) (*models.PurchaseTicketsResponse, error) {
	class, err := s.classRepo.GetByID(ctx, req.TicketClassID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket class: %w", err)
	}
	if class == nil {
		return nil, apperrors.ErrTicketClassNotFound
	}

	event, err := s.eventRepo.GetByID(ctx, class.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	now := time.Now().UTC()

	if !ticketing.IsOnSale(class, now) {
		return nil, apperrors.ErrNotOnSale
	}
	if !ticketing.HasRequestedAmount(class, req.Quantity) {
		return nil, apperrors.ErrNotEnoughCapacity
	}

	held, err := s.ticketRepo.CountByUserAndClass(ctx, userID, class.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count user tickets: %w", err)
	}
	if ticketing.HitReservationLimit(class, req.Quantity, held) {
		return nil, apperrors.ErrReservationLimit
	}

	debited, err := s.classRepo.DecrementAvailability(ctx, class.ID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement availability: %w", err)
	}
	if !debited {
		// Lost the race against a concurrent purchase
		return nil, apperrors.ErrNotEnoughCapacity
	}

	tickets := ticketing.GenerateTickets(req.Quantity, event.Title, event.EndsAt, event.ID, userID, class, now)

	if err := s.ticketRepo.CreateBatch(ctx, tickets); err != nil {
		// Return the debited capacity, otherwise a failed insert leaks it
		if incErr := s.classRepo.IncrementAvailability(ctx, class.ID, req.Quantity); incErr != nil {
			logger.WithContext(ctx).Error("Failed to return capacity after insert failure",
				"ticket_class_id", class.ID, "quantity", req.Quantity, "error", incErr)
		}
		return nil, fmt.Errorf("failed to persist tickets: %w", err)
	}

	ticketIDs := make([]string, len(tickets))
	for i, t := range tickets {
		ticketIDs[i] = t.TicketID
	}

	msg := models.TicketIssuedEvent{
		TicketIDs:     ticketIDs,
		TicketClassID: class.ID,
		EventID:       event.ID,
		UserID:        userID,
		Timestamp:     now,
	}
	if err := s.natsClient.Publish(models.EventTicketIssued, msg); err != nil {
		logger.WithContext(ctx).Error("Failed to publish ticket issued event",
			"error", err, "event_id", event.ID, "user_id", userID)
	}

	return &models.PurchaseTicketsResponse{Tickets: tickets}, nil
}

func (s *TicketService) List(ctx context.Context, userID int64) (models.ListTicketsResponse, error) {
	tickets, err := s.ticketRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, nil
}

func (s *TicketService) Use(ctx context.Context, req *models.UseTicketRequest, byUserID int64) error {
	ticket, err := s.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return apperrors.ErrTicketNotFound
	}

	ticketing.MarkAsUsed(ticket, byUserID, time.Now().UTC())

	if err := s.ticketRepo.UpdateStatus(ctx, ticket); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	msg := models.TicketUsedEvent{
		TicketID:  ticket.TicketID,
		EventID:   ticket.EventID,
		UsedBy:    byUserID,
		Timestamp: ticket.ModifiedAt,
	}
	if err := s.natsClient.Publish(models.EventTicketUsed, msg); err != nil {
		logger.WithContext(ctx).Error("Failed to publish ticket used event",
			"error", err, "ticket_id", ticket.TicketID)
	}

	return nil
}

func (s *TicketService) Cancel(ctx context.Context, req *models.CancelTicketRequest, byUserID int64) error {
	ticket, err := s.ticketRepo.GetByID(ctx, req.TicketID)
	if err != nil {
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if ticket == nil {
		return apperrors.ErrTicketNotFound
	}

	ticketing.Cancel(ticket, byUserID, req.Reason, time.Now().UTC())

	if err := s.ticketRepo.UpdateStatus(ctx, ticket); err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}

	msg := models.TicketCanceledEvent{
		TicketID:   ticket.TicketID,
		EventID:    ticket.EventID,
		CanceledBy: byUserID,
		Reason:     req.Reason,
		Timestamp:  ticket.ModifiedAt,
	}
	if err := s.natsClient.Publish(models.EventTicketCanceled, msg); err != nil {
		logger.WithContext(ctx).Error("Failed to publish ticket canceled event",
			"error", err, "ticket_id", ticket.TicketID)
	}

	return nil
}
