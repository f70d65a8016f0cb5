package models

import "time"

// NATS Event Types
const (
	EventEventCreated   = "event.created"
	EventTicketIssued   = "ticket.issued"
	EventTicketUsed     = "ticket.used"
	EventTicketCanceled = "ticket.canceled"
	EventTicketExpired  = "ticket.expired"
)

// EventCreatedEvent represents an event creation message
type EventCreatedEvent struct {
	EventID   int64     `json:"event_id"`
	Title     string    `json:"title"`
	Recurring bool      `json:"recurring"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketIssuedEvent represents a batch of freshly issued tickets
type TicketIssuedEvent struct {
	TicketIDs     []string  `json:"ticket_ids"`
	TicketClassID int64     `json:"ticket_class_id"`
	EventID       int64     `json:"event_id"`
	UserID        int64     `json:"user_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// TicketUsedEvent represents a ticket redemption
type TicketUsedEvent struct {
	TicketID  string    `json:"ticket_id"`
	EventID   int64     `json:"event_id"`
	UsedBy    int64     `json:"used_by"`
	Timestamp time.Time `json:"timestamp"`
}

// TicketCanceledEvent represents a ticket cancellation
type TicketCanceledEvent struct {
	TicketID   string    `json:"ticket_id"`
	EventID    int64     `json:"event_id"`
	CanceledBy int64     `json:"canceled_by"`
	Reason     string    `json:"reason"`
	Timestamp  time.Time `json:"timestamp"`
}

// TicketExpiredEvent represents a ticket marked expired by the background job
type TicketExpiredEvent struct {
	TicketID  string    `json:"ticket_id"`
	EventID   int64     `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
}
