package models

import (
	"time"

	"sahna/internal/recurrence"
)

// User represents a user in the system
type User struct {
	UserID       int64     `json:"user_id" db:"user_id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	Surname      string    `json:"surname" db:"surname"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
	IsActive     bool      `json:"is_active" db:"is_active"`
}

// Event represents an event template. For recurring events StartsAt/EndsAt
// describe the first window; concrete occurrences are expanded on demand and
// never stored.
type Event struct {
	ID          int64           `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description *string         `json:"description" db:"description"`
	Type        string          `json:"type" db:"type"`
	StartsAt    time.Time       `json:"starts_at" db:"starts_at"`
	EndsAt      time.Time       `json:"ends_at" db:"ends_at"`
	Online      bool            `json:"online" db:"online"`
	Recurrence  recurrence.Rule `json:"-"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// TicketClass - категория билетов события со своей квотой и окном продаж
type TicketClass struct {
	ID                int64     `json:"id" db:"id"`
	EventID           int64     `json:"event_id" db:"event_id"`
	Name              string    `json:"name" db:"name"`
	Price             int64     `json:"price" db:"price"` // minor currency units
	AmountAvailable   int       `json:"amount_available" db:"amount_available"`
	MaxTicketsPerUser int       `json:"max_tickets_per_user" db:"max_tickets_per_user"`
	SaleStart         time.Time `json:"sale_start" db:"sale_start"`
	SaleEnd           time.Time `json:"sale_end" db:"sale_end"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// TicketStatus - замкнутое множество статусов билета
type TicketStatus string

const (
	TicketStatusAvailable TicketStatus = "AVAILABLE"
	TicketStatusUsed      TicketStatus = "USED"
	TicketStatusCanceled  TicketStatus = "CANCELED"
	TicketStatusExpired   TicketStatus = "EXPIRED"
)

// Valid reports whether s is one of the known statuses.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusAvailable, TicketStatusUsed, TicketStatusCanceled, TicketStatusExpired:
		return true
	}
	return false
}

// Ticket represents an issued ticket bound to an event and a purchasing user
type Ticket struct {
	TicketID       string       `json:"ticket_id" db:"ticket_id"`
	TicketClassID  int64        `json:"ticket_class_id" db:"ticket_class_id"`
	EventID        int64        `json:"event_id" db:"event_id"`
	UserID         int64        `json:"user_id" db:"user_id"`
	Title          string       `json:"title" db:"title"`
	Status         TicketStatus `json:"status" db:"status"`
	ExpiresAt      time.Time    `json:"expires_at" db:"expires_at"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	ModifiedAt     time.Time    `json:"modified_at" db:"modified_at"`
	CreatedBy      int64        `json:"created_by" db:"created_by"`
	ModifiedBy     int64        `json:"modified_by" db:"modified_by"`
	UsedAt         *time.Time   `json:"used_at" db:"used_at"`
	UsedBy         *int64       `json:"used_by" db:"used_by"`
	CanceledAt     *time.Time   `json:"canceled_at" db:"canceled_at"`
	CanceledBy     *int64       `json:"canceled_by" db:"canceled_by"`
	CanceledReason string       `json:"canceled_reason" db:"canceled_reason"`
}

// Occurrence - одно конкретное вхождение повторяющегося события
type Occurrence struct {
	ID          string    `json:"id"`
	EventID     int64     `json:"event_id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	IsCancelled bool      `json:"is_cancelled"`
}
