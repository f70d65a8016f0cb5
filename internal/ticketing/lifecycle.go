package ticketing

import (
	"time"

	"github.com/google/uuid"

	"sahna/internal/models"
)

// Ticket state machine. Transitions overwrite unconditionally: there is no
// guard against moving an already-terminal ticket, so Cancel followed by
// MarkAsUsed leaves the ticket Used. Callers that need terminal states to
// stick must check Status before transitioning.
//
// Expired is never produced here; the consumers binary assigns it from
// now > ExpiresAt.

// MarkAsUsed переводит билет в статус USED
func MarkAsUsed(t *models.Ticket, byUserID int64, now time.Time) {
	t.Status = models.TicketStatusUsed
	t.ModifiedAt = now
	t.ModifiedBy = byUserID
	t.UsedAt = &now
	t.UsedBy = &byUserID
}

// Cancel переводит билет в статус CANCELED
func Cancel(t *models.Ticket, byUserID int64, reason string, now time.Time) {
	t.Status = models.TicketStatusCanceled
	t.ModifiedAt = now
	t.ModifiedBy = byUserID
	t.CanceledAt = &now
	t.CanceledBy = &byUserID
	t.CanceledReason = reason
}

// GenerateTickets mints n Available tickets for the given event and user.
// ExpiresAt is copied from the owning event's end boundary (for a recurring
// event, the template's end). Capacity is not checked here - the caller
// validates the request with the policy predicates and debits capacity
// through the repository before issuing.
func GenerateTickets(n int, eventTitle string, eventExpiry time.Time, eventID, userID int64, class *models.TicketClass, now time.Time) []models.Ticket {
	tickets := make([]models.Ticket, 0, n)
	for i := 0; i < n; i++ {
		tickets = append(tickets, models.Ticket{
			TicketID:      uuid.New().String(),
			TicketClassID: class.ID,
			EventID:       eventID,
			UserID:        userID,
			Title:         class.Name + " " + eventTitle,
			Status:        models.TicketStatusAvailable,
			ExpiresAt:     eventExpiry,
			CreatedAt:     now,
			ModifiedAt:    now,
			CreatedBy:     userID,
			ModifiedBy:    userID,
		})
	}
	return tickets
}
