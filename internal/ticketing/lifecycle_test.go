package ticketing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sahna/internal/models"
)

func TestGenerateTickets(t *testing.T) {
	class := saleClass(50, 4)
	expiry := time.Date(2024, time.May, 1, 22, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.April, 10, 12, 0, 0, 0, time.UTC)

	tickets := GenerateTickets(3, "Гала-концерт", expiry, 7, 42, class, now)

	assert.Len(t, tickets, 3)
	seen := make(map[string]struct{})
	for _, tk := range tickets {
		seen[tk.TicketID] = struct{}{}
		assert.Equal(t, int64(7), tk.EventID)
		assert.Equal(t, class.ID, tk.TicketClassID)
		assert.Equal(t, int64(42), tk.UserID)
		assert.Equal(t, "Стандарт Гала-концерт", tk.Title)
		assert.Equal(t, models.TicketStatusAvailable, tk.Status)
		assert.Equal(t, expiry, tk.ExpiresAt)
		assert.Equal(t, now, tk.CreatedAt)
		assert.Equal(t, now, tk.ModifiedAt)
		assert.Equal(t, int64(42), tk.CreatedBy)
		assert.Equal(t, int64(42), tk.ModifiedBy)
	}
	assert.Len(t, seen, 3, "ticket IDs must be unique")
}

func TestGenerateTicketsZero(t *testing.T) {
	class := saleClass(50, 4)

	tickets := GenerateTickets(0, "Гала-концерт", time.Now().UTC(), 7, 42, class, time.Now().UTC())

	assert.Empty(t, tickets)
}

func TestMarkAsUsed(t *testing.T) {
	now := time.Date(2024, time.May, 1, 19, 5, 0, 0, time.UTC)
	ticket := &models.Ticket{
		TicketID: "t-1",
		Status:   models.TicketStatusAvailable,
	}

	MarkAsUsed(ticket, 99, now)

	assert.Equal(t, models.TicketStatusUsed, ticket.Status)
	assert.Equal(t, now, ticket.ModifiedAt)
	assert.Equal(t, int64(99), ticket.ModifiedBy)
	if assert.NotNil(t, ticket.UsedAt) {
		assert.Equal(t, now, *ticket.UsedAt)
	}
	if assert.NotNil(t, ticket.UsedBy) {
		assert.Equal(t, int64(99), *ticket.UsedBy)
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2024, time.May, 1, 19, 5, 0, 0, time.UTC)
	ticket := &models.Ticket{
		TicketID: "t-1",
		Status:   models.TicketStatusAvailable,
	}

	Cancel(ticket, 99, "refund requested", now)

	assert.Equal(t, models.TicketStatusCanceled, ticket.Status)
	assert.Equal(t, "refund requested", ticket.CanceledReason)
	if assert.NotNil(t, ticket.CanceledAt) {
		assert.Equal(t, now, *ticket.CanceledAt)
	}
	if assert.NotNil(t, ticket.CanceledBy) {
		assert.Equal(t, int64(99), *ticket.CanceledBy)
	}
}

// Transitions have no terminal-state guard: the last one wins, and audit
// fields from the earlier transition are retained.
func TestCancelThenMarkAsUsedLastWins(t *testing.T) {
	canceledAt := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.UTC)
	usedAt := canceledAt.Add(2 * time.Hour)
	ticket := &models.Ticket{
		TicketID: "t-1",
		Status:   models.TicketStatusAvailable,
	}

	Cancel(ticket, 7, "duplicate purchase", canceledAt)
	MarkAsUsed(ticket, 8, usedAt)

	assert.Equal(t, models.TicketStatusUsed, ticket.Status)
	if assert.NotNil(t, ticket.UsedBy) {
		assert.Equal(t, int64(8), *ticket.UsedBy)
	}
	// audit trail from the earlier cancel is still there
	if assert.NotNil(t, ticket.CanceledBy) {
		assert.Equal(t, int64(7), *ticket.CanceledBy)
	}
	assert.Equal(t, "duplicate purchase", ticket.CanceledReason)
	assert.Equal(t, usedAt, ticket.ModifiedAt)
	assert.Equal(t, int64(8), ticket.ModifiedBy)
}
