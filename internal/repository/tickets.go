package repository

import (
	"context"
	"database/sql"
	"time"

	"sahna/internal/database"
	"sahna/internal/models"
)

type TicketRepository struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `ticket_id, ticket_class_id, event_id, user_id, title, status, expires_at,
		created_at, modified_at, created_by, modified_by, used_at, used_by, canceled_at, canceled_by, canceled_reason`

// CreateBatch inserts a freshly issued batch inside one transaction, so a
// partially persisted purchase never becomes visible.
func (r *TicketRepository) CreateBatch(ctx context.Context, tickets []models.Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tickets (ticket_id, ticket_class_id, event_id, user_id, title, status, expires_at,
		                     created_at, modified_at, created_by, modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, t := range tickets {
		_, err := tx.ExecContext(ctx, query,
			t.TicketID,
			t.TicketClassID,
			t.EventID,
			t.UserID,
			t.Title,
			t.Status,
			t.ExpiresAt,
			t.CreatedAt,
			t.ModifiedAt,
			t.CreatedBy,
			t.ModifiedBy,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_id = $1`

	ticket, err := scanTicket(r.db.QueryRowContext(ctx, query, ticketID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ticket, err
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}

	return tickets, rows.Err()
}

// CountByUserAndClass returns how many non-canceled tickets of the class the
// user already holds. Feeds the per-user limit predicate.
func (r *TicketRepository) CountByUserAndClass(ctx context.Context, userID, ticketClassID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets
		WHERE user_id = $1 AND ticket_class_id = $2 AND status != 'CANCELED'`

	var count int
	err := r.db.QueryRowContext(ctx, query, userID, ticketClassID).Scan(&count)
	return count, err
}

// UpdateStatus persists a lifecycle transition with its audit fields.
func (r *TicketRepository) UpdateStatus(ctx context.Context, t *models.Ticket) error {
	query := `
		UPDATE tickets
		SET status = $1, modified_at = $2, modified_by = $3,
		    used_at = $4, used_by = $5,
		    canceled_at = $6, canceled_by = $7, canceled_reason = $8
		WHERE ticket_id = $9`

	_, err := r.db.ExecContext(ctx, query,
		t.Status,
		t.ModifiedAt,
		t.ModifiedBy,
		t.UsedAt,
		t.UsedBy,
		t.CanceledAt,
		t.CanceledBy,
		t.CanceledReason,
		t.TicketID,
	)

	return err
}

// MarkExpired flips Available tickets whose expiry boundary has passed and
// returns them so the caller can publish per-ticket events.
func (r *TicketRepository) MarkExpired(ctx context.Context, now time.Time) ([]models.Ticket, error) {
	query := `
		UPDATE tickets
		SET status = 'EXPIRED', modified_at = $1
		WHERE status = 'AVAILABLE' AND expires_at < $1
		RETURNING ` + ticketColumns

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}

	return tickets, rows.Err()
}

func scanTicket(row rowScanner) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	err := row.Scan(
		&ticket.TicketID,
		&ticket.TicketClassID,
		&ticket.EventID,
		&ticket.UserID,
		&ticket.Title,
		&ticket.Status,
		&ticket.ExpiresAt,
		&ticket.CreatedAt,
		&ticket.ModifiedAt,
		&ticket.CreatedBy,
		&ticket.ModifiedBy,
		&ticket.UsedAt,
		&ticket.UsedBy,
		&ticket.CanceledAt,
		&ticket.CanceledBy,
		&ticket.CanceledReason,
	)
	if err != nil {
		return nil, err
	}
	return ticket, nil
}
