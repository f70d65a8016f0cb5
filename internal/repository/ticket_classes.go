package repository

import (
	"context"
	"database/sql"

	"sahna/internal/database"
	"sahna/internal/models"
)

type TicketClassRepository struct {
	db *database.DB
}

func NewTicketClassRepository(db *database.DB) *TicketClassRepository {
	return &TicketClassRepository{db: db}
}

func (r *TicketClassRepository) Create(ctx context.Context, class *models.TicketClass) error {
	query := `
		INSERT INTO ticket_classes (event_id, name, price, amount_available, max_tickets_per_user, sale_start, sale_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowContext(ctx, query,
		class.EventID,
		class.Name,
		class.Price,
		class.AmountAvailable,
		class.MaxTicketsPerUser,
		class.SaleStart,
		class.SaleEnd,
	).Scan(&class.ID, &class.CreatedAt, &class.UpdatedAt)
}

func (r *TicketClassRepository) GetByID(ctx context.Context, id int64) (*models.TicketClass, error) {
	class := &models.TicketClass{}
	query := `
		SELECT id, event_id, name, price, amount_available, max_tickets_per_user, sale_start, sale_end, created_at, updated_at
		FROM ticket_classes
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&class.ID,
		&class.EventID,
		&class.Name,
		&class.Price,
		&class.AmountAvailable,
		&class.MaxTicketsPerUser,
		&class.SaleStart,
		&class.SaleEnd,
		&class.CreatedAt,
		&class.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return class, err
}

func (r *TicketClassRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.TicketClass, error) {
	query := `
		SELECT id, event_id, name, price, amount_available, max_tickets_per_user, sale_start, sale_end, created_at, updated_at
		FROM ticket_classes
		WHERE event_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.TicketClass
	for rows.Next() {
		var class models.TicketClass
		err := rows.Scan(
			&class.ID,
			&class.EventID,
			&class.Name,
			&class.Price,
			&class.AmountAvailable,
			&class.MaxTicketsPerUser,
			&class.SaleStart,
			&class.SaleEnd,
			&class.CreatedAt,
			&class.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}

	return classes, rows.Err()
}

// DecrementAvailability debits capacity atomically. The guarded UPDATE is the
// single point where concurrent purchases are serialized; the policy
// predicates in internal/ticketing are advisory and can race.
func (r *TicketClassRepository) DecrementAvailability(ctx context.Context, id int64, n int) (bool, error) {
	query := `
		UPDATE ticket_classes
		SET amount_available = amount_available - $1, updated_at = NOW()
		WHERE id = $2 AND amount_available >= $1`

	result, err := r.db.ExecContext(ctx, query, n, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected == 1, nil
}

// IncrementAvailability returns previously debited capacity, e.g. when ticket
// persistence fails after a successful decrement.
func (r *TicketClassRepository) IncrementAvailability(ctx context.Context, id int64, n int) error {
	query := `
		UPDATE ticket_classes
		SET amount_available = amount_available + $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, n, id)
	return err
}
