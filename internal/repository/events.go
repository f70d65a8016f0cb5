package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sahna/internal/database"
	"sahna/internal/models"
	"sahna/internal/recurrence"
)

type EventRepository struct {
	db *database.DB
}

func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, type, starts_at, ends_at, online,
		recur_frequency, recur_interval, recur_count, repeat_until, by_weekday, exclude_dates,
		created_at, updated_at`

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (title, description, type, starts_at, ends_at, online,
		                    recur_frequency, recur_interval, recur_count, repeat_until, by_weekday, exclude_dates)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		event.Title,
		event.Description,
		event.Type,
		event.StartsAt,
		event.EndsAt,
		event.Online,
		event.Recurrence.Frequency.String(),
		event.Recurrence.Interval,
		event.Recurrence.Count,
		event.Recurrence.RepeatUntil,
		encodeWeekdays(event.Recurrence.ByWeekday),
		encodeDates(event.Recurrence.ExcludeDates),
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	return err
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return event, err
}

func (r *EventRepository) List(ctx context.Context, query, date string, page, pageSize int) ([]models.Event, error) {
	var args []interface{}
	argIndex := 1

	sqlQuery := fmt.Sprintf(`SELECT %s FROM events WHERE 1=1`, eventColumns)

	if query != "" {
		sqlQuery += fmt.Sprintf(" AND title ILIKE $%d", argIndex)
		args = append(args, "%"+query+"%")
		argIndex++
	}

	if date != "" {
		sqlQuery += fmt.Sprintf(" AND DATE(starts_at) = $%d", argIndex)
		args = append(args, date)
		argIndex++
	}

	sqlQuery += " ORDER BY id ASC"

	if page > 0 && pageSize > 0 {
		offset := (page - 1) * pageSize
		sqlQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, pageSize, offset)
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *event)
	}

	return events, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, type = $3, starts_at = $4, ends_at = $5, online = $6,
		    recur_frequency = $7, recur_interval = $8, recur_count = $9, repeat_until = $10,
		    by_weekday = $11, exclude_dates = $12, updated_at = $13
		WHERE id = $14`

	event.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		event.Title,
		event.Description,
		event.Type,
		event.StartsAt,
		event.EndsAt,
		event.Online,
		event.Recurrence.Frequency.String(),
		event.Recurrence.Interval,
		event.Recurrence.Count,
		event.Recurrence.RepeatUntil,
		encodeWeekdays(event.Recurrence.ByWeekday),
		encodeDates(event.Recurrence.ExcludeDates),
		event.UpdatedAt,
		event.ID,
	)

	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var frequency, byWeekday, excludeDates string

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Type,
		&event.StartsAt,
		&event.EndsAt,
		&event.Online,
		&frequency,
		&event.Recurrence.Interval,
		&event.Recurrence.Count,
		&event.Recurrence.RepeatUntil,
		&byWeekday,
		&excludeDates,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.Recurrence.Frequency = recurrence.ParseFrequency(frequency)
	event.Recurrence.ByWeekday = parseWeekdays(byWeekday)
	event.Recurrence.ExcludeDates = parseDates(excludeDates)

	return event, nil
}

// Weekday sets are stored as a comma-separated list of short names ("mo,we"),
// exclusion dates as comma-separated YYYY-MM-DD strings.

func encodeWeekdays(weekdays []time.Weekday) string {
	short := map[time.Weekday]string{
		time.Sunday:    "su",
		time.Monday:    "mo",
		time.Tuesday:   "tu",
		time.Wednesday: "we",
		time.Thursday:  "th",
		time.Friday:    "fr",
		time.Saturday:  "sa",
	}

	parts := make([]string, 0, len(weekdays))
	for _, wd := range weekdays {
		parts = append(parts, short[wd])
	}
	return strings.Join(parts, ",")
}

func parseWeekdays(s string) []time.Weekday {
	if s == "" {
		return nil
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		if wd, ok := recurrence.ParseWeekday(part); ok {
			weekdays = append(weekdays, wd)
		}
	}
	return weekdays
}

func encodeDates(dates []time.Time) string {
	parts := make([]string, 0, len(dates))
	for _, d := range dates {
		parts = append(parts, d.UTC().Format("2006-01-02"))
	}
	return strings.Join(parts, ",")
}

func parseDates(s string) []time.Time {
	if s == "" {
		return nil
	}

	var dates []time.Time
	for _, part := range strings.Split(s, ",") {
		if d, err := time.Parse("2006-01-02", strings.TrimSpace(part)); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}
