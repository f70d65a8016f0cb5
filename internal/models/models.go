package models

import (
	"fmt"
	"strings"
	"time"
)

// FlexibleBool - гибкий boolean тип, поддерживающий строки и числа
type FlexibleBool bool

// UnmarshalJSON поддерживает парсинг boolean из строки, числа и boolean
func (fb *FlexibleBool) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)

	switch strings.ToLower(str) {
	case "true", "1", "yes", "on":
		*fb = true
	case "false", "0", "no", "off":
		*fb = false
	default:
		return fmt.Errorf("invalid boolean value: %s", str)
	}
	return nil
}

// Bool возвращает bool значение
func (fb FlexibleBool) Bool() bool {
	return bool(fb)
}

// RecurrenceRuleRequest - правило повторения в запросе создания события
type RecurrenceRuleRequest struct {
	Frequency    string     `json:"frequency"`
	Interval     int        `json:"interval"`
	Count        *int       `json:"count,omitempty"`
	RepeatUntil  *time.Time `json:"repeat_until,omitempty"`
	ByWeekday    []string   `json:"by_weekday,omitempty"`
	ExcludeDates []string   `json:"exclude_dates,omitempty"` // YYYY-MM-DD, UTC
}

// CreateEventRequest - модель для создания события
type CreateEventRequest struct {
	Title       string                 `json:"title" binding:"required"`
	Description *string                `json:"description,omitempty"`
	Type        string                 `json:"type"`
	StartsAt    time.Time              `json:"starts_at" binding:"required"`
	EndsAt      time.Time              `json:"ends_at" binding:"required"`
	Online      FlexibleBool           `json:"online,omitempty"`
	Recurrence  *RecurrenceRuleRequest `json:"recurrence,omitempty"`
}

// CreateEventResponse - модель ответа при создании события
type CreateEventResponse struct {
	ID int64 `json:"id"`
}

// ListEventsResponseItem - элемент списка событий
type ListEventsResponseItem struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
}

// ListEventsResponse - список событий
type ListEventsResponse []ListEventsResponseItem

// ListOccurrencesResponse - развернутый список вхождений события
type ListOccurrencesResponse []Occurrence

// PurchaseTicketsRequest - модель для выпуска билетов после оплаты
type PurchaseTicketsRequest struct {
	TicketClassID int64 `json:"ticket_class_id" binding:"required"`
	Quantity      int   `json:"quantity" binding:"required"`
}

// PurchaseTicketsResponse - модель ответа при выпуске билетов
type PurchaseTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
}

// UseTicketRequest - модель для погашения билета
type UseTicketRequest struct {
	TicketID string `json:"ticket_id" binding:"required"`
}

// CancelTicketRequest - модель для отмены билета
type CancelTicketRequest struct {
	TicketID string `json:"ticket_id" binding:"required"`
	Reason   string `json:"reason"`
}

// ListTicketsResponse - билеты текущего пользователя
type ListTicketsResponse []Ticket

// ListTicketClassesResponse - категории билетов события
type ListTicketClassesResponse []TicketClass
