package service

import (
	"context"
	"fmt"
	"time"

	apperrors "sahna/internal/errors"
	"sahna/internal/logger"
	"sahna/internal/messaging"
	"sahna/internal/models"
	"sahna/internal/recurrence"
	"sahna/internal/repository"
	"sahna/internal/search"
)

type EventService struct {
	eventRepo  *repository.EventRepository
	classRepo  *repository.TicketClassRepository
	esClient   *search.ElasticsearchClient
	natsClient *messaging.NATSClient
}

func NewEventService(eventRepo *repository.EventRepository, classRepo *repository.TicketClassRepository, esClient *search.ElasticsearchClient, natsClient *messaging.NATSClient) *EventService {
	return &EventService{
		eventRepo:  eventRepo,
		classRepo:  classRepo,
		esClient:   esClient,
		natsClient: natsClient,
	}
}

func (s *EventService) Create(ctx context.Context, req *models.CreateEventRequest) (*models.CreateEventResponse, error) {
	eventType := req.Type
	if eventType == "" {
		eventType = "concert"
	}

	event := &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Type:        eventType,
		StartsAt:    req.StartsAt.UTC(),
		EndsAt:      req.EndsAt.UTC(),
		Online:      req.Online.Bool(),
		Recurrence:  ruleFromRequest(req.Recurrence),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	// Search index and messaging are best-effort; the event is already persisted
	if s.esClient != nil {
		doc := search.EventDocument{
			ID:        event.ID,
			Title:     event.Title,
			Type:      event.Type,
			StartsAt:  event.StartsAt,
			Online:    event.Online,
			Recurring: event.Recurrence.Frequency != recurrence.FrequencyNone,
		}
		if event.Description != nil {
			doc.Description = *event.Description
		}
		if err := s.esClient.IndexEvent(ctx, doc); err != nil {
			logger.WithContext(ctx).Error("Failed to index event", "event_id", event.ID, "error", err)
		}
	}

	if s.natsClient != nil {
		msg := models.EventCreatedEvent{
			EventID:   event.ID,
			Title:     event.Title,
			Recurring: event.Recurrence.Frequency != recurrence.FrequencyNone,
			Timestamp: time.Now().UTC(),
		}
		if err := s.natsClient.Publish(models.EventEventCreated, msg); err != nil {
			logger.WithContext(ctx).Error("Failed to publish event created event", "event_id", event.ID, "error", err)
		}
	}

	return &models.CreateEventResponse{ID: event.ID}, nil
}

// Update replaces the event's template and recurrence rule. The caller is
// responsible for invalidating any cached occurrence expansion afterwards.
func (s *EventService) Update(ctx context.Context, eventID int64, req *models.CreateEventRequest) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return apperrors.ErrEventNotFound
	}

	event.Title = req.Title
	event.Description = req.Description
	if req.Type != "" {
		event.Type = req.Type
	}
	event.StartsAt = req.StartsAt.UTC()
	event.EndsAt = req.EndsAt.UTC()
	event.Online = req.Online.Bool()
	event.Recurrence = ruleFromRequest(req.Recurrence)

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	if s.esClient != nil {
		doc := search.EventDocument{
			ID:        event.ID,
			Title:     event.Title,
			Type:      event.Type,
			StartsAt:  event.StartsAt,
			Online:    event.Online,
			Recurring: event.Recurrence.Frequency != recurrence.FrequencyNone,
		}
		if event.Description != nil {
			doc.Description = *event.Description
		}
		if err := s.esClient.IndexEvent(ctx, doc); err != nil {
			logger.WithContext(ctx).Error("Failed to reindex event", "event_id", event.ID, "error", err)
		}
	}

	return nil
}

func (s *EventService) List(ctx context.Context, query, date string, page, pageSize int) ([]models.ListEventsResponseItem, error) {
	// Full-text search goes through Elasticsearch when available
	if query != "" && s.esClient != nil {
		docs, err := s.esClient.Search(ctx, query, date, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to search events: %w", err)
		}

		result := make([]models.ListEventsResponseItem, len(docs))
		for i, doc := range docs {
			result[i] = models.ListEventsResponseItem{
				ID:       doc.ID,
				Title:    doc.Title,
				StartsAt: doc.StartsAt,
			}
		}
		return result, nil
	}

	events, err := s.eventRepo.List(ctx, query, date, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	result := make([]models.ListEventsResponseItem, len(events))
	for i, event := range events {
		result[i] = models.ListEventsResponseItem{
			ID:       event.ID,
			Title:    event.Title,
			StartsAt: event.StartsAt,
		}
	}

	return result, nil
}

// ListOccurrences expands the event's recurrence rule into concrete
// occurrences. Nothing is persisted: the windows are recomputed on every call
// and their IDs are stable by construction.
func (s *EventService) ListOccurrences(ctx context.Context, eventID int64) (models.ListOccurrencesResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	template := recurrence.Window{Start: event.StartsAt, End: event.EndsAt}
	windows := recurrence.Expand(template, event.Recurrence)

	occurrences := make(models.ListOccurrencesResponse, len(windows))
	for i, w := range windows {
		occurrences[i] = models.Occurrence{
			ID:       recurrence.OccurrenceID(event.ID, w.Start),
			EventID:  event.ID,
			StartsAt: w.Start,
			EndsAt:   w.End,
		}
	}

	return occurrences, nil
}

func (s *EventService) ListTicketClasses(ctx context.Context, eventID int64) (models.ListTicketClassesResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if event == nil {
		return nil, apperrors.ErrEventNotFound
	}

	classes, err := s.classRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket classes: %w", err)
	}

	return classes, nil
}

func ruleFromRequest(req *models.RecurrenceRuleRequest) recurrence.Rule {
	if req == nil {
		return recurrence.Rule{Frequency: recurrence.FrequencyNone, Interval: 1}
	}

	rule := recurrence.Rule{
		Frequency:   recurrence.ParseFrequency(req.Frequency),
		Interval:    req.Interval,
		Count:       req.Count,
		RepeatUntil: req.RepeatUntil,
	}

	for _, name := range req.ByWeekday {
		if wd, ok := recurrence.ParseWeekday(name); ok {
			rule.ByWeekday = append(rule.ByWeekday, wd)
		}
	}

	for _, date := range req.ExcludeDates {
		if d, err := time.Parse("2006-01-02", date); err == nil {
			rule.ExcludeDates = append(rule.ExcludeDates, d)
		}
	}

	return rule
}
