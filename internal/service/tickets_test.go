package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "sahna/internal/errors"
	"sahna/internal/models"
)

type fakeTicketStore struct {
	createBatchErr error
	batches        int
	heldCount      int
}

func (f *fakeTicketStore) CreateBatch(ctx context.Context, tickets []models.Ticket) error {
	f.batches++
	return f.createBatchErr
}

func (f *fakeTicketStore) GetByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	return nil, nil
}

func (f *fakeTicketStore) ListByUser(ctx context.Context, userID int64) ([]models.Ticket, error) {
	return nil, nil
}

func (f *fakeTicketStore) CountByUserAndClass(ctx context.Context, userID, ticketClassID int64) (int, error) {
	return f.heldCount, nil
}

func (f *fakeTicketStore) UpdateStatus(ctx context.Context, t *models.Ticket) error {
	return nil
}

type fakeClassStore struct {
	class       *models.TicketClass
	decrementOK bool
	increments  []int
}

func (f *fakeClassStore) GetByID(ctx context.Context, id int64) (*models.TicketClass, error) {
	return f.class, nil
}

func (f *fakeClassStore) DecrementAvailability(ctx context.Context, id int64, n int) (bool, error) {
	return f.decrementOK, nil
}

func (f *fakeClassStore) IncrementAvailability(ctx context.Context, id int64, n int) error {
	f.increments = append(f.increments, n)
	return nil
}

type fakeEventStore struct {
	event *models.Event
}

func (f *fakeEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return f.event, nil
}

type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) Publish(subject string, data interface{}) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func purchaseFixture() (*fakeTicketStore, *fakeClassStore, *fakeEventStore, *fakePublisher) {
	now := time.Now().UTC()
	class := &models.TicketClass{
		ID:                7,
		EventID:           3,
		Name:              "Стандарт",
		AmountAvailable:   50,
		MaxTicketsPerUser: 4,
		SaleStart:         now.Add(-time.Hour),
		SaleEnd:           now.Add(time.Hour),
	}
	event := &models.Event{
		ID:       3,
		Title:    "Концерт",
		StartsAt: now.Add(24 * time.Hour),
		EndsAt:   now.Add(26 * time.Hour),
	}
	return &fakeTicketStore{}, &fakeClassStore{class: class, decrementOK: true}, &fakeEventStore{event: event}, &fakePublisher{}
}

func TestPurchaseIssuesTicketsAndPublishes(t *testing.T) {
	tickets, classes, events, nats := purchaseFixture()
	svc := NewTicketService(tickets, classes, events, nats)

	resp, err := svc.Purchase(context.Background(), &models.PurchaseTicketsRequest{TicketClassID: 7, Quantity: 2}, 11)

	assert.NoError(t, err)
	assert.Len(t, resp.Tickets, 2)
	assert.Equal(t, 1, tickets.batches)
	assert.Equal(t, []string{models.EventTicketIssued}, nats.subjects)
	assert.Empty(t, classes.increments)
}

func TestPurchaseReturnsCapacityWhenInsertFails(t *testing.T) {
	tickets, classes, events, nats := purchaseFixture()
	tickets.createBatchErr = errors.New("insert failed")
	svc := NewTicketService(tickets, classes, events, nats)

	_, err := svc.Purchase(context.Background(), &models.PurchaseTicketsRequest{TicketClassID: 7, Quantity: 2}, 11)

	assert.Error(t, err)
	// The decrement already landed; the failed insert must give it back
	assert.Equal(t, []int{2}, classes.increments)
	assert.Empty(t, nats.subjects)
}

func TestPurchaseRejectsWhenDecrementLosesRace(t *testing.T) {
	tickets, classes, events, nats := purchaseFixture()
	classes.decrementOK = false
	svc := NewTicketService(tickets, classes, events, nats)

	_, err := svc.Purchase(context.Background(), &models.PurchaseTicketsRequest{TicketClassID: 7, Quantity: 2}, 11)

	assert.ErrorIs(t, err, apperrors.ErrNotEnoughCapacity)
	assert.Zero(t, tickets.batches)
	assert.Empty(t, classes.increments)
}

func TestPurchaseRejectsOutsideSaleWindow(t *testing.T) {
	tickets, classes, events, nats := purchaseFixture()
	classes.class.SaleEnd = time.Now().UTC().Add(-time.Minute)
	svc := NewTicketService(tickets, classes, events, nats)

	_, err := svc.Purchase(context.Background(), &models.PurchaseTicketsRequest{TicketClassID: 7, Quantity: 2}, 11)

	assert.ErrorIs(t, err, apperrors.ErrNotOnSale)
	assert.Zero(t, tickets.batches)
}
