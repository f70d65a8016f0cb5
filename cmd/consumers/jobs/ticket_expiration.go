package jobs

import (
	"context"
	"log/slog"
	"time"

	"sahna/internal/messaging"
	"sahna/internal/models"
	"sahna/internal/repository"
)

// TicketExpirationJob flips Available tickets past their expiry boundary to
// Expired. The ticket state machine itself never produces Expired; assigning
// it from now > expires_at is this job's call.
type TicketExpirationJob struct {
	ticketRepo *repository.TicketRepository
	natsClient *messaging.NATSClient
	interval   time.Duration
	ticker     *time.Ticker
	done       chan bool
}

// NewTicketExpirationJob creates a new ticket expiration job
func NewTicketExpirationJob(ticketRepo *repository.TicketRepository, natsClient *messaging.NATSClient, interval time.Duration) *TicketExpirationJob {
	return &TicketExpirationJob{
		ticketRepo: ticketRepo,
		natsClient: natsClient,
		interval:   interval,
		done:       make(chan bool),
	}
}

// Start begins the background job that checks for expired tickets
func (j *TicketExpirationJob) Start(ctx context.Context) {
	slog.Info("Starting ticket expiration job", "check_interval", j.interval)

	j.ticker = time.NewTicker(j.interval)

	// Run initial check immediately
	go j.checkExpiredTickets(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				go j.checkExpiredTickets(ctx)
			case <-j.done:
				slog.Info("Ticket expiration job stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background job
func (j *TicketExpirationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *TicketExpirationJob) checkExpiredTickets(ctx context.Context) {
	now := time.Now().UTC()

	expired, err := j.ticketRepo.MarkExpired(ctx, now)
	if err != nil {
		slog.Error("Failed to mark expired tickets", "error", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	slog.Info("Marked tickets expired", "count", len(expired))

	for _, ticket := range expired {
		msg := models.TicketExpiredEvent{
			TicketID:  ticket.TicketID,
			EventID:   ticket.EventID,
			Timestamp: now,
		}
		if err := j.natsClient.Publish(models.EventTicketExpired, msg); err != nil {
			slog.Error("Failed to publish ticket expired event",
				"ticket_id", ticket.TicketID, "error", err)
		}
	}
}
