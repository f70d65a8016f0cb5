package consumers

import (
	"log/slog"

	"sahna/internal/config"
	"sahna/internal/database"
	"sahna/internal/messaging"
	"sahna/internal/models"
	"sahna/internal/repository"
)

type ConsumerService struct {
	db       *database.DB
	nats     *messaging.NATSClient
	repos    *repository.Repositories
	handlers *Handlers
}

func NewConsumerService(cfg *config.Config) (*ConsumerService, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}

	natsClient, err := messaging.NewNATSClient(cfg.NATS)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(db)
	handlers := NewHandlers(repos)

	return &ConsumerService{
		db:       db,
		nats:     natsClient,
		repos:    repos,
		handlers: handlers,
	}, nil
}

func (cs *ConsumerService) Start() error {
	slog.Info("Starting NATS consumers...")

	_, err := cs.nats.SubscribeQueue(models.EventEventCreated, "consumers", cs.handlers.HandleEventCreated)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventTicketIssued, "consumers", cs.handlers.HandleTicketIssued)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventTicketUsed, "consumers", cs.handlers.HandleTicketUsed)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventTicketCanceled, "consumers", cs.handlers.HandleTicketCanceled)
	if err != nil {
		return err
	}

	_, err = cs.nats.SubscribeQueue(models.EventTicketExpired, "consumers", cs.handlers.HandleTicketExpired)
	if err != nil {
		return err
	}

	slog.Info("All consumers started")
	return nil
}

func (cs *ConsumerService) NATS() *messaging.NATSClient {
	return cs.nats
}

func (cs *ConsumerService) Repos() *repository.Repositories {
	return cs.repos
}

func (cs *ConsumerService) Stop() {
	slog.Info("Stopping consumers...")

	if cs.nats != nil {
		cs.nats.Close()
	}
	if cs.db != nil {
		cs.db.Close()
	}
}
