package service

import (
	"sahna/internal/messaging"
	"sahna/internal/repository"
	"sahna/internal/search"
)

type Services struct {
	Events  *EventService
	Tickets *TicketService
}

func NewServices(repos *repository.Repositories, natsClient *messaging.NATSClient, esClient *search.ElasticsearchClient) *Services {
	eventService := NewEventService(repos.Events, repos.TicketClasses, esClient, natsClient)
	ticketService := NewTicketService(repos.Tickets, repos.TicketClasses, repos.Events, natsClient)

	return &Services{
		Events:  eventService,
		Tickets: ticketService,
	}
}
