package repository

import (
	"sahna/internal/database"
)

type Repositories struct {
	Events        *EventRepository
	TicketClasses *TicketClassRepository
	Tickets       *TicketRepository
	Users         *UserRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Events:        NewEventRepository(db),
		TicketClasses: NewTicketClassRepository(db),
		Tickets:       NewTicketRepository(db),
		Users:         NewUserRepository(db),
	}
}
