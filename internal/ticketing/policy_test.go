package ticketing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sahna/internal/models"
)

func saleClass(available, maxPerUser int) *models.TicketClass {
	return &models.TicketClass{
		ID:                1,
		EventID:           1,
		Name:              "Стандарт",
		Price:             250000,
		AmountAvailable:   available,
		MaxTicketsPerUser: maxPerUser,
		SaleStart:         time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		SaleEnd:           time.Date(2024, time.April, 30, 23, 59, 59, 0, time.UTC),
	}
}

func TestHasRequestedAmount(t *testing.T) {
	class := saleClass(10, 4)

	assert.False(t, HasRequestedAmount(class, 0))
	assert.False(t, HasRequestedAmount(class, -3))
	assert.True(t, HasRequestedAmount(class, 1))
	assert.True(t, HasRequestedAmount(class, 10))
	assert.False(t, HasRequestedAmount(class, 11))
}

// TestHitReservationLimitPinsPerUserClause pins the historical per-user check:
// a request is rejected when it exceeds MaxTicketsPerUser, or when its size is
// not larger than the count the user already holds. The sum of held + new is
// never compared against the limit, so 2 held + 3 new passes a limit of 4.
func TestHitReservationLimitPinsPerUserClause(t *testing.T) {
	class := saleClass(100, 4)

	// first clause: request larger than the per-user limit
	assert.True(t, HitReservationLimit(class, 5, 0))

	// second clause: request not larger than what the user already holds
	assert.True(t, HitReservationLimit(class, 2, 2))
	assert.True(t, HitReservationLimit(class, 1, 3))

	// allowed, even though held + new exceeds the limit
	assert.False(t, HitReservationLimit(class, 3, 2))
	assert.False(t, HitReservationLimit(class, 4, 3))

	assert.False(t, HitReservationLimit(class, 1, 0))
	assert.False(t, HitReservationLimit(class, 4, 0))
}

func TestIsOnSaleBoundsAreInclusive(t *testing.T) {
	class := saleClass(10, 4)

	assert.False(t, IsOnSale(class, class.SaleStart.Add(-time.Second)))
	assert.True(t, IsOnSale(class, class.SaleStart))
	assert.True(t, IsOnSale(class, class.SaleStart.AddDate(0, 0, 15)))
	assert.True(t, IsOnSale(class, class.SaleEnd))
	assert.False(t, IsOnSale(class, class.SaleEnd.Add(time.Second)))
}
