package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayEncodingRoundTrip(t *testing.T) {
	weekdays := []time.Weekday{time.Monday, time.Wednesday, time.Saturday}

	encoded := encodeWeekdays(weekdays)
	assert.Equal(t, "mo,we,sa", encoded)

	assert.Equal(t, weekdays, parseWeekdays(encoded))
	assert.Nil(t, parseWeekdays(""))
}

func TestDateEncodingRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
	}

	encoded := encodeDates(dates)
	assert.Equal(t, "2024-01-03,2024-02-29", encoded)

	assert.Equal(t, dates, parseDates(encoded))
	assert.Nil(t, parseDates(""))
}

func TestParseDatesSkipsMalformedEntries(t *testing.T) {
	dates := parseDates("2024-01-03,garbage, 2024-01-05")

	assert.Len(t, dates, 2)
	assert.Equal(t, 3, dates[0].Day())
	assert.Equal(t, 5, dates[1].Day())
}
