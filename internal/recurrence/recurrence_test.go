package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func utc(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int {
	return &n
}

func TestExpandFrequencyNone(t *testing.T) {
	template := Window{Start: utc(2024, time.January, 1, 10), End: utc(2024, time.January, 1, 12)}

	windows := Expand(template, Rule{Frequency: FrequencyNone, Interval: 1, Count: intPtr(10)})

	assert.Empty(t, windows)
}

func TestExpandDailyWithCount(t *testing.T) {
	template := Window{Start: utc(2024, time.January, 1, 0), End: utc(2024, time.January, 1, 2)}

	windows := Expand(template, Rule{Frequency: FrequencyDaily, Interval: 1, Count: intPtr(5)})

	assert.Len(t, windows, 5)
	for i, w := range windows {
		assert.Equal(t, utc(2024, time.January, 1+i, 0), w.Start)
		assert.Equal(t, 2*time.Hour, w.End.Sub(w.Start))
	}
	assert.Equal(t, utc(2024, time.January, 5, 0), windows[4].Start)
}

func TestExpandWeeklyByWeekday(t *testing.T) {
	// 2024-01-01 is a Monday
	template := Window{Start: utc(2024, time.January, 1, 18), End: utc(2024, time.January, 1, 20)}
	until := template.Start.AddDate(0, 0, 21)

	windows := Expand(template, Rule{
		Frequency:   FrequencyWeekly,
		Interval:    1,
		RepeatUntil: &until,
		ByWeekday:   []time.Weekday{time.Monday, time.Wednesday},
	})

	assert.NotEmpty(t, windows)
	for _, w := range windows {
		assert.Contains(t, []time.Weekday{time.Monday, time.Wednesday}, w.Start.Weekday())
	}
	// Weekly stepping from a Monday emits every Monday through the bound, inclusive.
	assert.Len(t, windows, 4)
	assert.Equal(t, utc(2024, time.January, 22, 18), windows[3].Start)
}

func TestExpandDailyByWeekdayFiltersOtherDays(t *testing.T) {
	template := Window{Start: utc(2024, time.January, 1, 9), End: utc(2024, time.January, 1, 10)}
	until := template.Start.AddDate(0, 0, 13)

	windows := Expand(template, Rule{
		Frequency:   FrequencyDaily,
		Interval:    1,
		RepeatUntil: &until,
		ByWeekday:   []time.Weekday{time.Monday, time.Wednesday},
	})

	// Two weeks starting Monday: Mon+Wed twice
	assert.Len(t, windows, 4)
	for _, w := range windows {
		wd := w.Start.Weekday()
		assert.True(t, wd == time.Monday || wd == time.Wednesday, "unexpected weekday %s", wd)
	}
}

func TestExpandExcludeDateConsumesStepNotCountSlot(t *testing.T) {
	template := Window{Start: utc(2024, time.January, 1, 12), End: utc(2024, time.January, 1, 13)}

	windows := Expand(template, Rule{
		Frequency:    FrequencyDaily,
		Interval:     1,
		Count:        intPtr(5),
		ExcludeDates: []time.Time{utc(2024, time.January, 3, 0)},
	})

	// Jan 3 is suppressed but the iteration keeps stepping until five
	// occurrences have been emitted.
	assert.Len(t, windows, 5)
	starts := make([]time.Time, len(windows))
	for i, w := range windows {
		starts[i] = w.Start
	}
	assert.Equal(t, []time.Time{
		utc(2024, time.January, 1, 12),
		utc(2024, time.January, 2, 12),
		utc(2024, time.January, 4, 12),
		utc(2024, time.January, 5, 12),
		utc(2024, time.January, 6, 12),
	}, starts)
}

func TestExpandUnboundedRuleHitsSafetyCap(t *testing.T) {
	template := Window{Start: utc(2024, time.January, 1, 0), End: utc(2024, time.January, 1, 1)}

	windows := Expand(template, Rule{Frequency: FrequencyDaily, Interval: 1})

	cap := template.Start.AddDate(5, 0, 0)
	assert.NotEmpty(t, windows)
	for _, w := range windows {
		assert.False(t, w.Start.After(cap))
	}
	// 2024-01-01 through 2029-01-01 inclusive
	assert.Len(t, windows, 1828)
}

func TestExpandTerminatesWhenWeekdayNeverMatches(t *testing.T) {
	// Weekly stepping from a Monday lands on a Monday forever, so a
	// Tuesday-only filter suppresses every step. Count never fills; the
	// safety cap must end the iteration with an empty result.
	template := Window{Start: utc(2024, time.January, 1, 10), End: utc(2024, time.January, 1, 11)}

	windows := Expand(template, Rule{
		Frequency: FrequencyWeekly,
		Interval:  1,
		Count:     intPtr(3),
		ByWeekday: []time.Weekday{time.Tuesday},
	})

	assert.Empty(t, windows)

	// Same shape with daily stepping: interval 7 from a Monday never hits
	// a Wednesday.
	windows = Expand(template, Rule{
		Frequency: FrequencyDaily,
		Interval:  7,
		Count:     intPtr(3),
		ByWeekday: []time.Weekday{time.Wednesday},
	})

	assert.Empty(t, windows)
}

func TestExpandRepeatUntilIsInclusive(t *testing.T) {
	template := Window{Start: utc(2024, time.March, 10, 8), End: utc(2024, time.March, 10, 9)}
	until := utc(2024, time.March, 12, 8)

	windows := Expand(template, Rule{Frequency: FrequencyDaily, Interval: 1, RepeatUntil: &until})

	assert.Len(t, windows, 3)
	assert.Equal(t, until, windows[2].Start)
}

func TestExpandNormalizesInterval(t *testing.T) {
	template := Window{Start: utc(2024, time.January, 1, 0), End: utc(2024, time.January, 1, 1)}

	windows := Expand(template, Rule{Frequency: FrequencyDaily, Interval: 0, Count: intPtr(3)})

	assert.Len(t, windows, 3)
	assert.Equal(t, utc(2024, time.January, 2, 0), windows[1].Start)
	assert.Equal(t, utc(2024, time.January, 3, 0), windows[2].Start)
}

func TestExpandMonthlyAndYearlySteps(t *testing.T) {
	template := Window{Start: utc(2024, time.January, 15, 19), End: utc(2024, time.January, 15, 21)}

	monthly := Expand(template, Rule{Frequency: FrequencyMonthly, Interval: 2, Count: intPtr(3)})
	assert.Len(t, monthly, 3)
	assert.Equal(t, utc(2024, time.March, 15, 19), monthly[1].Start)
	assert.Equal(t, utc(2024, time.May, 15, 19), monthly[2].Start)

	yearly := Expand(template, Rule{Frequency: FrequencyYearly, Interval: 1, Count: intPtr(2)})
	assert.Len(t, yearly, 2)
	assert.Equal(t, utc(2025, time.January, 15, 19), yearly[1].Start)
}

func TestExpandZeroCount(t *testing.T) {
	template := Window{Start: utc(2024, time.January, 1, 0), End: utc(2024, time.January, 1, 1)}

	windows := Expand(template, Rule{Frequency: FrequencyDaily, Interval: 1, Count: intPtr(0)})

	assert.Empty(t, windows)
}

func TestExpandChronologicalOrder(t *testing.T) {
	template := Window{Start: utc(2024, time.June, 1, 0), End: utc(2024, time.June, 1, 3)}

	windows := Expand(template, Rule{Frequency: FrequencyWeekly, Interval: 1, Count: intPtr(10)})

	for i := 1; i < len(windows); i++ {
		assert.True(t, windows[i].Start.After(windows[i-1].Start))
	}
}

func TestParseFrequency(t *testing.T) {
	assert.Equal(t, FrequencyDaily, ParseFrequency("daily"))
	assert.Equal(t, FrequencyWeekly, ParseFrequency(" Weekly "))
	assert.Equal(t, FrequencyMonthly, ParseFrequency("MONTHLY"))
	assert.Equal(t, FrequencyYearly, ParseFrequency("yearly"))
	assert.Equal(t, FrequencyNone, ParseFrequency("none"))
	assert.Equal(t, FrequencyNone, ParseFrequency("fortnightly"))
}

func TestParseWeekday(t *testing.T) {
	wd, ok := ParseWeekday("monday")
	assert.True(t, ok)
	assert.Equal(t, time.Monday, wd)

	wd, ok = ParseWeekday("WE")
	assert.True(t, ok)
	assert.Equal(t, time.Wednesday, wd)

	_, ok = ParseWeekday("someday")
	assert.False(t, ok)
}
