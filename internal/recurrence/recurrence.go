package recurrence

import (
	"strings"
	"time"
)

// Frequency определяет шаг повторения шаблона события
type Frequency int

const (
	FrequencyNone Frequency = iota
	FrequencyDaily
	FrequencyWeekly
	FrequencyMonthly
	FrequencyYearly
)

// Expansion of any rule without a repeat-until bound stops here. Count alone
// is not enough to guarantee termination: a ByWeekday filter that never
// matches the stepped weekday would otherwise iterate forever without
// filling a single count slot.
const safetyCapYears = 5

func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	case FrequencyMonthly:
		return "monthly"
	case FrequencyYearly:
		return "yearly"
	default:
		return "none"
	}
}

// ParseFrequency разбирает строковое представление частоты; неизвестные
// значения трактуются как none
func ParseFrequency(s string) Frequency {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return FrequencyDaily
	case "weekly":
		return FrequencyWeekly
	case "monthly":
		return FrequencyMonthly
	case "yearly":
		return FrequencyYearly
	default:
		return FrequencyNone
	}
}

// ParseWeekday разбирает название дня недели ("monday", "mon", "MO")
func ParseWeekday(s string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday", "sun", "su":
		return time.Sunday, true
	case "monday", "mon", "mo":
		return time.Monday, true
	case "tuesday", "tue", "tu":
		return time.Tuesday, true
	case "wednesday", "wed", "we":
		return time.Wednesday, true
	case "thursday", "thu", "th":
		return time.Thursday, true
	case "friday", "fri", "fr":
		return time.Friday, true
	case "saturday", "sat", "sa":
		return time.Saturday, true
	}
	return time.Sunday, false
}

// Rule описывает правило повторения шаблона события
type Rule struct {
	Frequency    Frequency
	Interval     int // values below 1 are treated as 1
	Count        *int
	RepeatUntil  *time.Time // inclusive
	ByWeekday    []time.Weekday
	ExcludeDates []time.Time // compared by UTC calendar date only
}

// Window - временное окно одного вхождения события
type Window struct {
	Start time.Time
	End   time.Time
}

// Expand materializes the rule into the ordered list of occurrence windows
// for the given template. Every window keeps the template's duration.
//
// Malformed rules are normalized rather than rejected: a non-positive
// interval becomes 1 and FrequencyNone yields an empty result. Count bounds
// the number of emitted occurrences, not iteration steps - a date suppressed
// by ExcludeDates or ByWeekday still consumes an interval step. Without
// RepeatUntil the safety cap always bounds iteration, even when Count is
// set, so a filter that never matches cannot spin forever.
func Expand(template Window, rule Rule) []Window {
	if rule.Frequency == FrequencyNone {
		return nil
	}

	interval := rule.Interval
	if interval < 1 {
		interval = 1
	}

	duration := template.End.Sub(template.Start)

	limit := rule.RepeatUntil
	if limit == nil {
		capped := template.Start.AddDate(safetyCapYears, 0, 0)
		limit = &capped
	}

	excluded := make(map[string]struct{}, len(rule.ExcludeDates))
	for _, d := range rule.ExcludeDates {
		excluded[dateKey(d)] = struct{}{}
	}

	weekdays := make(map[time.Weekday]struct{}, len(rule.ByWeekday))
	for _, wd := range rule.ByWeekday {
		weekdays[wd] = struct{}{}
	}

	var windows []Window
	current := template.Start
	for {
		if rule.Count != nil && len(windows) >= *rule.Count {
			break
		}
		if current.After(*limit) {
			break
		}

		_, skip := excluded[dateKey(current)]
		if !skip && len(weekdays) > 0 {
			if _, ok := weekdays[current.UTC().Weekday()]; !ok {
				skip = true
			}
		}
		if !skip {
			windows = append(windows, Window{Start: current, End: current.Add(duration)})
		}

		switch rule.Frequency {
		case FrequencyDaily:
			current = current.AddDate(0, 0, interval)
		case FrequencyWeekly:
			current = current.AddDate(0, 0, interval*7)
		case FrequencyMonthly:
			current = current.AddDate(0, interval, 0)
		case FrequencyYearly:
			current = current.AddDate(interval, 0, 0)
		default:
			return windows
		}
	}

	return windows
}

func dateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
