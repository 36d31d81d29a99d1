// Package analytics aggregates an order snapshot into sales reports.
package analytics

import (
	"strings"
	"time"

	nt "cafedash/entity"
)

const dateLayout = "2006-01-02"

// Range bounds orders by calendar date, inclusive; nil bounds are open.
type Range struct {
	Start *time.Time
	End   *time.Time
}

// ParseRange reads YYYY-MM-DD bounds, ignoring blank or unparsable ones.
func ParseRange(start, end string) Range {
	return Range{
		Start: parseDate(start),
		End:   parseDate(end),
	}
}

// DateRange bounds orders to [start, end].
func DateRange(start, end time.Time) Range {
	start, end = dateOf(start), dateOf(end)
	return Range{Start: &start, End: &end}
}

// Open reports whether the range has no bounds.
func (rng Range) Open() bool {
	return rng.Start == nil && rng.End == nil
}

// Contains checks the order's calendar date against the bounds.
// Orders without a parsable timestamp are only contained by an open range.
func (rng Range) Contains(order nt.Order) bool {

	if rng.Open() {
		return true
	}

	tm, err := order.Time()
	if err != nil {
		return false
	}
	day := dateOf(tm)

	if rng.Start != nil && day.Before(*rng.Start) {
		return false
	}
	if rng.End != nil && day.After(*rng.End) {
		return false
	}
	return true
}

// Within returns orders in range, preserving order.
func Within(orders []nt.Order, rng Range) []nt.Order {

	out := []nt.Order{}
	for _, order := range orders {
		if rng.Contains(order) {
			out = append(out, order)
		}
	}
	return out
}

// unexported

func parseDate(text string) *time.Time {

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	tm, err := time.Parse(dateLayout, text)
	if err != nil {
		return nil
	}
	return &tm
}

// dateOf drops the clock, keeping the calendar date in the time's own zone.
func dateOf(tm time.Time) time.Time {
	return time.Date(tm.Year(), tm.Month(), tm.Day(), 0, 0, 0, 0, time.UTC)
}
