package calendar

import (
	"fmt"
	"time"
)

// RawEvent mirrors the event item shape the browser-side Google Calendar
// client returns: a precise dateTime pair for timed events, or date-only
// fields for all-day events.
type RawEvent struct {
	ID      string        `json:"id,omitempty"`
	Summary string        `json:"summary,omitempty"`
	Start   RawEventTime  `json:"start"`
	End     *RawEventTime `json:"end,omitempty"`
}

type RawEventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Event is the uniform shape fed to the calendar view.
// Invariant: End >= Start.
type Event struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

const (
	placeholderTitle = "No Title"
	allDayLayout     = "2006-01-02"
	defaultSpan      = time.Hour
)

// Normalize converts one raw event into the uniform shape. Missing titles get
// a placeholder; a missing or inverted end defaults to Start + 1 hour.
func Normalize(raw RawEvent) (Event, error) {
	start, err := parseEventTime(raw.Start)
	if err != nil {
		return Event{}, fmt.Errorf("event %q start: %w", raw.ID, err)
	}

	end := start.Add(defaultSpan)
	if raw.End != nil {
		if t, err := parseEventTime(*raw.End); err == nil && !t.Before(start) {
			end = t
		}
	}

	title := raw.Summary
	if title == "" {
		title = placeholderTitle
	}

	return Event{Title: title, Start: start, End: end}, nil
}

// Merge concatenates locally-owned events with normalized external events.
// Ordering is concatenation order, not chronological; the view layer sorts if
// it needs to. Raw events that fail to normalize are skipped.
func Merge(local []Event, external []RawEvent) []Event {
	out := make([]Event, 0, len(local)+len(external))
	out = append(out, local...)
	for _, raw := range external {
		e, err := Normalize(raw)
		if err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

func parseEventTime(t RawEventTime) (time.Time, error) {
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	if t.Date != "" {
		return time.Parse(allDayLayout, t.Date)
	}
	return time.Time{}, fmt.Errorf("neither dateTime nor date set")
}
