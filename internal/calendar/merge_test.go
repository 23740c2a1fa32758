package calendar

import (
	"testing"
	"time"
)

func TestNormalize_PreservesExplicitDateTimes(t *testing.T) {
	raw := RawEvent{
		ID:      "e1",
		Summary: "Standup",
		Start:   RawEventTime{DateTime: "2024-04-01T09:00:00Z"},
		End:     &RawEventTime{DateTime: "2024-04-01T09:30:00Z"},
	}
	e, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.Title != "Standup" {
		t.Fatalf("title: %q", e.Title)
	}
	if !e.Start.Equal(time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("start: %v", e.Start)
	}
	if !e.End.Equal(time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("end must be preserved exactly: %v", e.End)
	}
}

func TestNormalize_AllDayWithoutEndDefaultsToOneHour(t *testing.T) {
	raw := RawEvent{Start: RawEventTime{Date: "2024-04-01"}}
	e, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.Title != "No Title" {
		t.Fatalf("missing title must get placeholder: %q", e.Title)
	}
	if !e.End.Equal(e.Start.Add(time.Hour)) {
		t.Fatalf("missing end must default to start+1h: %v..%v", e.Start, e.End)
	}
}

func TestNormalize_InvertedEndFallsBack(t *testing.T) {
	raw := RawEvent{
		Start: RawEventTime{DateTime: "2024-04-01T10:00:00Z"},
		End:   &RawEventTime{DateTime: "2024-04-01T09:00:00Z"},
	}
	e, err := Normalize(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if e.End.Before(e.Start) {
		t.Fatalf("end must never precede start: %v..%v", e.Start, e.End)
	}
	if !e.End.Equal(e.Start.Add(time.Hour)) {
		t.Fatalf("inverted end must fall back to start+1h: %v", e.End)
	}
}

func TestNormalize_RejectsEmptyStart(t *testing.T) {
	if _, err := Normalize(RawEvent{}); err == nil {
		t.Fatalf("expected error for event without start")
	}
}

func TestMerge_ConcatenationOrderAndSkips(t *testing.T) {
	local := []Event{{Title: "local", Start: time.Unix(0, 0), End: time.Unix(3600, 0)}}
	external := []RawEvent{
		{Summary: "bad"}, // no start; skipped
		{Summary: "ok", Start: RawEventTime{Date: "2024-04-02"}},
	}
	got := Merge(local, external)
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Title != "local" || got[1].Title != "ok" {
		t.Fatalf("concatenation order not preserved: %+v", got)
	}
}
