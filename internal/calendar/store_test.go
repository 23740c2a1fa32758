package calendar

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_SaveReplacesAndIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	start := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	first := []Event{{Title: "Standup", Start: start, End: start.Add(30 * time.Minute)}}
	if err := s.Save(ctx, "sess-1", first); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.List(ctx, "sess-1")
	if err != nil || len(got) != 1 || got[0].Title != "Standup" {
		t.Fatalf("unexpected list: %v %v", got, err)
	}

	// A later post replaces the stored list, it does not append.
	second := []Event{
		{Title: "Review", Start: start, End: start.Add(time.Hour)},
		{Title: "Retro", Start: start, End: start.Add(2 * time.Hour)},
	}
	if err := s.Save(ctx, "sess-1", second); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, _ = s.List(ctx, "sess-1")
	if len(got) != 2 || got[0].Title != "Review" {
		t.Fatalf("expected replacement, got %v", got)
	}

	other, _ := s.List(ctx, "sess-2")
	if len(other) != 0 {
		t.Fatalf("sessions must be isolated, got %v", other)
	}
}

func TestMemoryStore_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	start := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)
	_ = s.Save(ctx, "sess", []Event{{Title: "Standup", Start: start, End: start.Add(time.Hour)}})

	got, _ := s.List(ctx, "sess")
	got[0].Title = "mutated"

	again, _ := s.List(ctx, "sess")
	if again[0].Title != "Standup" {
		t.Fatalf("stored events must not alias caller slices: %v", again)
	}
}

func TestStore_RejectsEmptySession(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, "", nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if _, err := s.List(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
