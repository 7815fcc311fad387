package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
)

func TestParseDaily(t *testing.T) {
	tests := []struct {
		name    string
		at      string
		want    string
		wantErr bool
	}{
		{name: "morning", at: "08:00", want: "0 8 * * *"},
		{name: "evening", at: "20:30", want: "30 20 * * *"},
		{name: "midnight", at: "00:00", want: "0 0 * * *"},
		{name: "last minute", at: "23:59", want: "59 23 * * *"},
		{name: "hour out of range", at: "24:00", wantErr: true},
		{name: "minute out of range", at: "08:60", wantErr: true},
		{name: "not a time", at: "soon", wantErr: true},
		{name: "empty", at: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDaily(tt.at)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseDaily(%q) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

// A trigger time that has already passed is not caught up: the next run is the
// following day.
func TestDailyTriggerHasNoCatchUp(t *testing.T) {
	spec, err := parseDaily("08:00")
	if err != nil {
		t.Fatalf("parse daily: %v", err)
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		t.Fatalf("parse cron spec: %v", err)
	}

	afterTrigger := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	next := sched.Next(afterTrigger)

	want := time.Date(2026, 3, 13, 8, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next run after %v = %v, want %v", afterTrigger, next, want)
	}
}

func TestAddDaily(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(log)

	if err := s.AddDaily("results", "08:00", func(context.Context) {}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := s.AddDaily("broken", "25:00", func(context.Context) {}); err == nil {
		t.Error("expected error for invalid time, got nil")
	}
}
