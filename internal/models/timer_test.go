package models

import (
	"testing"
	"time"
)

func TestActiveTimerElapsedExcludesPauses(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	timer := &ActiveTimer{StartTime: start}

	now := start.Add(10 * time.Minute)
	if got := timer.Elapsed(now); got != 10*time.Minute {
		t.Fatalf("elapsed: want 10m, got %v", got)
	}

	timer.Pause(now)
	if !timer.Paused() {
		t.Fatalf("timer should be paused")
	}
	// display frozen during the pause
	if got := timer.Elapsed(now.Add(25 * time.Minute)); got != 10*time.Minute {
		t.Fatalf("paused elapsed: want 10m, got %v", got)
	}

	timer.Resume(now.Add(25 * time.Minute))
	if got := timer.Elapsed(now.Add(30 * time.Minute)); got != 15*time.Minute {
		t.Fatalf("resumed elapsed: want 15m, got %v", got)
	}
}

func TestActiveTimerToTimeEntry(t *testing.T) {
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	stop := start.Add(3725*time.Second + 900*time.Millisecond)
	timer := &ActiveTimer{UserID: "u", ProjectID: "p", StartTime: start, Description: "work"}

	entry := timer.ToTimeEntry(stop)
	if entry.Duration != 3725 {
		t.Fatalf("duration: want floor seconds 3725, got %d", entry.Duration)
	}
	if got := int64(entry.EndTime.Sub(entry.StartTime).Seconds()); got != entry.Duration {
		t.Fatalf("end-start must equal duration, got %d vs %d", got, entry.Duration)
	}
	if entry.Status != EntryStatusPending {
		t.Fatalf("status: want pending, got %s", entry.Status)
	}
}
