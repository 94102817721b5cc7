package booking

import (
	"testing"
	"time"
)

var day = time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, 0, 0, time.Local)
}

func TestDeriveStatusAroundWindow(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want DisplayStatus
	}{
		{"before start", at(13, 59), StatusUpcoming},
		{"at start", at(14, 0), StatusOngoing},
		{"mid window", at(15, 0), StatusOngoing},
		{"at end", at(16, 0), StatusOngoing}, // end instant inclusive
		{"after end", at(16, 1), StatusCompleted},
	}
	for _, c := range cases {
		got := DeriveStatus(day, "14:00", "16:00", StatusUpcoming, RequestAccepted, c.now)
		if got != c.want {
			t.Errorf("%s: DeriveStatus = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestDeriveStatusCrossMidnight(t *testing.T) {
	// 23:00-01:00 rolls the end to the next calendar day.
	if got := DeriveStatus(day, "23:00", "01:00", StatusUpcoming, RequestAccepted, at(23, 30)); got != StatusOngoing {
		t.Fatalf("23:30 inside 23:00-01:00 window = %q, want ongoing", got)
	}
	next := time.Date(2026, time.March, 11, 0, 30, 0, 0, time.Local)
	if got := DeriveStatus(day, "23:00", "01:00", StatusUpcoming, RequestAccepted, next); got != StatusOngoing {
		t.Fatalf("00:30 next day inside window = %q, want ongoing", got)
	}
	after := time.Date(2026, time.March, 11, 1, 30, 0, 0, time.Local)
	if got := DeriveStatus(day, "23:00", "01:00", StatusUpcoming, RequestAccepted, after); got != StatusCompleted {
		t.Fatalf("01:30 next day after window = %q, want completed", got)
	}
}

func TestDeriveStatusDeclinedIsAlwaysCancelled(t *testing.T) {
	for _, now := range []time.Time{at(10, 0), at(15, 0), at(20, 0)} {
		if got := DeriveStatus(day, "14:00", "16:00", StatusUpcoming, RequestDeclined, now); got != StatusCancelled {
			t.Fatalf("declined booking at %v = %q, want cancelled", now, got)
		}
	}
	// A stored cancelled status is terminal even for accepted requests.
	if got := DeriveStatus(day, "14:00", "16:00", StatusCancelled, RequestAccepted, at(15, 0)); got != StatusCancelled {
		t.Fatal("stored cancelled must stay cancelled")
	}
}

func TestDeriveStatusPartialRecordKeepsStored(t *testing.T) {
	if got := DeriveStatus(day, "14:00", "", StatusOngoing, RequestAccepted, at(20, 0)); got != StatusOngoing {
		t.Fatalf("partial record = %q, want stored ongoing", got)
	}
	if got := DeriveStatus(day, "14:00", "", "", RequestAccepted, at(20, 0)); got != StatusUpcoming {
		t.Fatalf("partial record without stored status = %q, want upcoming", got)
	}
}

func TestDeriveStatusIsIdempotent(t *testing.T) {
	now := at(15, 0)
	first := DeriveStatus(day, "14:00", "16:00", StatusUpcoming, RequestAccepted, now)
	second := DeriveStatus(day, "14:00", "16:00", first, RequestAccepted, now)
	if first != second {
		t.Fatalf("derive not stable: %q then %q", first, second)
	}
}

func TestDeriveStatusBadClockFallsBack(t *testing.T) {
	if got := DeriveStatus(day, "xx:yy", "16:00", StatusUpcoming, RequestAccepted, at(15, 0)); got != StatusUpcoming {
		t.Fatalf("unparseable start = %q, want stored status", got)
	}
}
