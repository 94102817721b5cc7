package booking

import "testing"

func TestMinuteOfDayAndFormatClock(t *testing.T) {
	cases := []struct {
		clock string
		min   int
	}{
		{"00:00", 0},
		{"09:05", 545},
		{"9:05", 545},
		{"14:00", 840},
		{"23:59", 1439},
	}
	for _, c := range cases {
		got, err := MinuteOfDay(c.clock)
		if err != nil {
			t.Fatalf("MinuteOfDay(%q): %v", c.clock, err)
		}
		if got != c.min {
			t.Fatalf("MinuteOfDay(%q) = %d, want %d", c.clock, got, c.min)
		}
	}
	if got := FormatClock(840); got != "14:00" {
		t.Fatalf("FormatClock(840) = %q, want 14:00", got)
	}
	// past-midnight wrap
	if got := FormatClock(1500); got != "01:00" {
		t.Fatalf("FormatClock(1500) = %q, want 01:00", got)
	}
}

func TestMinuteOfDayRejectsBadClocks(t *testing.T) {
	for _, s := range []string{"", "24:00", "12:60", "1400", "ab:cd", "14:0"} {
		if _, err := MinuteOfDay(s); err == nil {
			t.Fatalf("MinuteOfDay(%q) accepted invalid clock", s)
		}
	}
}

func TestEndTimeRoundTrip(t *testing.T) {
	end, err := EndTime("14:00", 2)
	if err != nil {
		t.Fatal(err)
	}
	if end != "16:00" {
		t.Fatalf("EndTime(14:00, 2h) = %q, want 16:00", end)
	}
	d, err := DurationBetween("14:00", end)
	if err != nil {
		t.Fatal(err)
	}
	if d != 2 {
		t.Fatalf("DurationBetween(14:00, 16:00) = %v, want 2", d)
	}
}

func TestDurationBetweenRollsOverMidnight(t *testing.T) {
	d, err := DurationBetween("23:00", "01:00")
	if err != nil {
		t.Fatal(err)
	}
	if d != 2 {
		t.Fatalf("DurationBetween(23:00, 01:00) = %v, want 2", d)
	}
}

func TestValidDuration(t *testing.T) {
	for _, d := range []float64{0.5, 1, 2.5, 12} {
		if !ValidDuration(d) {
			t.Fatalf("ValidDuration(%v) = false, want true", d)
		}
	}
	for _, d := range []float64{0, 0.25, 12.5, -1} {
		if ValidDuration(d) {
			t.Fatalf("ValidDuration(%v) = true, want false", d)
		}
	}
}

func TestOverlaps(t *testing.T) {
	mk := func(start string, hours float64) Interval {
		iv, err := NewInterval(start, hours)
		if err != nil {
			t.Fatalf("NewInterval(%q, %v): %v", start, hours, err)
		}
		return iv
	}
	cases := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", mk("14:00", 1), mk("14:00", 1), true},
		{"partial overlap", mk("14:00", 1), mk("14:30", 1), true},
		{"contained", mk("14:00", 4), mk("15:00", 1), true},
		{"back to back", mk("14:00", 1), mk("15:00", 1), false},
		{"disjoint", mk("14:00", 1), mk("16:00", 1), false},
		{"touching at start", mk("13:00", 1), mk("14:00", 1), false},
	}
	for _, c := range cases {
		if got := c.a.Overlaps(c.b); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
		// symmetry
		if got := c.b.Overlaps(c.a); got != c.want {
			t.Errorf("%s (reversed): Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestHasConflict(t *testing.T) {
	existing := []Interval{
		mustInterval(t, "14:00", 1),
		mustInterval(t, "18:00", 2),
	}
	if !HasConflict(existing, mustInterval(t, "14:30", 1)) {
		t.Fatal("expected conflict with 14:00-15:00 slot")
	}
	if HasConflict(existing, mustInterval(t, "15:00", 1)) {
		t.Fatal("back-to-back slot should not conflict")
	}
	if HasConflict(nil, mustInterval(t, "14:00", 1)) {
		t.Fatal("no existing bookings should never conflict")
	}
}

func mustInterval(t *testing.T, start string, hours float64) Interval {
	t.Helper()
	iv, err := NewInterval(start, hours)
	if err != nil {
		t.Fatal(err)
	}
	return iv
}

func TestSlotTakenUsesStartInstantOnly(t *testing.T) {
	// One booking from 14:30 to 15:30.
	existing := []Interval{mustInterval(t, "14:30", 1)}

	// The 14:00 display slot still shows free: its start instant lies
	// before the booking, even though a new 14:00-15:00 booking would
	// be rejected by the overlap rule.
	if SlotTaken(existing, 14*60) {
		t.Fatal("14:00 slot should render free against a 14:30-15:30 booking")
	}
	if HasConflict(existing, mustInterval(t, "14:00", 1)) != true {
		t.Fatal("a 14:00-15:00 booking must still conflict with 14:30-15:30")
	}

	// The 15:00 slot starts inside the booking window.
	if !SlotTaken(existing, 15*60) {
		t.Fatal("15:00 slot should render booked against a 14:30-15:30 booking")
	}
	// Half-open end: a slot starting exactly at the booking's end is free.
	if SlotTaken(existing, 15*60+30) {
		t.Fatal("15:30 slot should render free; the booking ends there")
	}
	if SlotTaken(nil, 14*60) {
		t.Fatal("no bookings should leave every slot free")
	}
}

func TestWithinOperatingHours(t *testing.T) {
	cases := []struct {
		start string
		want  bool
	}{
		{"11:00", true},
		{"22:59", true},
		{"10:59", false},
		{"23:00", false},
		{"02:00", false},
	}
	for _, c := range cases {
		if got := WithinOperatingHours(c.start, 11, 23); got != c.want {
			t.Errorf("WithinOperatingHours(%q) = %v, want %v", c.start, got, c.want)
		}
	}
}

func TestValidGameType(t *testing.T) {
	if !ValidGameType("pool") || !ValidGameType("snooker") {
		t.Fatal("pool and snooker must be valid game types")
	}
	if ValidGameType("billiards") || ValidGameType("") {
		t.Fatal("unknown game types must be rejected")
	}
}
