// Package booking holds the pure slot arithmetic and status rules for
// table bookings.  Nothing in this package touches the database; the
// repository layer loads rows and handlers feed them through these
// functions.  Clock values are "HH:MM" strings in venue-local time and
// intervals are half-open [start, end) in minutes since midnight.
package booking

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// GameType identifies which shared asset is being booked.
type GameType string

const (
	GamePool    GameType = "pool"
	GameSnooker GameType = "snooker"
)

// ValidGameType reports whether s is one of the two supported game types.
func ValidGameType(s string) bool {
	return s == string(GamePool) || s == string(GameSnooker)
}

// Duration policy bounds in hours.
const (
	MinDurationHours = 0.5
	MaxDurationHours = 12
)

// clockRe matches 24-hour HH:MM clock strings ("9:05" and "09:05" both accepted).
var clockRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ErrBadClock is returned when a clock string is not valid HH:MM.
var ErrBadClock = errors.New("invalid HH:MM clock value")

// ValidClock reports whether s is a well-formed HH:MM value.
func ValidClock(s string) bool { return clockRe.MatchString(s) }

// MinuteOfDay converts an HH:MM string to minutes since midnight.
func MinuteOfDay(clock string) (int, error) {
	if !clockRe.MatchString(clock) {
		return 0, ErrBadClock
	}
	parts := strings.SplitN(clock, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as a zero-padded HH:MM
// string.  Values at or past 24h wrap to the next day's clock face.
func FormatClock(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// EndTime computes the end clock for a booking that starts at the given
// HH:MM and runs for durationHours.  The result wraps past midnight for
// display; interval comparisons elsewhere use the unwrapped minutes.
func EndTime(start string, durationHours float64) (string, error) {
	s, err := MinuteOfDay(start)
	if err != nil {
		return "", err
	}
	return FormatClock(s + int(durationHours*60)), nil
}

// DurationBetween returns the duration in hours between two clock
// values.  When end is at or before start the interval is treated as
// rolling into the next calendar day.
func DurationBetween(start, end string) (float64, error) {
	s, err := MinuteOfDay(start)
	if err != nil {
		return 0, err
	}
	e, err := MinuteOfDay(end)
	if err != nil {
		return 0, err
	}
	diff := e - s
	if diff < 0 {
		diff += 24 * 60
	}
	return float64(diff) / 60, nil
}

// ValidDuration reports whether d is within the venue's policy bounds.
func ValidDuration(d float64) bool {
	return d >= MinDurationHours && d <= MaxDurationHours
}

// Interval is a candidate or stored reservation window in raw minutes
// since midnight.  End may exceed 1440 for spans computed from a
// duration; the overlap rule compares the raw values without midnight
// correction, matching how the venue has always taken bookings.
type Interval struct {
	Start int
	End   int
}

// NewInterval builds an Interval from a start clock and duration.
func NewInterval(start string, durationHours float64) (Interval, error) {
	s, err := MinuteOfDay(start)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: s, End: s + int(durationHours*60)}, nil
}

// Overlaps reports whether two half-open intervals share any instant:
// [a,b) and [c,d) overlap iff a < d && b > c.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && iv.End > other.Start
}

// HasConflict reports whether the candidate interval collides with any
// of the existing intervals.  Callers are expected to pass only
// intervals from accepted bookings that are still upcoming or ongoing.
func HasConflict(existing []Interval, candidate Interval) bool {
	for _, iv := range existing {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}

// SlotTaken reports whether the start instant of a display slot falls
// inside any existing reservation window.  The availability grid marks
// a slot booked by its start instant only, which is how the venue has
// always rendered it; a 14:30 booking therefore leaves the 14:00 slot
// showing free even though Overlaps would reject a new 14:00 booking.
func SlotTaken(existing []Interval, slotStart int) bool {
	for _, iv := range existing {
		if slotStart >= iv.Start && slotStart < iv.End {
			return true
		}
	}
	return false
}

// WithinOperatingHours reports whether the start hour of a clock value
// falls inside the venue's [openHour, closeHour) window.
func WithinOperatingHours(start string, openHour, closeHour int) bool {
	m, err := MinuteOfDay(start)
	if err != nil {
		return false
	}
	h := m / 60
	return h >= openHour && h < closeHour
}
