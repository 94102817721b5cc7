package booking

import "time"

// RequestState is the admin-approval workflow state of a booking.
type RequestState string

const (
	RequestPending  RequestState = "pending"
	RequestAccepted RequestState = "accepted"
	RequestDeclined RequestState = "declined"
)

// DisplayStatus is the presentation status shown to clients.  Except
// for the cancelled terminal case it is derived from the wall clock on
// every read and never treated as a stored source of truth.
type DisplayStatus string

const (
	StatusUpcoming  DisplayStatus = "upcoming"
	StatusOngoing   DisplayStatus = "ongoing"
	StatusCompleted DisplayStatus = "completed"
	StatusCancelled DisplayStatus = "cancelled"
)

// DeriveStatus computes the display status of a booking at the given
// instant.
//
// Declined or cancelled bookings stay cancelled forever.  Partial
// records without an end time (admin-entered placeholders) keep their
// stored status.  Otherwise the stored date is combined with the start
// and end clocks; an end at or before the start rolls to the next
// calendar day.  The end instant itself still counts as ongoing.
func DeriveStatus(date time.Time, startClock, endClock string, stored DisplayStatus, req RequestState, now time.Time) DisplayStatus {
	if req == RequestDeclined || stored == StatusCancelled {
		return StatusCancelled
	}
	if endClock == "" {
		if stored == "" {
			return StatusUpcoming
		}
		return stored
	}
	startMin, err := MinuteOfDay(startClock)
	if err != nil {
		return stored
	}
	endMin, err := MinuteOfDay(endClock)
	if err != nil {
		return stored
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	start := day.Add(time.Duration(startMin) * time.Minute)
	end := day.Add(time.Duration(endMin) * time.Minute)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}

	switch {
	case now.Before(start):
		return StatusUpcoming
	case now.After(end):
		return StatusCompleted
	default:
		return StatusOngoing
	}
}
