package model

import (
	"errors"
	"time"

	"github.com/Visheshvd/playarena/internal/booking"
)

// Lifecycle transition errors.  Handlers translate these into 409
// conflict responses.
var (
	// ErrAlreadyAccepted is returned when accepting a request that was
	// already accepted.  The guard keeps the acceptance notification
	// from being sent twice.
	ErrAlreadyAccepted = errors.New("booking is already accepted")
	// ErrAlreadyDeclined is returned when declining a request twice.
	ErrAlreadyDeclined = errors.New("booking is already declined")
	// ErrDeclinedFinal is returned when accepting a declined request;
	// a declined booking is terminal.
	ErrDeclinedFinal = errors.New("booking was declined and cannot be accepted")
)

// Booking mirrors the 'bookings' table.  A booking reserves one table
// (pool or snooker) for a half-open [start_time, end_time) window on a
// calendar date.  Monetary columns are snapshots taken from the pricing
// table at creation time; later pricing changes never touch them.
//
// Status is authoritative only for the cancelled terminal case; every
// read path recomputes it through booking.DeriveStatus.
type Booking struct {
	ID                uint64
	UserID            *uint64 // nullable: admin-entered walk-in records
	PlayerName        string
	GameType          booking.GameType
	Date              time.Time // calendar date, venue-local
	StartTime         string    // "HH:MM"
	EndTime           string    // "HH:MM", empty for partial admin records
	DurationHours     float64
	PricePerHourCents uint32
	TotalAmountCents  uint32
	AmountPaidCents   uint32
	Status            booking.DisplayStatus
	RequestState      booking.RequestState
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DisplayStatus derives the booking's presentation status at the given
// instant.
func (b *Booking) DisplayStatus(now time.Time) booking.DisplayStatus {
	return booking.DeriveStatus(b.Date, b.StartTime, b.EndTime, b.Status, b.RequestState, now)
}

// Interval returns the booking's raw-minute reservation window.
func (b *Booking) Interval() (booking.Interval, error) {
	start, err := booking.MinuteOfDay(b.StartTime)
	if err != nil {
		return booking.Interval{}, err
	}
	end, err := booking.MinuteOfDay(b.EndTime)
	if err != nil {
		return booking.Interval{}, err
	}
	return booking.Interval{Start: start, End: end}, nil
}

// Accept moves a pending request to accepted.  Re-accepting and
// accepting a declined request are rejected so that the transition and
// its customer notification happen at most once.
func (b *Booking) Accept() error {
	switch b.RequestState {
	case booking.RequestAccepted:
		return ErrAlreadyAccepted
	case booking.RequestDeclined:
		return ErrDeclinedFinal
	}
	b.RequestState = booking.RequestAccepted
	return nil
}

// Decline moves a request to the declined terminal state and pins the
// display status to cancelled.  Declining twice is rejected.
func (b *Booking) Decline() error {
	if b.RequestState == booking.RequestDeclined {
		return ErrAlreadyDeclined
	}
	b.RequestState = booking.RequestDeclined
	b.Status = booking.StatusCancelled
	return nil
}
