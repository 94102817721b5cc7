package model

import (
	"time"

	"github.com/Visheshvd/playarena/internal/booking"
)

// Pricing mirrors the 'pricing' table: one active hourly rate per game
// type.  Bookings snapshot the rate at creation time, so editing a row
// here never changes existing records.
type Pricing struct {
	ID                uint64
	GameType          booking.GameType
	PricePerHourCents uint32
	Currency          string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
