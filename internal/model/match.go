package model

import (
	"time"

	"github.com/Visheshvd/playarena/internal/booking"
)

// Match statuses stored in matches.status.
const (
	MatchOngoing   = "ongoing"
	MatchCompleted = "completed"
)

// Match mirrors the 'matches' table.  A match records a frame between
// two players on one of the venue's tables.  Player names are stored
// alongside the user references so walk-in games without registered
// accounts still render.
type Match struct {
	ID               uint64
	BookingID        *uint64 // optional link back to the booking
	User1ID          *uint64
	User2ID          *uint64
	Player1Name      string
	Player2Name      string
	Player1Points    uint32
	Player2Points    uint32
	Player1HighBreak uint32
	Player2HighBreak uint32
	GameType         booking.GameType
	MatchDate        time.Time
	StartTime        string // "HH:MM", set when the match starts
	EndTime          string // "HH:MM", set on completion
	DurationHours    float64
	AmountPaidCents  uint32
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Winner returns 1 or 2 for the winning side, 0 for a draw.
func (m *Match) Winner() int {
	switch {
	case m.Player1Points > m.Player2Points:
		return 1
	case m.Player2Points > m.Player1Points:
		return 2
	default:
		return 0
	}
}
