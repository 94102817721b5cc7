package model

import (
	"testing"
	"time"

	"github.com/Visheshvd/playarena/internal/booking"
)

func pendingBooking() Booking {
	return Booking{
		ID:           1,
		PlayerName:   "Asha",
		GameType:     booking.GamePool,
		Date:         time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local),
		StartTime:    "14:00",
		EndTime:      "16:00",
		Status:       booking.StatusUpcoming,
		RequestState: booking.RequestPending,
	}
}

func TestAcceptFromPending(t *testing.T) {
	b := pendingBooking()
	if err := b.Accept(); err != nil {
		t.Fatalf("Accept from pending: %v", err)
	}
	if b.RequestState != booking.RequestAccepted {
		t.Fatalf("request state = %q, want accepted", b.RequestState)
	}
}

func TestAcceptTwiceIsRejected(t *testing.T) {
	b := pendingBooking()
	if err := b.Accept(); err != nil {
		t.Fatal(err)
	}
	if err := b.Accept(); err != ErrAlreadyAccepted {
		t.Fatalf("second Accept = %v, want ErrAlreadyAccepted", err)
	}
}

func TestAcceptAfterDeclineIsRejected(t *testing.T) {
	b := pendingBooking()
	if err := b.Decline(); err != nil {
		t.Fatal(err)
	}
	if err := b.Accept(); err != ErrDeclinedFinal {
		t.Fatalf("Accept after decline = %v, want ErrDeclinedFinal", err)
	}
}

func TestDeclineSetsCancelled(t *testing.T) {
	b := pendingBooking()
	if err := b.Decline(); err != nil {
		t.Fatal(err)
	}
	if b.RequestState != booking.RequestDeclined {
		t.Fatalf("request state = %q, want declined", b.RequestState)
	}
	if b.Status != booking.StatusCancelled {
		t.Fatalf("status = %q, want cancelled", b.Status)
	}
	// The derived status must agree regardless of the clock.
	if got := b.DisplayStatus(time.Date(2026, time.March, 10, 15, 0, 0, 0, time.Local)); got != booking.StatusCancelled {
		t.Fatalf("DisplayStatus of declined booking = %q, want cancelled", got)
	}
}

func TestDeclineTwiceIsRejected(t *testing.T) {
	b := pendingBooking()
	if err := b.Decline(); err != nil {
		t.Fatal(err)
	}
	if err := b.Decline(); err != ErrAlreadyDeclined {
		t.Fatalf("second Decline = %v, want ErrAlreadyDeclined", err)
	}
}

func TestDeclineAcceptedBookingCancelsIt(t *testing.T) {
	b := pendingBooking()
	if err := b.Accept(); err != nil {
		t.Fatal(err)
	}
	if err := b.Decline(); err != nil {
		t.Fatalf("Decline after accept: %v", err)
	}
	if b.Status != booking.StatusCancelled {
		t.Fatalf("status = %q, want cancelled", b.Status)
	}
}

func TestMatchWinner(t *testing.T) {
	m := Match{Player1Points: 50, Player2Points: 30}
	if m.Winner() != 1 {
		t.Fatal("player 1 should win 50-30")
	}
	m = Match{Player1Points: 10, Player2Points: 30}
	if m.Winner() != 2 {
		t.Fatal("player 2 should win 10-30")
	}
	m = Match{Player1Points: 30, Player2Points: 30}
	if m.Winner() != 0 {
		t.Fatal("equal points is a draw")
	}
}

func TestStatsTotalMatches(t *testing.T) {
	s := Stats{TotalWins: 3, TotalLosses: 2}
	if s.TotalMatches() != 5 {
		t.Fatalf("TotalMatches = %d, want 5", s.TotalMatches())
	}
}
