package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func slotsRequest(t *testing.T, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings/slots"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// Validation must reject these before any repository access; the
	// zero-value handler makes a slipped-through request blow up loudly.
	h := &BookingHandler{}
	if err := h.AvailableSlots(c); err != nil {
		t.Fatalf("AvailableSlots returned error: %v", err)
	}
	return rec
}

func TestAvailableSlotsRequiresGameTypeAndDate(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"no params", ""},
		{"missing date", "?game_type=pool"},
		{"missing game_type", "?date=2026-03-10"},
		{"unknown game_type", "?game_type=darts&date=2026-03-10"},
		{"malformed date", "?game_type=pool&date=10-03-2026"},
	}
	for _, c := range cases {
		rec := slotsRequest(t, c.query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", c.name, rec.Code)
		}
	}
}

func TestBookingTotalCents(t *testing.T) {
	if got := bookingTotalCents(30000, 2, nil); got != 60000 {
		t.Fatalf("computed total = %d, want 60000", got)
	}
	if got := bookingTotalCents(30000, 0.5, nil); got != 15000 {
		t.Fatalf("half-hour total = %d, want 15000", got)
	}
	override := uint32(50000)
	if got := bookingTotalCents(30000, 2, &override); got != 50000 {
		t.Fatalf("override total = %d, want 50000", got)
	}
}
