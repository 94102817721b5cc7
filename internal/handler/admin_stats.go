package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/repository"
)

// AdminStatsHandler serves the dashboard counters.
type AdminStatsHandler struct {
	Users    *repository.UserRepo
	Bookings *repository.BookingRepo
	Matches  *repository.MatchRepo
}

// Dashboard returns venue-wide totals plus today's activity.
func (h *AdminStatsHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.Add(24 * time.Hour)

	customers, err := h.Users.CountCustomers(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load dashboard")
	}
	bookingsTotal, err := h.Bookings.CountAll(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load dashboard")
	}
	bookingsToday, err := h.Bookings.CountOnDate(ctx, today)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load dashboard")
	}
	matchesTotal, err := h.Matches.CountAll(ctx)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load dashboard")
	}
	matchesToday, err := h.Matches.CountBetween(ctx, today, tomorrow)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load dashboard")
	}
	revenueTotal, err := h.Matches.RevenueCents(ctx, time.Time{}, time.Time{})
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load dashboard")
	}
	revenueToday, err := h.Matches.RevenueCents(ctx, today, tomorrow)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load dashboard")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"customers":           customers,
		"bookings_total":      bookingsTotal,
		"bookings_today":      bookingsToday,
		"matches_total":       matchesTotal,
		"matches_today":       matchesToday,
		"revenue_cents_total": revenueTotal,
		"revenue_cents_today": revenueToday,
	})
}
