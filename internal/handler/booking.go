package handler

import (
	"database/sql"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/booking"
	"github.com/Visheshvd/playarena/internal/config"
	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/queue"
	"github.com/Visheshvd/playarena/internal/repository"
	notifier "github.com/Visheshvd/playarena/internal/service"
)

const dateLayout = "2006-01-02"

// BookingHandler serves the customer-facing booking endpoints: creating
// a request, listing one's own bookings and checking slot availability.
type BookingHandler struct {
	Cfg      config.Config
	Bookings *repository.BookingRepo
	Pricing  *repository.PricingRepo
	Users    *repository.UserRepo
}

type createBookingRequest struct {
	GameType      string  `json:"game_type"`
	BookingDate   string  `json:"booking_date"` // YYYY-MM-DD
	StartTime     string  `json:"start_time"`   // HH:MM
	DurationHours float64 `json:"duration_hours"`
	PlayerName    string  `json:"player_name"`
	// Optional explicit total (deposits, negotiated rates); when
	// absent the total is rate x duration.
	TotalAmountCents *uint32 `json:"total_amount_cents"`
}

// bookingTotalCents prices a booking from the hourly rate unless the
// caller supplied an explicit total.
func bookingTotalCents(pricePerHour uint32, hours float64, override *uint32) uint32 {
	if override != nil {
		return *override
	}
	return uint32(math.Round(hours * float64(pricePerHour)))
}

type bookingView struct {
	ID                uint64                `json:"id"`
	UserID            *uint64               `json:"user_id,omitempty"`
	PlayerName        string                `json:"player_name"`
	GameType          booking.GameType      `json:"game_type"`
	BookingDate       string                `json:"booking_date"`
	StartTime         string                `json:"start_time"`
	EndTime           string                `json:"end_time,omitempty"`
	DurationHours     float64               `json:"duration_hours"`
	PricePerHourCents uint32                `json:"price_per_hour_cents"`
	TotalAmountCents  uint32                `json:"total_amount_cents"`
	AmountPaidCents   uint32                `json:"amount_paid_cents"`
	RequestStatus     booking.RequestState  `json:"request_status"`
	Status            booking.DisplayStatus `json:"status"`
	CreatedAt         time.Time             `json:"created_at"`
}

func toBookingView(b model.Booking, now time.Time) bookingView {
	return bookingView{
		ID:                b.ID,
		UserID:            b.UserID,
		PlayerName:        b.PlayerName,
		GameType:          b.GameType,
		BookingDate:       b.Date.Format(dateLayout),
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		DurationHours:     b.DurationHours,
		PricePerHourCents: b.PricePerHourCents,
		TotalAmountCents:  b.TotalAmountCents,
		AmountPaidCents:   b.AmountPaidCents,
		RequestStatus:     b.RequestState,
		Status:            b.DisplayStatus(now),
		CreatedAt:         b.CreatedAt,
	}
}

func bookingViews(list []model.Booking, now time.Time) []bookingView {
	out := make([]bookingView, 0, len(list))
	for i := range list {
		out = append(out, toBookingView(list[i], now))
	}
	return out
}

// activeIntervals extracts the reservation windows of accepted bookings
// that are still upcoming or ongoing.  Finished and cancelled slots no
// longer block the table.
func activeIntervals(list []model.Booking, now time.Time) []booking.Interval {
	var out []booking.Interval
	for i := range list {
		b := &list[i]
		switch b.DisplayStatus(now) {
		case booking.StatusCompleted, booking.StatusCancelled:
			continue
		}
		iv, err := b.Interval()
		if err != nil {
			continue // partial admin record without a parseable window
		}
		out = append(out, iv)
	}
	return out
}

// Create files a booking request.  The overlap check and the insert run
// in one transaction with the day's accepted rows locked, so two
// concurrent requests for the same window cannot both get in.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	if !booking.ValidGameType(req.GameType) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "game_type must be pool or snooker")
	}
	if !booking.ValidClock(req.StartTime) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "start_time must be HH:MM")
	}
	if !booking.ValidDuration(req.DurationHours) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "duration_hours must be between 0.5 and 12")
	}
	date, err := time.ParseInLocation(dateLayout, req.BookingDate, time.Local)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "booking_date must be YYYY-MM-DD")
	}
	if !booking.WithinOperatingHours(req.StartTime, h.Cfg.OpenHour, h.Cfg.CloseHour) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "start_time is outside operating hours")
	}

	now := time.Now()
	startMin, _ := booking.MinuteOfDay(req.StartTime)
	startAt := date.Add(time.Duration(startMin) * time.Minute)
	if startAt.Before(now) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "cannot book a slot in the past")
	}

	ctx := c.Request().Context()

	playerName := strings.TrimSpace(req.PlayerName)
	if playerName == "" {
		u, err := h.Users.GetByID(ctx, uid)
		if err != nil {
			return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load user")
		}
		playerName = u.Name
	}

	price, err := h.Pricing.GetActive(ctx, booking.GameType(req.GameType))
	if err == repository.ErrPricingNotFound {
		return jsonError(c, http.StatusInternalServerError, "config_error", "no pricing configured for this game type")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load pricing")
	}

	endTime, err := booking.EndTime(req.StartTime, req.DurationHours)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "start_time must be HH:MM")
	}
	candidate, err := booking.NewInterval(req.StartTime, req.DurationHours)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "start_time must be HH:MM")
	}

	total := bookingTotalCents(price.PricePerHourCents, req.DurationHours, req.TotalAmountCents)

	tx, err := h.Bookings.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not open transaction")
	}
	defer func() { _ = tx.Rollback() }()

	accepted, err := h.Bookings.AcceptedForDateTx(ctx, tx, booking.GameType(req.GameType), date)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not check availability")
	}
	if booking.HasConflict(activeIntervals(accepted, now), candidate) {
		return jsonError(c, http.StatusConflict, "conflict", "the requested slot overlaps an accepted booking")
	}

	b := model.Booking{
		UserID:            &uid,
		PlayerName:        playerName,
		GameType:          booking.GameType(req.GameType),
		Date:              date,
		StartTime:         req.StartTime,
		EndTime:           endTime,
		DurationHours:     req.DurationHours,
		PricePerHourCents: price.PricePerHourCents,
		TotalAmountCents:  total,
		Status:            booking.StatusUpcoming,
		RequestState:      booking.RequestPending,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &b); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not create booking")
	}
	if err := tx.Commit(); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not create booking")
	}

	// Fire-and-forget: a broker outage must not fail the booking.
	_ = notifier.ToAdmins(ctx, queue.TypeBookingRequested,
		"New booking request",
		playerName+" requested "+string(b.GameType)+" on "+req.BookingDate+" at "+req.StartTime,
		"booking-request", map[string]string{"booking_id": itoa(b.ID)})

	return c.JSON(http.StatusCreated, echo.Map{"booking": toBookingView(b, now)})
}

// MyBookings returns one page of the caller's bookings with derived
// statuses.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(c, "limit", 10)
	if limit < 1 || limit > 50 {
		limit = 10
	}
	list, total, err := h.Bookings.ListByUser(c.Request().Context(), uid, limit, (page-1)*limit)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not list bookings")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings": bookingViews(list, time.Now()),
		"page":     page,
		"limit":    limit,
		"total":    total,
	})
}

type slotView struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// AvailableSlots reports which one-hour slots are free for a game type
// on a date.  Only accepted bookings that are still upcoming or ongoing
// block a slot.
func (h *BookingHandler) AvailableSlots(c echo.Context) error {
	gameType := c.QueryParam("game_type")
	if gameType == "" {
		return jsonError(c, http.StatusBadRequest, "validation_error", "game_type is required")
	}
	if !booking.ValidGameType(gameType) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "game_type must be pool or snooker")
	}
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		return jsonError(c, http.StatusBadRequest, "validation_error", "date is required")
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, time.Local)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
	}
	now := time.Now()

	accepted, err := h.Bookings.AcceptedForDate(c.Request().Context(), booking.GameType(gameType), date)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load bookings")
	}
	taken := activeIntervals(accepted, now)

	slots := make([]slotView, 0, h.Cfg.CloseHour-h.Cfg.OpenHour)
	for hour := h.Cfg.OpenHour; hour < h.Cfg.CloseHour; hour++ {
		slots = append(slots, slotView{
			StartTime: booking.FormatClock(hour * 60),
			EndTime:   booking.FormatClock((hour + 1) * 60),
			Available: !booking.SlotTaken(taken, hour*60),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":       date.Format(dateLayout),
		"game_type":  gameType,
		"open_hour":  h.Cfg.OpenHour,
		"close_hour": h.Cfg.CloseHour,
		"slots":      slots,
	})
}
