package handler

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/booking"
	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/queue"
	"github.com/Visheshvd/playarena/internal/repository"
	notifier "github.com/Visheshvd/playarena/internal/service"
)

// AdminBookingHandler serves the admin booking console: the request
// queue, accept/decline decisions and manual record keeping for walk-in
// customers.
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
}

// ListPending returns booking requests awaiting a decision.
func (h *AdminBookingHandler) ListPending(c echo.Context) error {
	list, err := h.Bookings.ListPending(c.Request().Context())
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not list requests")
	}
	return c.JSON(http.StatusOK, echo.Map{"requests": bookingViews(list, time.Now())})
}

// ListResolved returns accepted and declined bookings, newest first.
func (h *AdminBookingHandler) ListResolved(c echo.Context) error {
	limit := queryInt(c, "limit", 100)
	if limit < 1 || limit > 500 {
		limit = 100
	}
	list, err := h.Bookings.ListResolved(c.Request().Context(), limit)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not list bookings")
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookingViews(list, time.Now())})
}

type manualBookingRequest struct {
	UserID           *uint64 `json:"user_id"`
	PlayerName       string  `json:"player_name"`
	GameType         string  `json:"game_type"`
	BookingDate      string  `json:"booking_date"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	DurationHours    float64 `json:"duration_hours"`
	TotalAmountCents uint32  `json:"total_amount_cents"`
	AmountPaidCents  uint32  `json:"amount_paid_cents"`
}

// Create records a booking entered at the counter.  Manual records are
// accepted immediately and may be partial: the end time can be left
// open and filled in later when the table frees up.
func (h *AdminBookingHandler) Create(c echo.Context) error {
	var req manualBookingRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	req.PlayerName = strings.TrimSpace(req.PlayerName)
	if req.PlayerName == "" {
		return jsonError(c, http.StatusBadRequest, "validation_error", "player_name is required")
	}
	if !booking.ValidGameType(req.GameType) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "game_type must be pool or snooker")
	}
	if !booking.ValidClock(req.StartTime) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "start_time must be HH:MM")
	}
	if req.EndTime != "" && !booking.ValidClock(req.EndTime) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "end_time must be HH:MM")
	}
	date, err := time.ParseInLocation(dateLayout, req.BookingDate, time.Local)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "booking_date must be YYYY-MM-DD")
	}

	// Reconcile the window: either clock pair or duration may be given.
	duration := req.DurationHours
	endTime := req.EndTime
	switch {
	case endTime != "":
		d, err := booking.DurationBetween(req.StartTime, endTime)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "validation_error", "invalid time window")
		}
		duration = d
	case duration > 0:
		if !booking.ValidDuration(duration) {
			return jsonError(c, http.StatusBadRequest, "validation_error", "duration_hours must be between 0.5 and 12")
		}
		endTime, err = booking.EndTime(req.StartTime, duration)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "validation_error", "start_time must be HH:MM")
		}
	}

	ctx := c.Request().Context()
	b := model.Booking{
		UserID:           req.UserID,
		PlayerName:       req.PlayerName,
		GameType:         booking.GameType(req.GameType),
		Date:             date,
		StartTime:        req.StartTime,
		EndTime:          endTime,
		DurationHours:    duration,
		TotalAmountCents: req.TotalAmountCents,
		AmountPaidCents:  req.AmountPaidCents,
		Status:           booking.StatusUpcoming,
		RequestState:     booking.RequestAccepted,
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not open transaction")
	}
	defer func() { _ = tx.Rollback() }()
	if err := h.Bookings.CreateTx(ctx, tx, &b); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not create booking")
	}
	if err := tx.Commit(); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not create booking")
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": toBookingView(b, time.Now())})
}

type updateBookingRequest struct {
	UserID           *uint64  `json:"user_id"`
	PlayerName       *string  `json:"player_name"`
	GameType         *string  `json:"game_type"`
	BookingDate      *string  `json:"booking_date"`
	StartTime        *string  `json:"start_time"`
	EndTime          *string  `json:"end_time"`
	DurationHours    *float64 `json:"duration_hours"`
	TotalAmountCents *uint32  `json:"total_amount_cents"`
	AmountPaidCents  *uint32  `json:"amount_paid_cents"`
	Status           *string  `json:"status"`
}

// Update edits an existing record.  Only the fields present in the body
// change; absent fields keep their stored values.
func (h *AdminBookingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid booking id")
	}
	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}

	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err == repository.ErrBookingNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "booking not found")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load booking")
	}

	if req.UserID != nil {
		b.UserID = req.UserID
	}
	if req.PlayerName != nil && strings.TrimSpace(*req.PlayerName) != "" {
		b.PlayerName = strings.TrimSpace(*req.PlayerName)
	}
	if req.GameType != nil {
		if !booking.ValidGameType(*req.GameType) {
			return jsonError(c, http.StatusBadRequest, "validation_error", "game_type must be pool or snooker")
		}
		b.GameType = booking.GameType(*req.GameType)
	}
	if req.BookingDate != nil {
		d, err := time.ParseInLocation(dateLayout, *req.BookingDate, time.Local)
		if err != nil {
			return jsonError(c, http.StatusBadRequest, "validation_error", "booking_date must be YYYY-MM-DD")
		}
		b.Date = d
	}
	if req.StartTime != nil {
		if !booking.ValidClock(*req.StartTime) {
			return jsonError(c, http.StatusBadRequest, "validation_error", "start_time must be HH:MM")
		}
		b.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		if *req.EndTime != "" && !booking.ValidClock(*req.EndTime) {
			return jsonError(c, http.StatusBadRequest, "validation_error", "end_time must be HH:MM")
		}
		b.EndTime = *req.EndTime
	}
	if b.EndTime != "" {
		d, derr := booking.DurationBetween(b.StartTime, b.EndTime)
		if derr == nil {
			b.DurationHours = d
		}
	} else if req.DurationHours != nil {
		b.DurationHours = *req.DurationHours
	}
	if req.TotalAmountCents != nil {
		b.TotalAmountCents = *req.TotalAmountCents
	}
	if req.AmountPaidCents != nil {
		b.AmountPaidCents = *req.AmountPaidCents
	}
	if req.Status != nil {
		switch booking.DisplayStatus(*req.Status) {
		case booking.StatusUpcoming, booking.StatusOngoing, booking.StatusCompleted, booking.StatusCancelled:
			b.Status = booking.DisplayStatus(*req.Status)
		default:
			return jsonError(c, http.StatusBadRequest, "validation_error", "unknown status")
		}
	}

	if err := h.Bookings.Update(ctx, &b); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not update booking")
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": toBookingView(b, time.Now())})
}

// Delete removes a booking record.
func (h *AdminBookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid booking id")
	}
	err = h.Bookings.Delete(c.Request().Context(), id)
	if err == repository.ErrBookingNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "booking not found")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not delete booking")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking deleted"})
}

// Accept approves a pending request.  Accepting twice or accepting a
// declined request is a conflict; the customer is notified once.
func (h *AdminBookingHandler) Accept(c echo.Context) error {
	return h.decide(c, true)
}

// Decline rejects a request.  Declined is terminal and renders as
// cancelled everywhere.
func (h *AdminBookingHandler) Decline(c echo.Context) error {
	return h.decide(c, false)
}

func (h *AdminBookingHandler) decide(c echo.Context, accept bool) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid booking id")
	}
	ctx := c.Request().Context()
	b, err := h.Bookings.GetByID(ctx, id)
	if err == repository.ErrBookingNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "booking not found")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load booking")
	}

	if accept {
		err = b.Accept()
	} else {
		err = b.Decline()
	}
	switch err {
	case nil:
	case model.ErrAlreadyAccepted, model.ErrAlreadyDeclined, model.ErrDeclinedFinal:
		return jsonError(c, http.StatusConflict, "conflict", err.Error())
	default:
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not apply decision")
	}

	if err := h.Bookings.UpdateDecision(ctx, &b); err == repository.ErrBookingNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "booking not found")
	} else if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not save decision")
	}

	if b.UserID != nil {
		when := b.Date.Format(dateLayout) + " at " + b.StartTime
		if accept {
			_ = notifier.ToUser(ctx, *b.UserID, queue.TypeBookingApproved,
				"Booking confirmed",
				"Your "+string(b.GameType)+" booking for "+when+" is confirmed",
				"booking-decision", map[string]string{"booking_id": itoa(b.ID)})
		} else {
			_ = notifier.ToUser(ctx, *b.UserID, queue.TypeBookingDeclined,
				"Booking declined",
				"Your "+string(b.GameType)+" booking for "+when+" was declined",
				"booking-decision", map[string]string{"booking_id": itoa(b.ID)})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": toBookingView(b, time.Now())})
}
