package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/booking"
	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/repository"
)

// PricingHandler serves the hourly rate card.  Reads are public;
// changes are admin only and never touch existing bookings, which keep
// the rate snapshotted at creation.
type PricingHandler struct {
	Pricing *repository.PricingRepo
}

type pricingView struct {
	GameType          booking.GameType `json:"game_type"`
	PricePerHourCents uint32           `json:"price_per_hour_cents"`
	Currency          string           `json:"currency"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// List returns the active rate card.
func (h *PricingHandler) List(c echo.Context) error {
	list, err := h.Pricing.ListActive(c.Request().Context())
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load pricing")
	}
	views := make([]pricingView, 0, len(list))
	for _, p := range list {
		views = append(views, pricingView{
			GameType:          p.GameType,
			PricePerHourCents: p.PricePerHourCents,
			Currency:          p.Currency,
			UpdatedAt:         p.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"pricing": views})
}

type upsertPricingRequest struct {
	GameType          string `json:"game_type"`
	PricePerHourCents uint32 `json:"price_per_hour_cents"`
	Currency          string `json:"currency"`
	IsActive          *bool  `json:"is_active"`
}

// Upsert creates or replaces the rate for a game type.
func (h *PricingHandler) Upsert(c echo.Context) error {
	var req upsertPricingRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	if !booking.ValidGameType(req.GameType) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "game_type must be pool or snooker")
	}
	if req.PricePerHourCents == 0 {
		return jsonError(c, http.StatusBadRequest, "validation_error", "price_per_hour_cents must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	p := model.Pricing{
		GameType:          booking.GameType(req.GameType),
		PricePerHourCents: req.PricePerHourCents,
		Currency:          currency,
		IsActive:          active,
	}
	if err := h.Pricing.Upsert(c.Request().Context(), &p); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not save pricing")
	}
	return c.JSON(http.StatusOK, echo.Map{"pricing": pricingView{
		GameType:          p.GameType,
		PricePerHourCents: p.PricePerHourCents,
		Currency:          p.Currency,
		UpdatedAt:         time.Now(),
	}})
}
