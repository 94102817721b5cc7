package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/config"
	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/repository"
)

// NotificationHandler manages browser push subscriptions.  The service
// only stores endpoints and keys; delivery runs through the queue
// consumer.
type NotificationHandler struct {
	Cfg  config.Config
	Subs *repository.SubscriptionRepo
}

// VapidPublicKey hands clients the key they need to register a push
// subscription with their browser.
func (h *NotificationHandler) VapidPublicKey(c echo.Context) error {
	if h.Cfg.VAPIDPublicKey == "" {
		return jsonError(c, http.StatusNotFound, "not_found", "push notifications are not configured")
	}
	return c.JSON(http.StatusOK, echo.Map{"public_key": h.Cfg.VAPIDPublicKey})
}

type subscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// Subscribe registers or refreshes the caller's push endpoint.
func (h *NotificationHandler) Subscribe(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	var req subscribeRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	req.Endpoint = strings.TrimSpace(req.Endpoint)
	if req.Endpoint == "" || req.Keys.P256dh == "" || req.Keys.Auth == "" {
		return jsonError(c, http.StatusBadRequest, "validation_error", "endpoint and keys are required")
	}
	s := model.PushSubscription{
		UserID:    uid,
		Endpoint:  req.Endpoint,
		P256dh:    req.Keys.P256dh,
		Auth:      req.Keys.Auth,
		UserAgent: c.Request().UserAgent(),
	}
	if err := h.Subs.Upsert(c.Request().Context(), &s); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not save subscription")
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "subscribed"})
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

// Unsubscribe removes the caller's subscription for an endpoint.
func (h *NotificationHandler) Unsubscribe(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	var req unsubscribeRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	if strings.TrimSpace(req.Endpoint) == "" {
		return jsonError(c, http.StatusBadRequest, "validation_error", "endpoint is required")
	}
	err := h.Subs.Delete(c.Request().Context(), uid, req.Endpoint)
	if err == repository.ErrSubscriptionNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "subscription not found")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not remove subscription")
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "unsubscribed"})
}

// Status reports whether the caller has any active subscriptions.
func (h *NotificationHandler) Status(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	n, err := h.Subs.CountActive(c.Request().Context(), uid)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load subscription status")
	}
	return c.JSON(http.StatusOK, echo.Map{"subscribed": n > 0, "count": n})
}
