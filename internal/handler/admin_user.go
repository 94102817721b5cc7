package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/repository"
)

// AdminUserHandler serves the admin player roster and stats corrections.
type AdminUserHandler struct {
	Users   *repository.UserRepo
	Matches *repository.MatchRepo
}

// List returns every registered customer with their cumulative stats.
func (h *AdminUserHandler) List(c echo.Context) error {
	users, err := h.Users.ListCustomers(c.Request().Context())
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not list users")
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": views})
}

// SetStats overwrites a player's cumulative stats.  Manual corrections
// only; normal updates flow through match completion.
func (h *AdminUserHandler) SetStats(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid user id")
	}
	var s model.Stats
	if err := c.Bind(&s); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	err = h.Users.SetStats(c.Request().Context(), id, s)
	if err == repository.ErrUserNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "user not found")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not update stats")
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": s})
}

// RecalculateStats rebuilds a player's stats from their completed
// matches and stores the result.  Source of truth when the incremental
// counters have drifted.
func (h *AdminUserHandler) RecalculateStats(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid user id")
	}
	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, id); err == repository.ErrUserNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "user not found")
	} else if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load user")
	}
	s, err := h.Matches.StatsForUser(ctx, id)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not recalculate stats")
	}
	if err := h.Users.SetStats(ctx, id, s); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not save stats")
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": s})
}
