package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/repository"
)

// LeaderboardHandler serves the public player rankings.
type LeaderboardHandler struct {
	Users *repository.UserRepo
}

type leaderboardEntry struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	TotalWins    uint32 `json:"total_wins"`
	TotalLosses  uint32 `json:"total_losses"`
	TotalPoints  uint32 `json:"total_points"`
	HighestBreak uint32 `json:"highest_break"`
	TotalMatches uint32 `json:"total_matches"`
}

// Leaderboard returns players ordered by points then wins.  Mobile
// numbers are deliberately not exposed here.
func (h *LeaderboardHandler) Leaderboard(c echo.Context) error {
	limit := queryInt(c, "limit", 10)
	if limit < 1 || limit > 100 {
		limit = 10
	}
	users, err := h.Users.Leaderboard(c.Request().Context(), limit)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load leaderboard")
	}
	entries := make([]leaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, leaderboardEntry{
			Rank:         i + 1,
			Name:         u.Name,
			TotalWins:    u.Stats.TotalWins,
			TotalLosses:  u.Stats.TotalLosses,
			TotalPoints:  u.Stats.TotalPoints,
			HighestBreak: u.Stats.HighestBreak,
			TotalMatches: u.Stats.TotalMatches(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"leaderboard": entries})
}
