package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/booking"
	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/repository"
)

// MatchHandler serves the live scoreboard and match history views.
type MatchHandler struct {
	Matches *repository.MatchRepo
}

type matchView struct {
	ID               uint64           `json:"id"`
	BookingID        *uint64          `json:"booking_id,omitempty"`
	User1ID          *uint64          `json:"user1_id,omitempty"`
	User2ID          *uint64          `json:"user2_id,omitempty"`
	Player1Name      string           `json:"player1_name"`
	Player2Name      string           `json:"player2_name"`
	Player1Points    uint32           `json:"player1_points"`
	Player2Points    uint32           `json:"player2_points"`
	Player1HighBreak uint32           `json:"player1_high_break"`
	Player2HighBreak uint32           `json:"player2_high_break"`
	GameType         booking.GameType `json:"game_type"`
	MatchDate        string           `json:"match_date"`
	StartTime        string           `json:"start_time,omitempty"`
	EndTime          string           `json:"end_time,omitempty"`
	DurationHours    float64          `json:"duration_hours,omitempty"`
	AmountPaidCents  uint32           `json:"amount_paid_cents"`
	Status           string           `json:"status"`
	Winner           int              `json:"winner,omitempty"`
}

func toMatchView(m model.Match) matchView {
	v := matchView{
		ID:               m.ID,
		BookingID:        m.BookingID,
		User1ID:          m.User1ID,
		User2ID:          m.User2ID,
		Player1Name:      m.Player1Name,
		Player2Name:      m.Player2Name,
		Player1Points:    m.Player1Points,
		Player2Points:    m.Player2Points,
		Player1HighBreak: m.Player1HighBreak,
		Player2HighBreak: m.Player2HighBreak,
		GameType:         m.GameType,
		MatchDate:        m.MatchDate.Format(dateLayout),
		StartTime:        m.StartTime,
		EndTime:          m.EndTime,
		DurationHours:    m.DurationHours,
		AmountPaidCents:  m.AmountPaidCents,
		Status:           m.Status,
	}
	if m.Status == model.MatchCompleted {
		v.Winner = m.Winner()
	}
	return v
}

func matchViews(list []model.Match) []matchView {
	out := make([]matchView, 0, len(list))
	for i := range list {
		out = append(out, toMatchView(list[i]))
	}
	return out
}

// Ongoing returns the matches currently in play.  Public: the venue
// shows these on the lobby screen.
func (h *MatchHandler) Ongoing(c echo.Context) error {
	list, err := h.Matches.ListOngoing(c.Request().Context(), 50)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not list matches")
	}
	return c.JSON(http.StatusOK, echo.Map{"matches": matchViews(list)})
}

// PastToday returns matches completed today.
func (h *MatchHandler) PastToday(c echo.Context) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	list, err := h.Matches.ListCompletedBetween(c.Request().Context(), from, from.Add(24*time.Hour), 100)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not list matches")
	}
	return c.JSON(http.StatusOK, echo.Map{"matches": matchViews(list)})
}

// MyHistory returns the caller's completed matches, newest first.
func (h *MatchHandler) MyHistory(c echo.Context) error {
	uid, ok := getUserID(c)
	if !ok {
		return jsonError(c, http.StatusUnauthorized, "unauthorized", "missing identity")
	}
	list, err := h.Matches.ListForUser(c.Request().Context(), uid, 100)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not list matches")
	}
	return c.JSON(http.StatusOK, echo.Map{"matches": matchViews(list)})
}
