package handler

import (
	"context"
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

// AdminMatchHandler serves match score keeping.  Completing a match
// applies the outcome to both players' cumulative stats in the same
// transaction as the score write, and only on the first transition to
// completed, so a later score correction never double counts.
type AdminMatchHandler struct {
	Matches *repository.MatchRepo
	Users   *repository.UserRepo
}

type createMatchRequest struct {
	BookingID       *uint64 `json:"booking_id"`
	User1ID         *uint64 `json:"user1_id"`
	User2ID         *uint64 `json:"user2_id"`
	Player1Name     string  `json:"player1_name"`
	Player2Name     string  `json:"player2_name"`
	GameType        string  `json:"game_type"`
	StartTime       string  `json:"start_time"`
	DurationHours   float64 `json:"duration_hours"`
	AmountPaidCents uint32  `json:"amount_paid_cents"`
}

// Create starts a match on one of the tables.
func (h *AdminMatchHandler) Create(c echo.Context) error {
	var req createMatchRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}
	req.Player1Name = strings.TrimSpace(req.Player1Name)
	req.Player2Name = strings.TrimSpace(req.Player2Name)
	if req.Player1Name == "" || req.Player2Name == "" {
		return jsonError(c, http.StatusBadRequest, "validation_error", "both player names are required")
	}
	if !booking.ValidGameType(req.GameType) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "game_type must be pool or snooker")
	}
	now := time.Now()
	startTime := req.StartTime
	if startTime == "" {
		startTime = now.Format("15:04")
	} else if !booking.ValidClock(startTime) {
		return jsonError(c, http.StatusBadRequest, "validation_error", "start_time must be HH:MM")
	}

	m := model.Match{
		BookingID:       req.BookingID,
		User1ID:         req.User1ID,
		User2ID:         req.User2ID,
		Player1Name:     req.Player1Name,
		Player2Name:     req.Player2Name,
		GameType:        booking.GameType(req.GameType),
		MatchDate:       now,
		StartTime:       startTime,
		DurationHours:   req.DurationHours,
		AmountPaidCents: req.AmountPaidCents,
		Status:          model.MatchOngoing,
	}
	if err := h.Matches.Create(c.Request().Context(), &m); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not create match")
	}
	return c.JSON(http.StatusCreated, echo.Map{"match": toMatchView(m)})
}

type updateMatchRequest struct {
	Player1Points    *uint32 `json:"player1_points"`
	Player2Points    *uint32 `json:"player2_points"`
	Player1HighBreak *uint32 `json:"player1_high_break"`
	Player2HighBreak *uint32 `json:"player2_high_break"`
	Status           *string `json:"status"`
	EndTime          *string `json:"end_time"`
}

// Update writes scores and optionally completes the match.
func (h *AdminMatchHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid match id")
	}
	var req updateMatchRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "validation_error", "invalid request body")
	}

	ctx := c.Request().Context()
	m, err := h.Matches.GetByID(ctx, id)
	if err == repository.ErrMatchNotFound {
		return jsonError(c, http.StatusNotFound, "not_found", "match not found")
	}
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not load match")
	}

	wasCompleted := m.Status == model.MatchCompleted

	if req.Player1Points != nil {
		m.Player1Points = *req.Player1Points
	}
	if req.Player2Points != nil {
		m.Player2Points = *req.Player2Points
	}
	if req.Player1HighBreak != nil {
		m.Player1HighBreak = *req.Player1HighBreak
	}
	if req.Player2HighBreak != nil {
		m.Player2HighBreak = *req.Player2HighBreak
	}
	if req.EndTime != nil {
		if *req.EndTime != "" && !booking.ValidClock(*req.EndTime) {
			return jsonError(c, http.StatusBadRequest, "validation_error", "end_time must be HH:MM")
		}
		m.EndTime = *req.EndTime
	}

	completing := false
	if req.Status != nil {
		switch *req.Status {
		case model.MatchOngoing:
			if wasCompleted {
				return jsonError(c, http.StatusConflict, "conflict", "a completed match cannot be reopened")
			}
		case model.MatchCompleted:
			completing = !wasCompleted
			m.Status = model.MatchCompleted
		default:
			return jsonError(c, http.StatusBadRequest, "validation_error", "status must be ongoing or completed")
		}
	}
	if completing && m.EndTime == "" {
		m.EndTime = time.Now().Format("15:04")
	}

	tx, err := h.Matches.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not open transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err := h.Matches.UpdateScoreTx(ctx, tx, &m); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not update match")
	}
	if completing {
		if err := h.applyOutcome(ctx, tx, &m); err != nil {
			return jsonError(c, http.StatusInternalServerError, "internal_error", "could not update player stats")
		}
	}
	if err := tx.Commit(); err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not update match")
	}

	if completing {
		h.notifyCompleted(ctx, &m)
	}
	return c.JSON(http.StatusOK, echo.Map{"match": toMatchView(m)})
}

// applyOutcome increments each registered player's cumulative stats.
// Draws count as neither a win nor a loss.  Walk-in players without a
// user record simply have nothing to update.
func (h *AdminMatchHandler) applyOutcome(ctx context.Context, tx *sql.Tx, m *model.Match) error {
	winner := m.Winner()
	if m.User1ID != nil {
		var wins, losses uint32
		if winner == 1 {
			wins = 1
		} else if winner == 2 {
			losses = 1
		}
		if err := h.Users.ApplyMatchOutcomeTx(ctx, tx, *m.User1ID, wins, losses, m.Player1Points, m.Player1HighBreak); err != nil {
			return err
		}
	}
	if m.User2ID != nil {
		var wins, losses uint32
		if winner == 2 {
			wins = 1
		} else if winner == 1 {
			losses = 1
		}
		if err := h.Users.ApplyMatchOutcomeTx(ctx, tx, *m.User2ID, wins, losses, m.Player2Points, m.Player2HighBreak); err != nil {
			return err
		}
	}
	return nil
}

// List returns the most recent matches regardless of status.
func (h *AdminMatchHandler) List(c echo.Context) error {
	limit := queryInt(c, "limit", 100)
	if limit < 1 || limit > 500 {
		limit = 100
	}
	list, err := h.Matches.ListAll(c.Request().Context(), limit)
	if err != nil {
		return jsonError(c, http.StatusInternalServerError, "internal_error", "could not list matches")
	}
	return c.JSON(http.StatusOK, echo.Map{"matches": matchViews(list)})
}

// notifyCompleted fans out the result: each registered player hears
// their own outcome and admins get a summary.  Failures are ignored.
func (h *AdminMatchHandler) notifyCompleted(ctx context.Context, m *model.Match) {
	summary := m.Player1Name + " " + itoa(uint64(m.Player1Points)) + " - " +
		itoa(uint64(m.Player2Points)) + " " + m.Player2Name
	data := map[string]string{"match_id": itoa(m.ID)}

	winner := m.Winner()
	if m.User1ID != nil {
		_ = notifier.ToUser(ctx, *m.User1ID, queue.TypeMatchCompleted,
			outcomeTitle(winner == 1, winner == 0), summary, "match-result", data)
	}
	if m.User2ID != nil {
		_ = notifier.ToUser(ctx, *m.User2ID, queue.TypeMatchCompleted,
			outcomeTitle(winner == 2, winner == 0), summary, "match-result", data)
	}
	_ = notifier.ToAdmins(ctx, queue.TypeMatchAdmin, "Match completed", summary, "match-result", data)
}

func outcomeTitle(won, draw bool) string {
	switch {
	case draw:
		return "Match drawn"
	case won:
		return "You won!"
	default:
		return "Match finished"
	}
}
