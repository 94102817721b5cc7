package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Visheshvd/playarena/internal/model"
)

const matchColumns = `id, booking_id, user1_id, user2_id, player1_name, player2_name,
	player1_points, player2_points, player1_high_break, player2_high_break,
	game_type, match_date, start_time, end_time, duration_hours,
	amount_paid_cents, status, created_at, updated_at`

// MatchRepo manages persistence for matches.  Stats side effects on
// completion are applied through UserRepo inside the same transaction;
// this repo only reads and writes match rows.
type MatchRepo struct {
	db *sql.DB
}

// NewMatchRepo returns a new MatchRepo bound to the given database.
func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

// DB exposes the underlying sql.DB for transactions that span the
// match update and the user stats increments.
func (r *MatchRepo) DB() *sql.DB { return r.db }

func scanMatch(row interface{ Scan(...any) error }) (model.Match, error) {
	var (
		m         model.Match
		bookingID sql.NullInt64
		u1, u2    sql.NullInt64
	)
	err := row.Scan(&m.ID, &bookingID, &u1, &u2, &m.Player1Name, &m.Player2Name,
		&m.Player1Points, &m.Player2Points, &m.Player1HighBreak, &m.Player2HighBreak,
		&m.GameType, &m.MatchDate, &m.StartTime, &m.EndTime, &m.DurationHours,
		&m.AmountPaidCents, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return m, err
	}
	if bookingID.Valid {
		v := uint64(bookingID.Int64)
		m.BookingID = &v
	}
	if u1.Valid {
		v := uint64(u1.Int64)
		m.User1ID = &v
	}
	if u2.Valid {
		v := uint64(u2.Int64)
		m.User2ID = &v
	}
	return m, nil
}

func (r *MatchRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Match, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullableID(p *uint64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Create inserts a new match and populates its generated ID.
func (r *MatchRepo) Create(ctx context.Context, m *model.Match) error {
	const q = `INSERT INTO matches
		(booking_id, user1_id, user2_id, player1_name, player2_name,
		 player1_points, player2_points, player1_high_break, player2_high_break,
		 game_type, match_date, start_time, end_time, duration_hours,
		 amount_paid_cents, status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		nullableID(m.BookingID), nullableID(m.User1ID), nullableID(m.User2ID),
		m.Player1Name, m.Player2Name, m.Player1Points, m.Player2Points,
		m.Player1HighBreak, m.Player2HighBreak, m.GameType,
		m.MatchDate.Format("2006-01-02 15:04:05"), m.StartTime, m.EndTime,
		m.DurationHours, m.AmountPaidCents, m.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a match by id.
func (r *MatchRepo) GetByID(ctx context.Context, id uint64) (model.Match, error) {
	m, err := scanMatch(r.db.QueryRowContext(ctx,
		"SELECT "+matchColumns+" FROM matches WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return m, ErrMatchNotFound
	}
	return m, err
}

// UpdateScoreTx writes points, breaks, status and end time inside the
// caller's transaction so the write commits together with any user
// stats increments.
func (r *MatchRepo) UpdateScoreTx(ctx context.Context, tx *sql.Tx, m *model.Match) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE matches SET player1_points=?, player2_points=?,
			player1_high_break=?, player2_high_break=?, status=?, end_time=?
		 WHERE id=?`,
		m.Player1Points, m.Player2Points, m.Player1HighBreak, m.Player2HighBreak,
		m.Status, m.EndTime, m.ID)
	return err
}

// ListOngoing returns matches currently in play, newest first.
func (r *MatchRepo) ListOngoing(ctx context.Context, limit int) ([]model.Match, error) {
	const q = `SELECT ` + matchColumns + ` FROM matches
		WHERE status=? ORDER BY created_at DESC LIMIT ?`
	return r.queryMany(ctx, q, model.MatchOngoing, limit)
}

// ListCompletedBetween returns completed matches whose match_date falls
// in [from, to), newest first.
func (r *MatchRepo) ListCompletedBetween(ctx context.Context, from, to time.Time, limit int) ([]model.Match, error) {
	const q = `SELECT ` + matchColumns + ` FROM matches
		WHERE status=? AND match_date >= ? AND match_date < ?
		ORDER BY created_at DESC LIMIT ?`
	return r.queryMany(ctx, q, model.MatchCompleted,
		from.Format("2006-01-02 15:04:05"), to.Format("2006-01-02 15:04:05"), limit)
}

// ListForUser returns the completed matches a user played in, newest
// first.
func (r *MatchRepo) ListForUser(ctx context.Context, userID uint64, limit int) ([]model.Match, error) {
	const q = `SELECT ` + matchColumns + ` FROM matches
		WHERE status=? AND (user1_id=? OR user2_id=?)
		ORDER BY created_at DESC LIMIT ?`
	return r.queryMany(ctx, q, model.MatchCompleted, userID, userID, limit)
}

// ListAll returns the most recent matches regardless of status.
func (r *MatchRepo) ListAll(ctx context.Context, limit int) ([]model.Match, error) {
	const q = `SELECT ` + matchColumns + ` FROM matches ORDER BY created_at DESC LIMIT ?`
	return r.queryMany(ctx, q, limit)
}

// StatsForUser recomputes cumulative stats from the user's completed
// matches.  Used by the admin recalculate endpoint as the source of
// truth when the incremental counters drift.
func (r *MatchRepo) StatsForUser(ctx context.Context, userID uint64) (model.Stats, error) {
	matches, err := r.ListForUser(ctx, userID, 10000)
	if err != nil {
		return model.Stats{}, err
	}
	var s model.Stats
	for i := range matches {
		m := &matches[i]
		var points, high uint32
		isPlayer1 := m.User1ID != nil && *m.User1ID == userID
		if isPlayer1 {
			points, high = m.Player1Points, m.Player1HighBreak
		} else {
			points, high = m.Player2Points, m.Player2HighBreak
		}
		s.TotalPoints += points
		if high > s.HighestBreak {
			s.HighestBreak = high
		}
		switch w := m.Winner(); {
		case w == 1 && isPlayer1, w == 2 && !isPlayer1:
			s.TotalWins++
		case w != 0:
			s.TotalLosses++
		}
	}
	return s, nil
}

// CountAll returns the total number of matches.
func (r *MatchRepo) CountAll(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM matches").Scan(&n)
	return n, err
}

// CountBetween returns the number of matches dated in [from, to).
func (r *MatchRepo) CountBetween(ctx context.Context, from, to time.Time) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM matches WHERE match_date >= ? AND match_date < ?",
		from.Format("2006-01-02 15:04:05"), to.Format("2006-01-02 15:04:05")).Scan(&n)
	return n, err
}

// RevenueCents sums amount_paid_cents over all matches, or over
// [from, to) when both bounds are non-zero.
func (r *MatchRepo) RevenueCents(ctx context.Context, from, to time.Time) (uint64, error) {
	var n sql.NullInt64
	var err error
	if from.IsZero() && to.IsZero() {
		err = r.db.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(amount_paid_cents),0) FROM matches").Scan(&n)
	} else {
		err = r.db.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(amount_paid_cents),0) FROM matches WHERE match_date >= ? AND match_date < ?",
			from.Format("2006-01-02 15:04:05"), to.Format("2006-01-02 15:04:05")).Scan(&n)
	}
	if err != nil {
		return 0, err
	}
	return uint64(n.Int64), nil
}
