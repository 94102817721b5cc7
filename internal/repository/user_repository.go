package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Visheshvd/playarena/internal/model"
)

const userColumns = `id, mobile, name, role, password_hash, is_active,
	total_wins, total_losses, total_points, highest_break, created_at, updated_at`

// UserRepo manages persistence for users and their cumulative stats.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Mobile, &u.Name, &u.Role, &u.PasswordHash, &u.IsActive,
		&u.Stats.TotalWins, &u.Stats.TotalLosses, &u.Stats.TotalPoints, &u.Stats.HighestBreak,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create inserts a customer and returns its ID.  Mobile numbers are
// unique; a duplicate insert maps to ErrMobileExists.
func (r *UserRepo) Create(ctx context.Context, mobile, name, role string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (mobile, name, role) VALUES (?,?,?)",
		strings.TrimSpace(mobile), strings.TrimSpace(name), role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrMobileExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByMobile fetches a user by mobile number.
func (r *UserRepo) GetByMobile(ctx context.Context, mobile string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE mobile=? LIMIT 1", strings.TrimSpace(mobile)))
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// UpdateName sets the display name of a user.
func (r *UserRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET name=? WHERE id=?", strings.TrimSpace(name), id)
	return err
}

// ListCustomers returns all non-admin users, newest first.
func (r *UserRepo) ListCustomers(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE role <> ? ORDER BY created_at DESC", model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Leaderboard returns non-admin users ordered by total points, then
// wins, capped at limit.
func (r *UserRepo) Leaderboard(ctx context.Context, limit int) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+` FROM users WHERE role <> ?
		 ORDER BY total_points DESC, total_wins DESC, created_at ASC LIMIT ?`,
		model.RoleAdmin, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetStats overwrites the stats columns of a user (admin correction).
func (r *UserRepo) SetStats(ctx context.Context, id uint64, s model.Stats) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET total_wins=?, total_losses=?, total_points=?, highest_break=? WHERE id=?`,
		s.TotalWins, s.TotalLosses, s.TotalPoints, s.HighestBreak, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "no such user" from "same values": a second probe
		// keeps the common path to a single statement.
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrUserNotFound
		}
	}
	return nil
}

// ApplyMatchOutcomeTx increments a player's cumulative stats inside the
// caller's transaction.  highBreak only raises the stored maximum.
func (r *UserRepo) ApplyMatchOutcomeTx(ctx context.Context, tx *sql.Tx, userID uint64, wins, losses, points, highBreak uint32) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET
			total_wins = total_wins + ?,
			total_losses = total_losses + ?,
			total_points = total_points + ?,
			highest_break = GREATEST(highest_break, ?)
		 WHERE id=?`,
		wins, losses, points, highBreak, userID)
	return err
}

// UpsertAdmin creates or refreshes the admin account used by the seed
// command.  The bcrypt hash replaces any previous one.
func (r *UserRepo) UpsertAdmin(ctx context.Context, mobile, name, passwordHash string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (mobile, name, role, password_hash) VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE name=VALUES(name), role=VALUES(role), password_hash=VALUES(password_hash)`,
		strings.TrimSpace(mobile), name, model.RoleAdmin, passwordHash)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil || id == 0 {
		u, gerr := r.GetByMobile(ctx, mobile)
		if gerr != nil {
			return 0, gerr
		}
		return u.ID, nil
	}
	return uint64(id), nil
}

// CountCustomers returns the number of non-admin users.
func (r *UserRepo) CountCustomers(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role <> ?", model.RoleAdmin).Scan(&n)
	return n, err
}

// AdminIDs returns the ids of all admin users.  The notification
// consumer uses this to fan out admin-facing events.
func (r *UserRepo) AdminIDs(ctx context.Context) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id FROM users WHERE role=?", model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
