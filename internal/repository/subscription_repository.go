package repository

import (
	"context"
	"database/sql"

	"github.com/Visheshvd/playarena/internal/model"
)

const subscriptionColumns = `id, user_id, endpoint, p256dh, auth, user_agent, is_active, created_at, updated_at`

// SubscriptionRepo manages browser push subscriptions.  A user may hold
// several (one per browser); the (user_id, endpoint) pair is unique.
type SubscriptionRepo struct {
	db *sql.DB
}

// NewSubscriptionRepo returns a new SubscriptionRepo bound to the given database.
func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo { return &SubscriptionRepo{db: db} }

func scanSubscription(row interface{ Scan(...any) error }) (model.PushSubscription, error) {
	var s model.PushSubscription
	err := row.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256dh, &s.Auth,
		&s.UserAgent, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Upsert registers or refreshes a subscription.  Re-subscribing with an
// existing endpoint reactivates the row and updates its keys.
func (r *SubscriptionRepo) Upsert(ctx context.Context, s *model.PushSubscription) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth, user_agent, is_active)
		 VALUES (?,?,?,?,?,1)
		 ON DUPLICATE KEY UPDATE p256dh=VALUES(p256dh), auth=VALUES(auth),
			user_agent=VALUES(user_agent), is_active=1`,
		s.UserID, s.Endpoint, s.P256dh, s.Auth, s.UserAgent)
	return err
}

// Delete removes a user's subscription for an endpoint.
func (r *SubscriptionRepo) Delete(ctx context.Context, userID uint64, endpoint string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM push_subscriptions WHERE user_id=? AND endpoint=?", userID, endpoint)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// CountActive returns the number of active subscriptions a user holds.
func (r *SubscriptionRepo) CountActive(ctx context.Context, userID uint64) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM push_subscriptions WHERE user_id=? AND is_active=1", userID).Scan(&n)
	return n, err
}

// ListActiveByUser returns a user's active subscriptions.
func (r *SubscriptionRepo) ListActiveByUser(ctx context.Context, userID uint64) ([]model.PushSubscription, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+subscriptionColumns+" FROM push_subscriptions WHERE user_id=? AND is_active=1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.PushSubscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Deactivate marks a subscription inactive, used when a push endpoint
// reports itself gone.
func (r *SubscriptionRepo) Deactivate(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE push_subscriptions SET is_active=0 WHERE id=?", id)
	return err
}
