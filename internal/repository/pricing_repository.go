package repository

import (
	"context"
	"database/sql"

	"github.com/Visheshvd/playarena/internal/booking"
	"github.com/Visheshvd/playarena/internal/model"
)

const pricingColumns = `id, game_type, price_per_hour_cents, currency, is_active, created_at, updated_at`

// PricingRepo manages the per-game-type hourly rate table.  There is at
// most one row per game type; bookings snapshot the rate at creation.
type PricingRepo struct {
	db *sql.DB
}

// NewPricingRepo returns a new PricingRepo bound to the given database.
func NewPricingRepo(db *sql.DB) *PricingRepo { return &PricingRepo{db: db} }

func scanPricing(row interface{ Scan(...any) error }) (model.Pricing, error) {
	var p model.Pricing
	err := row.Scan(&p.ID, &p.GameType, &p.PricePerHourCents, &p.Currency,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetActive returns the active pricing row for a game type, or
// ErrPricingNotFound when none is configured.
func (r *PricingRepo) GetActive(ctx context.Context, gameType booking.GameType) (model.Pricing, error) {
	p, err := scanPricing(r.db.QueryRowContext(ctx,
		"SELECT "+pricingColumns+" FROM pricing WHERE game_type=? AND is_active=1 LIMIT 1", gameType))
	if err == sql.ErrNoRows {
		return p, ErrPricingNotFound
	}
	return p, err
}

// ListActive returns all active pricing rows.
func (r *PricingRepo) ListActive(ctx context.Context) ([]model.Pricing, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+pricingColumns+" FROM pricing WHERE is_active=1 ORDER BY game_type")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Pricing
	for rows.Next() {
		p, err := scanPricing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert creates or replaces the pricing row for a game type.
func (r *PricingRepo) Upsert(ctx context.Context, p *model.Pricing) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pricing (game_type, price_per_hour_cents, currency, is_active)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE price_per_hour_cents=VALUES(price_per_hour_cents),
			currency=VALUES(currency), is_active=VALUES(is_active)`,
		p.GameType, p.PricePerHourCents, p.Currency, p.IsActive)
	return err
}
