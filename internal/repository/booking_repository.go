// Package repository contains data access logic for the booking domain.
// This file implements persistence for table bookings.  All date
// columns are DATE values interpreted in venue-local time; start and
// end clocks are stored as "HH:MM" strings exactly as entered.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Visheshvd/playarena/internal/booking"
	"github.com/Visheshvd/playarena/internal/model"
)

const bookingColumns = `id, user_id, player_name, game_type, booking_date,
	start_time, end_time, duration_hours, price_per_hour_cents,
	total_amount_cents, amount_paid_cents, status, request_status,
	created_at, updated_at`

// BookingRepo manages persistence for bookings.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning the overlap check and the insert.
func (r *BookingRepo) DB() *sql.DB { return r.db }

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b       model.Booking
		userID  sql.NullInt64
		endTime sql.NullString
	)
	err := row.Scan(&b.ID, &userID, &b.PlayerName, &b.GameType, &b.Date,
		&b.StartTime, &endTime, &b.DurationHours, &b.PricePerHourCents,
		&b.TotalAmountCents, &b.AmountPaidCents, &b.Status, &b.RequestState,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		b.UserID = &uid
	}
	if endTime.Valid {
		b.EndTime = endTime.String
	}
	return b, nil
}

func (r *BookingRepo) queryMany(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateTx inserts a new booking within the scope of an existing
// transaction so that the overlap check and the write share one
// transaction window.  The generated ID and DB-default timestamps are
// populated on the given record.  The caller must commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(user_id, player_name, game_type, booking_date, start_time, end_time,
		 duration_hours, price_per_hour_cents, total_amount_cents, amount_paid_cents,
		 status, request_status)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`
	var userID any
	if b.UserID != nil {
		userID = *b.UserID
	}
	var endTime any
	if b.EndTime != "" {
		endTime = b.EndTime
	}
	res, err := tx.ExecContext(ctx, q, userID, b.PlayerName, b.GameType,
		b.Date.Format("2006-01-02"), b.StartTime, endTime, b.DurationHours,
		b.PricePerHourCents, b.TotalAmountCents, b.AmountPaidCents,
		b.Status, b.RequestState)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	row := tx.QueryRowContext(ctx, "SELECT created_at, updated_at FROM bookings WHERE id=?", b.ID)
	return row.Scan(&b.CreatedAt, &b.UpdatedAt)
}

// AcceptedForDateTx loads all accepted bookings for a game type and
// date inside the caller's transaction, locking the rows FOR UPDATE so
// that two concurrent create requests cannot both pass the overlap
// check before either insert commits.
func (r *BookingRepo) AcceptedForDateTx(ctx context.Context, tx *sql.Tx, gameType booking.GameType, date time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE game_type=? AND booking_date=? AND request_status=? FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, gameType, date.Format("2006-01-02"), booking.RequestAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// AcceptedForDate loads accepted bookings for a game type and date
// without locking.  Used by the read-only slot availability endpoint.
func (r *BookingRepo) AcceptedForDate(ctx context.Context, gameType booking.GameType, date time.Time) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE game_type=? AND booking_date=? AND request_status=?`
	return r.queryMany(ctx, q, gameType, date.Format("2006-01-02"), booking.RequestAccepted)
}

// GetByID fetches a booking by id.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return b, ErrBookingNotFound
	}
	return b, err
}

// ListByUser returns one page of a user's bookings, newest first, plus
// the total row count for pagination.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, limit, offset int) ([]model.Booking, uint64, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE user_id=? ORDER BY booking_date DESC, start_time DESC LIMIT ? OFFSET ?`
	out, err := r.queryMany(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE user_id=?", userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListPending returns booking requests awaiting an admin decision,
// newest first.
func (r *BookingRepo) ListPending(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE request_status=? ORDER BY created_at DESC`
	return r.queryMany(ctx, q, booking.RequestPending)
}

// ListResolved returns accepted and declined bookings (pending requests
// excluded), most recent first, capped at limit.
func (r *BookingRepo) ListResolved(ctx context.Context, limit int) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE request_status IN (?,?) ORDER BY booking_date DESC, start_time DESC LIMIT ?`
	return r.queryMany(ctx, q, booking.RequestAccepted, booking.RequestDeclined, limit)
}

// UpdateDecision persists an accept/decline transition, writing both
// the request state and the display status columns in one statement so
// the declined->cancelled pair lands atomically.
func (r *BookingRepo) UpdateDecision(ctx context.Context, b *model.Booking) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET request_status=?, status=? WHERE id=?",
		b.RequestState, b.Status, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM bookings WHERE id=?", b.ID).Scan(&exists); err == sql.ErrNoRows {
			return ErrBookingNotFound
		}
	}
	return nil
}

// Update overwrites the editable fields of a booking (admin edits to
// manual records).
func (r *BookingRepo) Update(ctx context.Context, b *model.Booking) error {
	var userID any
	if b.UserID != nil {
		userID = *b.UserID
	}
	var endTime any
	if b.EndTime != "" {
		endTime = b.EndTime
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET user_id=?, player_name=?, game_type=?, booking_date=?,
			start_time=?, end_time=?, duration_hours=?, total_amount_cents=?,
			amount_paid_cents=?, status=? WHERE id=?`,
		userID, b.PlayerName, b.GameType, b.Date.Format("2006-01-02"),
		b.StartTime, endTime, b.DurationHours, b.TotalAmountCents,
		b.AmountPaidCents, b.Status, b.ID)
	return err
}

// Delete removes a booking record.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CountAll returns the total number of bookings.
func (r *BookingRepo) CountAll(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&n)
	return n, err
}

// CountOnDate returns the number of bookings scheduled on a date.
func (r *BookingRepo) CountOnDate(ctx context.Context, date time.Time) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE booking_date=?", date.Format("2006-01-02")).Scan(&n)
	return n, err
}
