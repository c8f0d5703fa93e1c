package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/db"
)

type PostgresStore struct {
	pool db.DBTX
}

func NewPostgresStore(pool db.DBTX) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const bookingColumns = `id, user_id, hotel_id, room_type, check_in, check_out, guests,
	price_per_night, total_amount, guest_name, guest_email, guest_phone,
	status, cancelled_at, cancellation_reason, created_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.UserID, &b.HotelID, &b.RoomType, &b.CheckIn, &b.CheckOut,
		&b.Guests, &b.PricePerNight, &b.TotalAmount, &b.GuestName, &b.GuestEmail,
		&b.GuestPhone, &b.Status, &b.CancelledAt, &b.CancellationReason, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, engagement.ErrNotFound
	}
	return b, err
}

func (s *PostgresStore) Create(ctx context.Context, b Booking) (Booking, error) {
	const q = `INSERT INTO bookings (user_id, hotel_id, room_type, check_in, check_out, guests,
	               price_per_night, total_amount, guest_name, guest_email, guest_phone, status)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	           RETURNING ` + bookingColumns
	return scanBooking(s.pool.QueryRow(ctx, q,
		b.UserID, b.HotelID, b.RoomType, b.CheckIn, b.CheckOut, b.Guests,
		b.PricePerNight, b.TotalAmount, b.GuestName, b.GuestEmail, b.GuestPhone, b.Status))
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings
	           WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Cancel(ctx context.Context, id, reason string, at time.Time) (Booking, error) {
	const q = `UPDATE bookings
	           SET status = 'Cancelled', cancelled_at = $2, cancellation_reason = $3
	           WHERE id = $1
	           RETURNING ` + bookingColumns
	return scanBooking(s.pool.QueryRow(ctx, q, id, at, reason))
}
