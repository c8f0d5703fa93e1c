package orders

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/db"
)

// PostgresStore persists orders in Postgres. The item lines live in a jsonb
// column since they are immutable once the order is placed.
type PostgresStore struct {
	pool db.DBTX
}

func NewPostgresStore(pool db.DBTX) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const orderColumns = `id, user_id, restaurant_id, items, delivery_address,
	subtotal, tax, delivery_charge, total_amount, status, estimated_delivery, created_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var items []byte
	err := row.Scan(&o.ID, &o.UserID, &o.RestaurantID, &items, &o.DeliveryAddress,
		&o.Subtotal, &o.Tax, &o.DeliveryCharge, &o.TotalAmount, &o.Status,
		&o.EstimatedDelivery, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, engagement.ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *PostgresStore) Create(ctx context.Context, o Order) (Order, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return Order{}, err
	}
	const q = `INSERT INTO orders (user_id, restaurant_id, items, delivery_address,
	               subtotal, tax, delivery_charge, total_amount, status, estimated_delivery)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	           RETURNING ` + orderColumns
	return scanOrder(s.pool.QueryRow(ctx, q,
		o.UserID, o.RestaurantID, items, o.DeliveryAddress,
		o.Subtotal, o.Tax, o.DeliveryCharge, o.TotalAmount, o.Status, o.EstimatedDelivery))
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders
	           WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SetStatus(ctx context.Context, id string, status Status) (Order, error) {
	const q = `UPDATE orders SET status = $2 WHERE id = $1 RETURNING ` + orderColumns
	return scanOrder(s.pool.QueryRow(ctx, q, id, status))
}
