package bookings

import (
	"context"
	"time"
)

type Store interface {
	Create(ctx context.Context, b Booking) (Booking, error)
	GetByID(ctx context.Context, id string) (Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	Cancel(ctx context.Context, id, reason string, at time.Time) (Booking, error)
}
