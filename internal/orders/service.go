package orders

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/example/travelon/internal/catalog"
	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/events"
)

var ErrForbidden = errors.New("not authorized")

// RestaurantLookup is the slice of the catalog the order flow needs.
type RestaurantLookup interface {
	GetRestaurant(ctx context.Context, id string) (catalog.Restaurant, error)
}

type Service struct {
	Orders      Store
	Restaurants RestaurantLookup
	Events      *events.Publisher
	Log         *zap.Logger
}

// PlaceOrder validates and prices an order off the restaurant's delivery
// terms, then stores it as Pending.
func (s *Service) PlaceOrder(ctx context.Context, o Order) (Order, error) {
	if err := validateOrder(o); err != nil {
		return Order{}, err
	}

	rest, err := s.Restaurants.GetRestaurant(ctx, o.RestaurantID)
	if err != nil {
		return Order{}, err
	}

	o.Subtotal, o.Tax, o.DeliveryCharge, o.TotalAmount = Totals(o.Items, rest.DeliveryRadius)
	o.Status = StatusPending
	o.EstimatedDelivery = time.Now().UTC().Add(time.Duration(rest.DeliveryTime) * time.Minute)

	placed, err := s.Orders.Create(ctx, o)
	if err != nil {
		return Order{}, err
	}
	s.Events.Publish(events.SubjectOrderPlaced, "order.placed", o.UserID, map[string]any{
		"order_id":      placed.ID,
		"restaurant_id": placed.RestaurantID,
		"total_amount":  placed.TotalAmount,
	})
	return placed, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// GetOrder enforces owner-or-admin access.
func (s *Service) GetOrder(ctx context.Context, id, userID string, isAdmin bool) (Order, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return Order{}, err
	}
	if o.UserID != userID && !isAdmin {
		return Order{}, ErrForbidden
	}
	return o, nil
}

// UpdateStatus moves an order to a new status (admin only, gated at the
// router).
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	if !status.Valid() {
		return Order{}, &engagement.ValidationError{Fields: map[string]string{
			"status": "unknown order status",
		}}
	}
	return s.Orders.SetStatus(ctx, id, status)
}
