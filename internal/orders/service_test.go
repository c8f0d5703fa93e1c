package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/travelon/internal/catalog"
	"github.com/example/travelon/internal/engagement"
)

func newTestOrders(t *testing.T, deliveryRadius float64) (*Service, catalog.Restaurant) {
	t.Helper()
	store := catalog.NewInMemoryStore()
	rest, err := store.CreateRestaurant(context.Background(), catalog.Restaurant{
		Name: "Dosa Corner", City: "Bangalore",
		DeliveryTime: 40, DeliveryRadius: deliveryRadius, IsActive: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return &Service{Orders: NewInMemoryStore(), Restaurants: store}, rest
}

func sampleOrder(restaurantID string) Order {
	return Order{
		UserID:          "user-a",
		RestaurantID:    restaurantID,
		Items:           []Item{{MenuItemID: "m1", Name: "Masala Dosa", Price: 80, Quantity: 2}},
		DeliveryAddress: "12 MG Road",
	}
}

func TestPlaceOrder(t *testing.T) {
	svc, rest := newTestOrders(t, 3)

	o, err := svc.PlaceOrder(context.Background(), sampleOrder(rest.ID))
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}
	if o.Status != StatusPending {
		t.Fatalf("expected Pending, got %q", o.Status)
	}
	if o.Subtotal != 160 || o.Tax != 8 || o.DeliveryCharge != 30 || o.TotalAmount != 198 {
		t.Fatalf("unexpected totals: %+v", o)
	}
	eta := time.Until(o.EstimatedDelivery)
	if eta < 39*time.Minute || eta > 41*time.Minute {
		t.Fatalf("expected delivery estimate about 40 minutes out, got %v", eta)
	}
}

func TestPlaceOrder_FarDeliveryCharge(t *testing.T) {
	svc, rest := newTestOrders(t, 8)

	o, err := svc.PlaceOrder(context.Background(), sampleOrder(rest.ID))
	if err != nil {
		t.Fatal(err)
	}
	if o.DeliveryCharge != 50 {
		t.Fatalf("expected delivery charge 50, got %v", o.DeliveryCharge)
	}
}

func TestPlaceOrder_Validation(t *testing.T) {
	svc, rest := newTestOrders(t, 3)

	bad := sampleOrder(rest.ID)
	bad.Items = []Item{{MenuItemID: "m1", Price: 80, Quantity: 0}}
	_, err := svc.PlaceOrder(context.Background(), bad)
	var verr *engagement.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPlaceOrder_UnknownRestaurant(t *testing.T) {
	svc, _ := newTestOrders(t, 3)

	if _, err := svc.PlaceOrder(context.Background(), sampleOrder("ghost")); !errors.Is(err, engagement.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetOrder_OwnerOrAdmin(t *testing.T) {
	svc, rest := newTestOrders(t, 3)
	ctx := context.Background()
	o, _ := svc.PlaceOrder(ctx, sampleOrder(rest.ID))

	if _, err := svc.GetOrder(ctx, o.ID, "user-a", false); err != nil {
		t.Fatalf("owner access: %v", err)
	}
	if _, err := svc.GetOrder(ctx, o.ID, "stranger", false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetOrder(ctx, o.ID, "stranger", true); err != nil {
		t.Fatalf("admin access: %v", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, rest := newTestOrders(t, 3)
	ctx := context.Background()
	o, _ := svc.PlaceOrder(ctx, sampleOrder(rest.ID))

	updated, err := svc.UpdateStatus(ctx, o.ID, StatusOutForDelivery)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != StatusOutForDelivery {
		t.Fatalf("expected status update, got %q", updated.Status)
	}

	_, err = svc.UpdateStatus(ctx, o.ID, Status("Teleported"))
	var verr *engagement.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error for bad status, got %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, "ghost", StatusConfirmed); !errors.Is(err, engagement.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
