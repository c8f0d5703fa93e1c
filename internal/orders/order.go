package orders

import (
	"math"
	"time"

	"github.com/example/travelon/internal/engagement"
)

type Status string

const (
	StatusPending        Status = "Pending"
	StatusConfirmed      Status = "Confirmed"
	StatusPreparing      Status = "Preparing"
	StatusReady          Status = "Ready"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Item struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type Order struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	RestaurantID      string    `json:"restaurant_id"`
	Items             []Item    `json:"items"`
	DeliveryAddress   string    `json:"delivery_address"`
	Subtotal          float64   `json:"subtotal"`
	Tax               float64   `json:"tax"`
	DeliveryCharge    float64   `json:"delivery_charge"`
	TotalAmount       float64   `json:"total_amount"`
	Status            Status    `json:"status"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	CreatedAt         time.Time `json:"created_at"`
}

const taxRate = 0.05

// Totals prices an order: 5% tax rounded to two decimals and a flat delivery
// charge keyed off the restaurant's delivery radius.
func Totals(items []Item, deliveryRadiusKm float64) (subtotal, tax, delivery, total float64) {
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	subtotal = round2(subtotal)
	tax = round2(subtotal * taxRate)
	delivery = 30
	if deliveryRadiusKm > 5 {
		delivery = 50
	}
	total = round2(subtotal + tax + delivery)
	return subtotal, tax, delivery, total
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func validateOrder(o Order) error {
	fields := map[string]string{}
	if o.RestaurantID == "" {
		fields["restaurant_id"] = "restaurant_id is required"
	}
	if len(o.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for _, it := range o.Items {
		if it.Quantity < 1 {
			fields["items"] = "item quantity must be at least 1"
			break
		}
		if it.Price < 0 {
			fields["items"] = "item price must be >= 0"
			break
		}
	}
	if o.DeliveryAddress == "" {
		fields["delivery_address"] = "delivery address is required"
	}
	if len(fields) > 0 {
		return &engagement.ValidationError{Fields: fields}
	}
	return nil
}
