package bookings

import (
	"strings"
	"time"

	"github.com/example/travelon/internal/engagement"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

type Booking struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	HotelID            string     `json:"hotel_id"`
	RoomType           string     `json:"room_type"`
	CheckIn            time.Time  `json:"check_in"`
	CheckOut           time.Time  `json:"check_out"`
	Guests             int        `json:"guests"`
	PricePerNight      float64    `json:"price_per_night"`
	TotalAmount        float64    `json:"total_amount"`
	GuestName          string     `json:"guest_name"`
	GuestEmail         string     `json:"guest_email"`
	GuestPhone         string     `json:"guest_phone,omitempty"`
	Status             Status     `json:"status"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Nights returns the stay length in whole nights.
func (b Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

func validateBooking(b Booking) error {
	fields := map[string]string{}
	if strings.TrimSpace(b.HotelID) == "" {
		fields["hotel_id"] = "hotel_id is required"
	}
	if !b.CheckOut.After(b.CheckIn) {
		fields["check_out"] = "checkout date must be after check-in date"
	}
	if b.Guests < 1 {
		fields["guests"] = "at least one guest is required"
	}
	if strings.TrimSpace(b.GuestName) == "" {
		fields["guest_name"] = "guest name is required"
	}
	if strings.TrimSpace(b.GuestEmail) == "" {
		fields["guest_email"] = "guest email is required"
	}
	if len(fields) > 0 {
		return &engagement.ValidationError{Fields: fields}
	}
	return nil
}
