package bookings

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/example/travelon/internal/catalog"
	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/events"
)

// ErrForbidden marks access by someone who is neither the booking's owner nor
// an admin.
var ErrForbidden = errors.New("not authorized")

// HotelLookup is the slice of the catalog the booking flow needs.
type HotelLookup interface {
	GetHotel(ctx context.Context, id string) (catalog.Hotel, error)
}

type Service struct {
	Bookings Store
	Hotels   HotelLookup
	Events   *events.Publisher
	Log      *zap.Logger
}

// CreateBooking validates the stay, prices it off the hotel when the caller
// does not send a rate, and stores it as Pending.
func (s *Service) CreateBooking(ctx context.Context, b Booking) (Booking, error) {
	b.CheckIn = b.CheckIn.UTC().Truncate(24 * time.Hour)
	b.CheckOut = b.CheckOut.UTC().Truncate(24 * time.Hour)
	if err := validateBooking(b); err != nil {
		return Booking{}, err
	}

	hotel, err := s.Hotels.GetHotel(ctx, b.HotelID)
	if err != nil {
		return Booking{}, err
	}
	if b.PricePerNight <= 0 {
		b.PricePerNight = hotel.PricePerNightMin
	}
	b.TotalAmount = float64(b.Nights()) * b.PricePerNight
	b.Status = StatusPending

	created, err := s.Bookings.Create(ctx, b)
	if err != nil {
		return Booking{}, err
	}
	s.Events.Publish(events.SubjectBookingCreated, "booking.created", b.UserID, map[string]any{
		"booking_id":   created.ID,
		"hotel_id":     created.HotelID,
		"total_amount": created.TotalAmount,
		"nights":       created.Nights(),
	})
	return created, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}

// GetBooking enforces owner-or-admin access.
func (s *Service) GetBooking(ctx context.Context, id, userID string, isAdmin bool) (Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if b.UserID != userID && !isAdmin {
		return Booking{}, ErrForbidden
	}
	return b, nil
}

// CancelBooking cancels an owned booking. Cancelling twice is an error.
func (s *Service) CancelBooking(ctx context.Context, id, userID string, isAdmin bool, reason string) (Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if b.UserID != userID && !isAdmin {
		return Booking{}, ErrForbidden
	}
	if b.Status == StatusCancelled {
		return Booking{}, &engagement.ValidationError{Fields: map[string]string{
			"status": "booking is already cancelled",
		}}
	}
	if reason == "" {
		reason = "Cancelled by user"
	}
	return s.Bookings.Cancel(ctx, id, reason, time.Now().UTC())
}
