package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/api"
	"github.com/example/travelon/internal/platform/auth"
)

// CreateBooking handles POST /v1/bookings.
func CreateBooking(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in to book", "")
			return
		}

		var req struct {
			HotelID       string    `json:"hotel_id"`
			RoomType      string    `json:"room_type"`
			CheckIn       time.Time `json:"check_in"`
			CheckOut      time.Time `json:"check_out"`
			Guests        int       `json:"guests"`
			PricePerNight float64   `json:"price_per_night"`
			GuestName     string    `json:"guest_name"`
			GuestEmail    string    `json:"guest_email"`
			GuestPhone    string    `json:"guest_phone"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_BODY", "Request body must be valid JSON", "", nil)
			return
		}

		b, err := s.CreateBooking(r.Context(), Booking{
			UserID:        userID,
			HotelID:       req.HotelID,
			RoomType:      req.RoomType,
			CheckIn:       req.CheckIn,
			CheckOut:      req.CheckOut,
			Guests:        req.Guests,
			PricePerNight: req.PricePerNight,
			GuestName:     req.GuestName,
			GuestEmail:    req.GuestEmail,
			GuestPhone:    req.GuestPhone,
		})
		if err != nil {
			writeBookingError(w, err)
			return
		}
		api.Created(w, b)
	}
}

// ListBookings handles GET /v1/bookings (the caller's own bookings).
func ListBookings(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in first", "")
			return
		}
		out, err := s.ListMine(r.Context(), userID)
		if err != nil {
			writeBookingError(w, err)
			return
		}
		api.List(w, len(out), out)
	}
}

// GetBooking handles GET /v1/bookings/{id} (owner or admin).
func GetBooking(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in first", "")
			return
		}
		role, _ := auth.RoleFromContext(r.Context())

		b, err := s.GetBooking(r.Context(), chi.URLParam(r, "id"), userID, role == auth.RoleAdmin)
		if err != nil {
			writeBookingError(w, err)
			return
		}
		api.OK(w, b)
	}
}

// CancelBooking handles PUT /v1/bookings/{id}/cancel.
func CancelBooking(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in first", "")
			return
		}
		role, _ := auth.RoleFromContext(r.Context())

		var req struct {
			Reason string `json:"reason"`
		}
		// Body is optional.
		_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req)

		b, err := s.CancelBooking(r.Context(), chi.URLParam(r, "id"), userID, role == auth.RoleAdmin, req.Reason)
		if err != nil {
			writeBookingError(w, err)
			return
		}
		api.OK(w, b)
	}
}

func writeBookingError(w http.ResponseWriter, err error) {
	var verr *engagement.ValidationError
	switch {
	case errors.As(err, &verr):
		api.BadRequest(w, "VALIDATION", "Invalid booking", "", verr.Details())
	case errors.Is(err, ErrForbidden):
		api.Forbidden(w, "FORBIDDEN", "Not authorized for this booking", "")
	case errors.Is(err, engagement.ErrNotFound):
		api.NotFound(w, "NOT_FOUND", "Booking not found", "")
	default:
		api.Internal(w, "")
	}
}
