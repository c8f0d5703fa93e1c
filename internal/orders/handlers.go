package orders

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/api"
	"github.com/example/travelon/internal/platform/auth"
)

// PlaceOrder handles POST /v1/orders.
func PlaceOrder(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in to order", "")
			return
		}

		var req struct {
			RestaurantID    string `json:"restaurant_id"`
			Items           []Item `json:"items"`
			DeliveryAddress string `json:"delivery_address"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_BODY", "Request body must be valid JSON", "", nil)
			return
		}

		o, err := s.PlaceOrder(r.Context(), Order{
			UserID:          userID,
			RestaurantID:    req.RestaurantID,
			Items:           req.Items,
			DeliveryAddress: req.DeliveryAddress,
		})
		if err != nil {
			writeOrderError(w, err)
			return
		}
		api.Created(w, o)
	}
}

// ListOrders handles GET /v1/orders (the caller's own orders).
func ListOrders(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in first", "")
			return
		}
		out, err := s.ListMine(r.Context(), userID)
		if err != nil {
			writeOrderError(w, err)
			return
		}
		api.List(w, len(out), out)
	}
}

// GetOrder handles GET /v1/orders/{id} (owner or admin).
func GetOrder(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in first", "")
			return
		}
		role, _ := auth.RoleFromContext(r.Context())

		o, err := s.GetOrder(r.Context(), chi.URLParam(r, "id"), userID, role == auth.RoleAdmin)
		if err != nil {
			writeOrderError(w, err)
			return
		}
		api.OK(w, o)
	}
}

// UpdateStatus handles PUT /v1/orders/{id}/status (admin only).
func UpdateStatus(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status Status `json:"status"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_BODY", "Request body must be valid JSON", "", nil)
			return
		}

		o, err := s.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
		if err != nil {
			writeOrderError(w, err)
			return
		}
		api.OK(w, o)
	}
}

func writeOrderError(w http.ResponseWriter, err error) {
	var verr *engagement.ValidationError
	switch {
	case errors.As(err, &verr):
		api.BadRequest(w, "VALIDATION", "Invalid order", "", verr.Details())
	case errors.Is(err, ErrForbidden):
		api.Forbidden(w, "FORBIDDEN", "Not authorized for this order", "")
	case errors.Is(err, engagement.ErrNotFound):
		api.NotFound(w, "NOT_FOUND", "Order not found", "")
	default:
		api.Internal(w, "")
	}
}
