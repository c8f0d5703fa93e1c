package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/api"
	"github.com/example/travelon/internal/platform/auth"
)

// ListHotels handles GET /v1/hotels with optional city/minPrice/maxPrice filters.
func ListHotels(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := HotelFilter{City: r.URL.Query().Get("city")}
		var err error
		if f.MinPrice, err = parsePrice(r.URL.Query().Get("minPrice")); err != nil {
			api.BadRequest(w, "INVALID_PRICE", "minPrice must be a non-negative number", "", nil)
			return
		}
		if f.MaxPrice, err = parsePrice(r.URL.Query().Get("maxPrice")); err != nil {
			api.BadRequest(w, "INVALID_PRICE", "maxPrice must be a non-negative number", "", nil)
			return
		}

		hotels, err := store.ListHotels(r.Context(), f)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.List(w, len(hotels), hotels)
	}
}

func GetHotel(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := store.GetHotel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.OK(w, h)
	}
}

// CreateHotel handles POST /v1/hotels. Role gating happens at the router.
func CreateHotel(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var h Hotel
		if err := decodeBody(w, r, &h); err != nil {
			return
		}
		if err := validateHotel(h); err != nil {
			writeCatalogError(w, err)
			return
		}
		if userID, ok := auth.UserIDFromContext(r.Context()); ok && h.OwnerID == "" {
			h.OwnerID = userID
		}
		h.IsActive = true
		h.Rating, h.ReviewCount = 0, 0

		created, err := store.CreateHotel(r.Context(), h)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.Created(w, created)
	}
}

func ListRestaurants(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := RestaurantFilter{
			City:    r.URL.Query().Get("city"),
			Cuisine: r.URL.Query().Get("cuisine"),
		}
		restaurants, err := store.ListRestaurants(r.Context(), f)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.List(w, len(restaurants), restaurants)
	}
}

func GetRestaurant(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest, err := store.GetRestaurant(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.OK(w, rest)
	}
}

func CreateRestaurant(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rest Restaurant
		if err := decodeBody(w, r, &rest); err != nil {
			return
		}
		if err := validateRestaurant(rest); err != nil {
			writeCatalogError(w, err)
			return
		}
		if userID, ok := auth.UserIDFromContext(r.Context()); ok && rest.OwnerID == "" {
			rest.OwnerID = userID
		}
		rest.IsActive = true
		rest.Rating, rest.ReviewCount = 0, 0

		created, err := store.CreateRestaurant(r.Context(), rest)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.Created(w, created)
	}
}

// GetMenu handles GET /v1/restaurants/{id}/menu.
func GetMenu(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := store.ListMenu(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.List(w, len(items), items)
	}
}

func CreateMenuItem(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m MenuItem
		if err := decodeBody(w, r, &m); err != nil {
			return
		}
		m.RestaurantID = chi.URLParam(r, "id")
		if err := validateMenuItem(m); err != nil {
			writeCatalogError(w, err)
			return
		}
		m.IsAvailable = true

		created, err := store.CreateMenuItem(r.Context(), m)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.Created(w, created)
	}
}

func ListPlaces(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := PlaceFilter{Category: r.URL.Query().Get("category")}
		if f.Category != "" && !validPlaceCategories[f.Category] {
			api.BadRequest(w, "INVALID_CATEGORY", "category must be one of worship, eatery, interest, shopping", "", nil)
			return
		}
		places, err := store.ListPlaces(r.Context(), f)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.List(w, len(places), places)
	}
}

func GetPlace(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := store.GetPlace(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.OK(w, p)
	}
}

func CreatePlace(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p Place
		if err := decodeBody(w, r, &p); err != nil {
			return
		}
		if err := validatePlace(p); err != nil {
			writeCatalogError(w, err)
			return
		}
		created, err := store.CreatePlace(r.Context(), p)
		if err != nil {
			writeCatalogError(w, err)
			return
		}
		api.Created(w, created)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		api.BadRequest(w, "INVALID_BODY", "Request body must be valid JSON", "", nil)
		return err
	}
	return nil
}

func parsePrice(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, errors.New("invalid price")
	}
	return v, nil
}

func writeCatalogError(w http.ResponseWriter, err error) {
	var verr *engagement.ValidationError
	switch {
	case errors.As(err, &verr):
		api.BadRequest(w, "VALIDATION", "Invalid input", "", verr.Details())
	case errors.Is(err, engagement.ErrNotFound):
		api.NotFound(w, "NOT_FOUND", "Resource not found", "")
	default:
		api.Internal(w, "")
	}
}
