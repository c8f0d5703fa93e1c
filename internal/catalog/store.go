package catalog

import (
	"context"

	"github.com/example/travelon/internal/engagement"
)

// Store is the catalog persistence surface. It also implements
// engagement.EntityStore: rating and review_count on hotels, restaurants and
// places are written only through SetRatingSummary.
type Store interface {
	CreateHotel(ctx context.Context, h Hotel) (Hotel, error)
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListHotels(ctx context.Context, f HotelFilter) ([]Hotel, error)

	CreateRestaurant(ctx context.Context, r Restaurant) (Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (Restaurant, error)
	ListRestaurants(ctx context.Context, f RestaurantFilter) ([]Restaurant, error)

	CreateMenuItem(ctx context.Context, m MenuItem) (MenuItem, error)
	ListMenu(ctx context.Context, restaurantID string) ([]MenuItem, error)

	CreatePlace(ctx context.Context, p Place) (Place, error)
	GetPlace(ctx context.Context, id string) (Place, error)
	ListPlaces(ctx context.Context, f PlaceFilter) ([]Place, error)

	EntityExists(ctx context.Context, et engagement.EntityType, id string) (bool, error)
	SetRatingSummary(ctx context.Context, et engagement.EntityType, id string, s engagement.Summary) error
}
