package catalog

import (
	"strings"
	"time"

	"github.com/example/travelon/internal/engagement"
)

// Amenities a hotel may declare. Anything outside the set is rejected.
var validAmenities = map[string]bool{
	"WiFi": true, "AC": true, "Parking": true, "Pool": true, "Gym": true,
	"Restaurant": true, "Room Service": true, "Spa": true, "Laundry": true,
	"24/7 Reception": true, "Travel Desk": true, "Breakfast": true,
}

// Nearby lists points of interest around a hotel, free-form names.
type Nearby struct {
	Restaurants []string `json:"restaurants"`
	Transport   []string `json:"transport"`
	Places      []string `json:"places"`
}

type Hotel struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	City             string    `json:"city"`
	Street           string    `json:"street"`
	ZipCode          string    `json:"zip_code"`
	PricePerNightMin float64   `json:"price_per_night_min"`
	PricePerNightMax float64   `json:"price_per_night_max"`
	Amenities        []string  `json:"amenities"`
	Nearby           Nearby    `json:"nearby"`
	OwnerID          string    `json:"owner_id"`
	Rating           float64   `json:"rating"`
	ReviewCount      int       `json:"review_count"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

type Restaurant struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	City           string    `json:"city"`
	Cuisines       []string  `json:"cuisines"`
	Street         string    `json:"street"`
	PriceRange     string    `json:"price_range"`
	DeliveryTime   int       `json:"delivery_time"`
	DeliveryRadius float64   `json:"delivery_radius"`
	OwnerID        string    `json:"owner_id"`
	Rating         float64   `json:"rating"`
	ReviewCount    int       `json:"review_count"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	IsVegetarian bool    `json:"is_vegetarian"`
	IsAvailable  bool    `json:"is_available"`
}

// Categories a city place can belong to.
var validPlaceCategories = map[string]bool{
	"worship": true, "eatery": true, "interest": true, "shopping": true,
}

type Place struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	City        string    `json:"city"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// HotelFilter narrows hotel listings. Zero values mean "no constraint".
type HotelFilter struct {
	City     string
	MinPrice float64
	MaxPrice float64
}

type RestaurantFilter struct {
	City    string
	Cuisine string
}

type PlaceFilter struct {
	Category string
}

func validateHotel(h Hotel) error {
	fields := map[string]string{}
	if strings.TrimSpace(h.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(h.City) == "" {
		fields["city"] = "city is required"
	}
	if h.PricePerNightMin < 0 {
		fields["price_per_night_min"] = "must be >= 0"
	}
	if h.PricePerNightMax < h.PricePerNightMin {
		fields["price_per_night_max"] = "must be >= price_per_night_min"
	}
	for _, a := range h.Amenities {
		if !validAmenities[a] {
			fields["amenities"] = "unknown amenity: " + a
			break
		}
	}
	if len(fields) > 0 {
		return &engagement.ValidationError{Fields: fields}
	}
	return nil
}

func validateRestaurant(r Restaurant) error {
	fields := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(r.City) == "" {
		fields["city"] = "city is required"
	}
	if r.DeliveryRadius < 0 {
		fields["delivery_radius"] = "must be >= 0"
	}
	if len(fields) > 0 {
		return &engagement.ValidationError{Fields: fields}
	}
	return nil
}

func validateMenuItem(m MenuItem) error {
	fields := map[string]string{}
	if strings.TrimSpace(m.Name) == "" {
		fields["name"] = "name is required"
	}
	if m.Price < 0 {
		fields["price"] = "must be >= 0"
	}
	if len(fields) > 0 {
		return &engagement.ValidationError{Fields: fields}
	}
	return nil
}

func validatePlace(p Place) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "name is required"
	}
	if !validPlaceCategories[p.Category] {
		fields["category"] = "must be one of worship, eatery, interest, shopping"
	}
	if len(fields) > 0 {
		return &engagement.ValidationError{Fields: fields}
	}
	return nil
}
