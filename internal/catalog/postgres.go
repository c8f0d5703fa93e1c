package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/db"
)

// PostgresStore persists the catalog in Postgres. Array columns (amenities,
// cuisines, nearby_*) use text[].
type PostgresStore struct {
	pool db.DBTX
}

func NewPostgresStore(pool db.DBTX) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const hotelColumns = `id, name, description, city, street, zip_code,
	price_per_night_min, price_per_night_max, amenities,
	nearby_restaurants, nearby_transport, nearby_places,
	owner_id, rating, review_count, is_active, created_at`

func scanHotel(row pgx.Row) (Hotel, error) {
	var h Hotel
	err := row.Scan(&h.ID, &h.Name, &h.Description, &h.City, &h.Street, &h.ZipCode,
		&h.PricePerNightMin, &h.PricePerNightMax, &h.Amenities,
		&h.Nearby.Restaurants, &h.Nearby.Transport, &h.Nearby.Places,
		&h.OwnerID, &h.Rating, &h.ReviewCount, &h.IsActive, &h.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Hotel{}, engagement.ErrNotFound
	}
	return h, err
}

func (s *PostgresStore) CreateHotel(ctx context.Context, h Hotel) (Hotel, error) {
	const q = `INSERT INTO hotels (name, description, city, street, zip_code,
	               price_per_night_min, price_per_night_max, amenities,
	               nearby_restaurants, nearby_transport, nearby_places, owner_id, is_active)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	           RETURNING ` + hotelColumns
	return scanHotel(s.pool.QueryRow(ctx, q,
		h.Name, h.Description, h.City, h.Street, h.ZipCode,
		h.PricePerNightMin, h.PricePerNightMax, h.Amenities,
		h.Nearby.Restaurants, h.Nearby.Transport, h.Nearby.Places, h.OwnerID, h.IsActive))
}

func (s *PostgresStore) GetHotel(ctx context.Context, id string) (Hotel, error) {
	const q = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = $1`
	return scanHotel(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresStore) ListHotels(ctx context.Context, f HotelFilter) ([]Hotel, error) {
	const q = `SELECT ` + hotelColumns + `
	           FROM hotels
	           WHERE is_active
	             AND ($1 = '' OR city = $1)
	             AND ($2::numeric = 0 OR price_per_night_max >= $2)
	             AND ($3::numeric = 0 OR price_per_night_min <= $3)
	           ORDER BY name`
	rows, err := s.pool.Query(ctx, q, f.City, f.MinPrice, f.MaxPrice)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Hotel, 0)
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

const restaurantColumns = `id, name, description, city, cuisines, street,
	price_range, delivery_time, delivery_radius, owner_id, rating, review_count,
	is_active, created_at`

func scanRestaurant(row pgx.Row) (Restaurant, error) {
	var r Restaurant
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.City, &r.Cuisines, &r.Street,
		&r.PriceRange, &r.DeliveryTime, &r.DeliveryRadius, &r.OwnerID,
		&r.Rating, &r.ReviewCount, &r.IsActive, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Restaurant{}, engagement.ErrNotFound
	}
	return r, err
}

func (s *PostgresStore) CreateRestaurant(ctx context.Context, r Restaurant) (Restaurant, error) {
	const q = `INSERT INTO restaurants (name, description, city, cuisines, street,
	               price_range, delivery_time, delivery_radius, owner_id, is_active)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	           RETURNING ` + restaurantColumns
	return scanRestaurant(s.pool.QueryRow(ctx, q,
		r.Name, r.Description, r.City, r.Cuisines, r.Street,
		r.PriceRange, r.DeliveryTime, r.DeliveryRadius, r.OwnerID, r.IsActive))
}

func (s *PostgresStore) GetRestaurant(ctx context.Context, id string) (Restaurant, error) {
	const q = `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	return scanRestaurant(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresStore) ListRestaurants(ctx context.Context, f RestaurantFilter) ([]Restaurant, error) {
	const q = `SELECT ` + restaurantColumns + `
	           FROM restaurants
	           WHERE is_active
	             AND ($1 = '' OR city = $1)
	             AND ($2 = '' OR $2 = ANY(cuisines))
	           ORDER BY name`
	rows, err := s.pool.Query(ctx, q, f.City, f.Cuisine)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Restaurant, 0)
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const menuColumns = `id, restaurant_id, name, description, price, category,
	is_vegetarian, is_available`

func scanMenuItem(row pgx.Row) (MenuItem, error) {
	var m MenuItem
	err := row.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price,
		&m.Category, &m.IsVegetarian, &m.IsAvailable)
	if errors.Is(err, pgx.ErrNoRows) {
		return MenuItem{}, engagement.ErrNotFound
	}
	return m, err
}

func (s *PostgresStore) CreateMenuItem(ctx context.Context, m MenuItem) (MenuItem, error) {
	if _, err := s.GetRestaurant(ctx, m.RestaurantID); err != nil {
		return MenuItem{}, err
	}
	const q = `INSERT INTO menu_items (restaurant_id, name, description, price, category,
	               is_vegetarian, is_available)
	           VALUES ($1, $2, $3, $4, $5, $6, $7)
	           RETURNING ` + menuColumns
	return scanMenuItem(s.pool.QueryRow(ctx, q,
		m.RestaurantID, m.Name, m.Description, m.Price, m.Category,
		m.IsVegetarian, m.IsAvailable))
}

func (s *PostgresStore) ListMenu(ctx context.Context, restaurantID string) ([]MenuItem, error) {
	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	const q = `SELECT ` + menuColumns + ` FROM menu_items WHERE restaurant_id = $1 ORDER BY name`
	rows, err := s.pool.Query(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MenuItem, 0)
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

const placeColumns = `id, name, category, location, city, rating, review_count, created_at`

func scanPlace(row pgx.Row) (Place, error) {
	var p Place
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Location, &p.City,
		&p.Rating, &p.ReviewCount, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Place{}, engagement.ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) CreatePlace(ctx context.Context, p Place) (Place, error) {
	const q = `INSERT INTO places (name, category, location, city)
	           VALUES ($1, $2, $3, $4)
	           RETURNING ` + placeColumns
	return scanPlace(s.pool.QueryRow(ctx, q, p.Name, p.Category, p.Location, p.City))
}

func (s *PostgresStore) GetPlace(ctx context.Context, id string) (Place, error) {
	const q = `SELECT ` + placeColumns + ` FROM places WHERE id = $1`
	return scanPlace(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresStore) ListPlaces(ctx context.Context, f PlaceFilter) ([]Place, error) {
	const q = `SELECT ` + placeColumns + `
	           FROM places
	           WHERE ($1 = '' OR category = $1)
	           ORDER BY name`
	rows, err := s.pool.Query(ctx, q, f.Category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Place, 0)
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// tableFor maps a review entity type onto its backing table. The three tables
// share the rating and review_count columns.
func tableFor(et engagement.EntityType) string {
	switch et {
	case engagement.EntityHotel:
		return "hotels"
	case engagement.EntityRestaurant:
		return "restaurants"
	case engagement.EntityPlace:
		return "places"
	}
	return ""
}

func (s *PostgresStore) EntityExists(ctx context.Context, et engagement.EntityType, id string) (bool, error) {
	table := tableFor(et)
	if table == "" {
		return false, nil
	}
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+table+` WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (s *PostgresStore) SetRatingSummary(ctx context.Context, et engagement.EntityType, id string, sum engagement.Summary) error {
	table := tableFor(et)
	if table == "" {
		return engagement.ErrNotFound
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE `+table+` SET rating = $1, review_count = $2 WHERE id = $3`,
		sum.Rating, sum.ReviewCount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return engagement.ErrNotFound
	}
	return nil
}
