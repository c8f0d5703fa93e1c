package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/travelon/internal/engagement"
)

// InMemoryStore keeps the whole catalog in process memory. Used by tests and
// by deployments without a database configured.
type InMemoryStore struct {
	mu          sync.Mutex
	hotels      map[string]Hotel
	restaurants map[string]Restaurant
	menuItems   map[string]MenuItem
	places      map[string]Place
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		hotels:      make(map[string]Hotel),
		restaurants: make(map[string]Restaurant),
		menuItems:   make(map[string]MenuItem),
		places:      make(map[string]Place),
	}
}

func (s *InMemoryStore) CreateHotel(_ context.Context, h Hotel) (Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	s.hotels[h.ID] = h
	return h, nil
}

func (s *InMemoryStore) GetHotel(_ context.Context, id string) (Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.hotels[id]
	if !ok {
		return Hotel{}, engagement.ErrNotFound
	}
	return h, nil
}

func (s *InMemoryStore) ListHotels(_ context.Context, f HotelFilter) ([]Hotel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Hotel, 0)
	for _, h := range s.hotels {
		if !h.IsActive {
			continue
		}
		if f.City != "" && h.City != f.City {
			continue
		}
		if f.MinPrice > 0 && h.PricePerNightMax < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && h.PricePerNightMin > f.MaxPrice {
			continue
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStore) CreateRestaurant(_ context.Context, r Restaurant) (Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.restaurants[r.ID] = r
	return r, nil
}

func (s *InMemoryStore) GetRestaurant(_ context.Context, id string) (Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.restaurants[id]
	if !ok {
		return Restaurant{}, engagement.ErrNotFound
	}
	return r, nil
}

func (s *InMemoryStore) ListRestaurants(_ context.Context, f RestaurantFilter) ([]Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Restaurant, 0)
	for _, r := range s.restaurants {
		if !r.IsActive {
			continue
		}
		if f.City != "" && r.City != f.City {
			continue
		}
		if f.Cuisine != "" && !containsString(r.Cuisines, f.Cuisine) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStore) CreateMenuItem(_ context.Context, m MenuItem) (MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[m.RestaurantID]; !ok {
		return MenuItem{}, engagement.ErrNotFound
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.menuItems[m.ID] = m
	return m, nil
}

func (s *InMemoryStore) ListMenu(_ context.Context, restaurantID string) ([]MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[restaurantID]; !ok {
		return nil, engagement.ErrNotFound
	}
	out := make([]MenuItem, 0)
	for _, m := range s.menuItems {
		if m.RestaurantID == restaurantID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStore) CreatePlace(_ context.Context, p Place) (Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	s.places[p.ID] = p
	return p, nil
}

func (s *InMemoryStore) GetPlace(_ context.Context, id string) (Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.places[id]
	if !ok {
		return Place{}, engagement.ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) ListPlaces(_ context.Context, f PlaceFilter) ([]Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Place, 0)
	for _, p := range s.places {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *InMemoryStore) EntityExists(_ context.Context, et engagement.EntityType, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch et {
	case engagement.EntityHotel:
		_, ok := s.hotels[id]
		return ok, nil
	case engagement.EntityRestaurant:
		_, ok := s.restaurants[id]
		return ok, nil
	case engagement.EntityPlace:
		_, ok := s.places[id]
		return ok, nil
	}
	return false, nil
}

func (s *InMemoryStore) SetRatingSummary(_ context.Context, et engagement.EntityType, id string, sum engagement.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch et {
	case engagement.EntityHotel:
		h, ok := s.hotels[id]
		if !ok {
			return engagement.ErrNotFound
		}
		h.Rating, h.ReviewCount = sum.Rating, sum.ReviewCount
		s.hotels[id] = h
	case engagement.EntityRestaurant:
		r, ok := s.restaurants[id]
		if !ok {
			return engagement.ErrNotFound
		}
		r.Rating, r.ReviewCount = sum.Rating, sum.ReviewCount
		s.restaurants[id] = r
	case engagement.EntityPlace:
		p, ok := s.places[id]
		if !ok {
			return engagement.ErrNotFound
		}
		p.Rating, p.ReviewCount = sum.Rating, sum.ReviewCount
		s.places[id] = p
	}
	return nil
}

func containsString(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
