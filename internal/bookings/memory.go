package bookings

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/travelon/internal/engagement"
)

type InMemoryStore struct {
	mu       sync.Mutex
	bookings map[string]Booking
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{bookings: make(map[string]Booking)}
}

func (s *InMemoryStore) Create(_ context.Context, b Booking) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	s.bookings[b.ID] = b
	return b, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return Booking{}, engagement.ErrNotFound
	}
	return b, nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID string) ([]Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryStore) Cancel(_ context.Context, id, reason string, at time.Time) (Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return Booking{}, engagement.ErrNotFound
	}
	b.Status = StatusCancelled
	b.CancelledAt = &at
	b.CancellationReason = reason
	s.bookings[id] = b
	return b, nil
}
