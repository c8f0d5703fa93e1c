package engagement

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryReviewStore keeps reviews and their vote ledgers in process memory.
// Used by tests and by deployments without a database configured.
type InMemoryReviewStore struct {
	mu      sync.Mutex
	reviews map[string]Review
	ledgers map[string]Ledger // review id -> helpful ledger
}

func NewInMemoryReviewStore() *InMemoryReviewStore {
	return &InMemoryReviewStore{
		reviews: make(map[string]Review),
		ledgers: make(map[string]Ledger),
	}
}

func (s *InMemoryReviewStore) Create(_ context.Context, r Review) (Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.reviews[r.ID] = r
	return r, nil
}

func (s *InMemoryReviewStore) GetByID(_ context.Context, id string) (Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	return r, nil
}

func (s *InMemoryReviewStore) ListByEntity(_ context.Context, et EntityType, entityID string) ([]Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Review, 0)
	for _, r := range s.reviews {
		if r.EntityType == et && r.EntityID == entityID && r.IsApproved && !r.IsHidden {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *InMemoryReviewStore) ApprovedRatings(_ context.Context, et EntityType, entityID string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ratings []int
	for _, r := range s.reviews {
		if r.EntityType == et && r.EntityID == entityID && r.IsApproved && !r.IsHidden {
			ratings = append(ratings, r.Rating)
		}
	}
	return ratings, nil
}

func (s *InMemoryReviewStore) SetApproved(_ context.Context, id string, approved bool) (Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return Review{}, ErrNotFound
	}
	r.IsApproved = approved
	s.reviews[id] = r
	return r, nil
}

func (s *InMemoryReviewStore) ToggleVote(_ context.Context, reviewID, userID string, dir Direction) (VoteCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[reviewID]
	if !ok {
		return VoteCounts{}, ErrNotFound
	}

	t := ApplyVote(s.ledgers[reviewID], userID, dir)
	s.ledgers[reviewID] = t.Ledger
	r.Helpful.Upvotes += t.UpDelta
	r.Helpful.Downvotes += t.DownDelta
	s.reviews[reviewID] = r
	return r.Helpful, nil
}

// HelpfulLedger exposes a copy of a review's ledger for invariant checks.
func (s *InMemoryReviewStore) HelpfulLedger(reviewID string) Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.ledgers[reviewID]
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}
