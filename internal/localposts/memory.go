package localposts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/travelon/internal/engagement"
)

// InMemoryStore keeps posts and their vote ledgers in process memory.
type InMemoryStore struct {
	mu      sync.Mutex
	posts   map[string]Post
	ledgers map[string]engagement.Ledger // post id -> voter ledger
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		posts:   make(map[string]Post),
		ledgers: make(map[string]engagement.Ledger),
	}
}

func (s *InMemoryStore) Create(_ context.Context, p Post) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Visibility == "" {
		p.Visibility = VisibilityPublic
	}
	s.posts[p.ID] = p
	return p, nil
}

func (s *InMemoryStore) GetByID(_ context.Context, id string) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return Post{}, engagement.ErrNotFound
	}
	return p, nil
}

func (s *InMemoryStore) List(_ context.Context, f Filter) ([]Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Post, 0)
	for _, p := range s.posts {
		if !p.IsApproved || p.IsHidden {
			continue
		}
		if f.City != "" && p.City != f.City {
			continue
		}
		if f.PostType != "" && p.PostType != f.PostType {
			continue
		}
		if f.Tag != "" && !containsTag(p.Tags, f.Tag) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > 50 {
		out = out[:50]
	}
	return out, nil
}

func (s *InMemoryStore) ToggleVote(_ context.Context, postID, userID string, dir engagement.Direction) (engagement.VoteCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return engagement.VoteCounts{}, engagement.ErrNotFound
	}

	t := engagement.ApplyVote(s.ledgers[postID], userID, dir)
	s.ledgers[postID] = t.Ledger
	p.Engagement.Upvotes += t.UpDelta
	p.Engagement.Downvotes += t.DownDelta
	p.UpdatedAt = time.Now().UTC()
	s.posts[postID] = p
	return engagement.VoteCounts{Upvotes: p.Engagement.Upvotes, Downvotes: p.Engagement.Downvotes}, nil
}

func (s *InMemoryStore) AddComment(_ context.Context, postID string, c Comment) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return Comment{}, engagement.ErrNotFound
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	p.Engagement.Comments = append(p.Engagement.Comments, c)
	p.UpdatedAt = c.CreatedAt
	s.posts[postID] = p
	return c, nil
}

func (s *InMemoryStore) AddFlag(_ context.Context, postID string, f Flag) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return 0, engagement.ErrNotFound
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	p.FlagCount++
	p.UpdatedAt = f.CreatedAt
	s.posts[postID] = p
	return p.FlagCount, nil
}

func (s *InMemoryStore) SetApproved(_ context.Context, postID string, approved bool) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return Post{}, engagement.ErrNotFound
	}
	p.IsApproved = approved
	p.UpdatedAt = time.Now().UTC()
	s.posts[postID] = p
	return p, nil
}

// VoterLedger exposes a copy of a post's ledger for invariant checks.
func (s *InMemoryStore) VoterLedger(postID string) engagement.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.ledgers[postID]
	out := make(engagement.Ledger, len(l))
	copy(out, l)
	return out
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
