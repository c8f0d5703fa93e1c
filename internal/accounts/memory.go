package accounts

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps users and sessions in process memory.
type InMemoryStore struct {
	mu       sync.Mutex
	users    map[string]User
	byEmail  map[string]string // lowercase email -> user id
	sessions map[string]RefreshSession
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:    make(map[string]User),
		byEmail:  make(map[string]string),
		sessions: make(map[string]RefreshSession),
	}
}

func (s *InMemoryStore) CreateUser(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, taken := s.byEmail[email]; taken {
		return User{}, ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = u
	s.byEmail[email] = u.ID
	return u, nil
}

func (s *InMemoryStore) GetUserByID(_ context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *InMemoryStore) FindUserByEmail(_ context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return User{}, ErrNotFound
	}
	return s.users[id], nil
}

func (s *InMemoryStore) TouchLastLogin(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	u.UpdatedAt = at
	s.users[userID] = u
	return nil
}

func (s *InMemoryStore) CreateRefreshSession(_ context.Context, rs RefreshSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rs.ID == "" {
		rs.ID = uuid.NewString()
	}
	s.sessions[rs.ID] = rs
	return nil
}

func (s *InMemoryStore) GetRefreshSessionByHash(_ context.Context, tokenHash string) (RefreshSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rs := range s.sessions {
		if rs.TokenHash == tokenHash {
			return rs, nil
		}
	}
	return RefreshSession{}, ErrNotFound
}

func (s *InMemoryStore) ReplaceRefreshSession(_ context.Context, oldID, newID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.sessions[oldID]
	if !ok || rs.RevokedAt != nil {
		return nil
	}
	rs.RevokedAt = &now
	s.sessions[oldID] = rs
	return nil
}

func (s *InMemoryStore) RevokeRefreshSession(_ context.Context, sessionID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.sessions[sessionID]
	if !ok || rs.RevokedAt != nil {
		return nil
	}
	rs.RevokedAt = &now
	s.sessions[sessionID] = rs
	return nil
}
