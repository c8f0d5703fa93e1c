package accounts

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")
)

// RefreshSession is one refresh-token grant. Only the token's SHA-256 digest
// is stored; rotation revokes the old session and links its replacement.
type RefreshSession struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type Store interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error

	CreateRefreshSession(ctx context.Context, s RefreshSession) error
	GetRefreshSessionByHash(ctx context.Context, tokenHash string) (RefreshSession, error)
	ReplaceRefreshSession(ctx context.Context, oldID, newID string, now time.Time) error
	RevokeRefreshSession(ctx context.Context, sessionID string, now time.Time) error
}
