package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/travelon/internal/platform/events"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// response does not leak which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type Service struct {
	Users  Store
	Tokens TokenService
	Events *events.Publisher
	Log    *zap.Logger
}

// Signup registers a new account. Duplicate email yields ErrEmailTaken.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	if err := in.validate(); err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.Users.CreateUser(ctx, User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Role:         in.Role,
		IsActive:     true,
	})
	if err != nil {
		return User{}, err
	}

	s.Events.Publish(events.SubjectUserRegistered, "user.registered", u.ID, map[string]any{
		"role": u.Role,
	})
	return u, nil
}

// Login verifies the password and mints a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (User, TokenPair, error) {
	u, err := s.Users.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, TokenPair{}, err
	}
	if !u.IsActive {
		return User{}, TokenPair{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, TokenPair{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	pair, err := s.issueTokens(ctx, u, now)
	if err != nil {
		return User{}, TokenPair{}, err
	}
	if err := s.Users.TouchLastLogin(ctx, u.ID, now); err != nil && s.Log != nil {
		s.Log.Warn("accounts: touch last login failed", zap.Error(err))
	}

	s.Events.Publish(events.SubjectUserLoggedIn, "user.logged_in", u.ID, nil)
	return u, pair, nil
}

// Refresh rotates a refresh token: the presented session is revoked and a new
// pair is issued. Expired, revoked or unknown tokens all fail the same way.
func (s *Service) Refresh(ctx context.Context, rawRefreshToken string) (TokenPair, error) {
	sess, err := s.Users.GetRefreshSessionByHash(ctx, HashRefreshToken(rawRefreshToken))
	if errors.Is(err, ErrNotFound) {
		return TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return TokenPair{}, err
	}
	now := time.Now().UTC()
	if sess.RevokedAt != nil || now.After(sess.ExpiresAt) {
		return TokenPair{}, ErrInvalidCredentials
	}

	u, err := s.Users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	pair, newSessionID, err := s.mintPair(ctx, u, now)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Users.ReplaceRefreshSession(ctx, sess.ID, newSessionID, now); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	return s.Users.GetUserByID(ctx, userID)
}

// DisplayInfo implements the localposts user directory.
func (s *Service) DisplayInfo(ctx context.Context, userID string) (string, string, error) {
	u, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return u.DisplayName(), u.Avatar, nil
}

func (s *Service) issueTokens(ctx context.Context, u User, now time.Time) (TokenPair, error) {
	pair, _, err := s.mintPair(ctx, u, now)
	return pair, err
}

func (s *Service) mintPair(ctx context.Context, u User, now time.Time) (TokenPair, string, error) {
	access, exp, err := s.Tokens.NewAccessToken(u.ID, u.Role, now)
	if err != nil {
		return TokenPair{}, "", err
	}
	raw, hash, err := NewRefreshToken()
	if err != nil {
		return TokenPair{}, "", err
	}

	sessionID := uuid.NewString()
	err = s.Users.CreateRefreshSession(ctx, RefreshSession{
		ID:        sessionID,
		UserID:    u.ID,
		TokenHash: hash,
		ExpiresAt: now.Add(s.Tokens.RefreshTokenTTL),
	})
	if err != nil {
		return TokenPair{}, "", err
	}

	return TokenPair{AccessToken: access, RefreshToken: raw, ExpiresAt: exp}, sessionID, nil
}
