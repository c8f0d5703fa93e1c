package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/example/travelon/internal/platform/db"
)

// PostgresStore persists accounts in Postgres. Email uniqueness is enforced by
// a unique index on lower(email).
type PostgresStore struct {
	pool db.DBTX
}

func NewPostgresStore(pool db.DBTX) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const userColumns = `id, first_name, last_name, email, password_hash, phone, avatar,
	role, is_active, created_at, updated_at, last_login`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Phone, &u.Avatar, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *PostgresStore) CreateUser(ctx context.Context, u User) (User, error) {
	const q = `INSERT INTO users (first_name, last_name, email, password_hash, phone, avatar, role, is_active)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	           RETURNING ` + userColumns
	created, err := scanUser(s.pool.QueryRow(ctx, q,
		u.FirstName, u.LastName, strings.ToLower(u.Email), u.PasswordHash,
		u.Phone, u.Avatar, u.Role, u.IsActive))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return created, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return scanUser(s.pool.QueryRow(ctx, q, strings.TrimSpace(email)))
}

func (s *PostgresStore) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`, userID, at)
	return err
}

func (s *PostgresStore) CreateRefreshSession(ctx context.Context, rs RefreshSession) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO refresh_sessions (id, user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		rs.ID, rs.UserID, rs.TokenHash, rs.ExpiresAt)
	return err
}

func (s *PostgresStore) GetRefreshSessionByHash(ctx context.Context, tokenHash string) (RefreshSession, error) {
	const q = `SELECT id, user_id, token_hash, expires_at, revoked_at
	           FROM refresh_sessions WHERE token_hash = $1 LIMIT 1`
	var rs RefreshSession
	err := s.pool.QueryRow(ctx, q, tokenHash).
		Scan(&rs.ID, &rs.UserID, &rs.TokenHash, &rs.ExpiresAt, &rs.RevokedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return RefreshSession{}, ErrNotFound
	}
	return rs, err
}

func (s *PostgresStore) ReplaceRefreshSession(ctx context.Context, oldID, newID string, now time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE refresh_sessions SET revoked_at = $3, replaced_by_session_id = $2
		 WHERE id = $1 AND revoked_at IS NULL`, oldID, newID, now)
	return err
}

func (s *PostgresStore) RevokeRefreshSession(ctx context.Context, sessionID string, now time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE refresh_sessions SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`,
		sessionID, now)
	return err
}
