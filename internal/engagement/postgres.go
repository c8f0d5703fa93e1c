package engagement

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/example/travelon/internal/platform/db"
)

// PostgresReviewStore persists reviews in Postgres. The helpful-vote ledger
// lives in review_votes with a uniqueness constraint on (review_id, user_id);
// counter updates are relative so concurrent votes from distinct users never
// overwrite each other.
type PostgresReviewStore struct {
	pool db.DBTX
}

func NewPostgresReviewStore(pool db.DBTX) *PostgresReviewStore {
	return &PostgresReviewStore{pool: pool}
}

const reviewColumns = `id, entity_type, entity_id, user_id, rating, title, comment,
	upvotes, downvotes, is_approved, is_hidden, created_at`

func scanReview(row pgx.Row) (Review, error) {
	var r Review
	err := row.Scan(&r.ID, &r.EntityType, &r.EntityID, &r.UserID, &r.Rating,
		&r.Title, &r.Comment, &r.Helpful.Upvotes, &r.Helpful.Downvotes,
		&r.IsApproved, &r.IsHidden, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Review{}, ErrNotFound
	}
	return r, err
}

func (s *PostgresReviewStore) Create(ctx context.Context, r Review) (Review, error) {
	const q = `INSERT INTO reviews (entity_type, entity_id, user_id, rating, title, comment, is_approved)
	           VALUES ($1, $2, $3, $4, $5, $6, $7)
	           RETURNING ` + reviewColumns
	return scanReview(s.pool.QueryRow(ctx, q,
		r.EntityType, r.EntityID, r.UserID, r.Rating, r.Title, r.Comment, r.IsApproved))
}

func (s *PostgresReviewStore) GetByID(ctx context.Context, id string) (Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReview(s.pool.QueryRow(ctx, q, id))
}

func (s *PostgresReviewStore) ListByEntity(ctx context.Context, et EntityType, entityID string) ([]Review, error) {
	const q = `SELECT ` + reviewColumns + `
	           FROM reviews
	           WHERE entity_type = $1 AND entity_id = $2 AND is_approved AND NOT is_hidden
	           ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, q, et, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresReviewStore) ApprovedRatings(ctx context.Context, et EntityType, entityID string) ([]int, error) {
	const q = `SELECT rating FROM reviews
	           WHERE entity_type = $1 AND entity_id = $2 AND is_approved AND NOT is_hidden`
	rows, err := s.pool.Query(ctx, q, et, entityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var r int
		if err := rows.Scan(&r); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

func (s *PostgresReviewStore) SetApproved(ctx context.Context, id string, approved bool) (Review, error) {
	const q = `UPDATE reviews SET is_approved = $1 WHERE id = $2 RETURNING ` + reviewColumns
	return scanReview(s.pool.QueryRow(ctx, q, approved, id))
}

func (s *PostgresReviewStore) ToggleVote(ctx context.Context, reviewID, userID string, dir Direction) (VoteCounts, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return VoteCounts{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the review row; doubles as the existence check.
	var exists bool
	err = tx.QueryRow(ctx, `SELECT true FROM reviews WHERE id = $1 FOR UPDATE`, reviewID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return VoteCounts{}, ErrNotFound
	}
	if err != nil {
		return VoteCounts{}, err
	}

	// Load the caller's current ledger entry, if any.
	var ledger Ledger
	var prev Direction
	err = tx.QueryRow(ctx,
		`SELECT vote FROM review_votes WHERE review_id = $1 AND user_id = $2`,
		reviewID, userID).Scan(&prev)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return VoteCounts{}, err
	default:
		ledger = Ledger{{UserID: userID, Vote: prev}}
	}

	t := ApplyVote(ledger, userID, dir)
	switch t.Action {
	case VoteCast:
		_, err = tx.Exec(ctx,
			`INSERT INTO review_votes (review_id, user_id, vote) VALUES ($1, $2, $3)`,
			reviewID, userID, dir)
	case VoteRetract:
		_, err = tx.Exec(ctx,
			`DELETE FROM review_votes WHERE review_id = $1 AND user_id = $2`,
			reviewID, userID)
	case VoteSwitch:
		_, err = tx.Exec(ctx,
			`UPDATE review_votes SET vote = $1 WHERE review_id = $2 AND user_id = $3`,
			dir, reviewID, userID)
	}
	if err != nil {
		return VoteCounts{}, err
	}

	var counts VoteCounts
	err = tx.QueryRow(ctx,
		`UPDATE reviews SET upvotes = upvotes + $1, downvotes = downvotes + $2
		 WHERE id = $3 RETURNING upvotes, downvotes`,
		t.UpDelta, t.DownDelta, reviewID).Scan(&counts.Upvotes, &counts.Downvotes)
	if err != nil {
		return VoteCounts{}, err
	}

	return counts, tx.Commit(ctx)
}
