package localposts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/db"
)

// PostgresStore persists local posts in Postgres. Votes live in post_votes
// with a uniqueness constraint on (post_id, user_id); comments and flags are
// append-only child tables.
type PostgresStore struct {
	pool db.DBTX
}

func NewPostgresStore(pool db.DBTX) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postColumns = `id, user_id, city, post_type, title, content, tags,
	upvotes, downvotes, is_approved, is_hidden, flag_count, visibility,
	created_at, updated_at`

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.UserID, &p.City, &p.PostType, &p.Title, &p.Content,
		&p.Tags, &p.Engagement.Upvotes, &p.Engagement.Downvotes,
		&p.IsApproved, &p.IsHidden, &p.FlagCount, &p.Visibility,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, engagement.ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) Create(ctx context.Context, p Post) (Post, error) {
	if p.Visibility == "" {
		p.Visibility = VisibilityPublic
	}
	const q = `INSERT INTO local_posts (user_id, city, post_type, title, content, tags, visibility, is_approved)
	           VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	           RETURNING ` + postColumns
	return scanPost(s.pool.QueryRow(ctx, q,
		p.UserID, p.City, p.PostType, p.Title, p.Content, p.Tags, p.Visibility, p.IsApproved))
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (Post, error) {
	const q = `SELECT ` + postColumns + ` FROM local_posts WHERE id = $1`
	p, err := scanPost(s.pool.QueryRow(ctx, q, id))
	if err != nil {
		return Post{}, err
	}
	p.Engagement.Comments, err = s.listComments(ctx, id)
	return p, err
}

func (s *PostgresStore) listComments(ctx context.Context, postID string) ([]Comment, error) {
	const q = `SELECT id, user_id, user_name, user_avatar, comment, created_at
	           FROM post_comments WHERE post_id = $1 ORDER BY created_at, id`
	rows, err := s.pool.Query(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Comment, 0)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.UserName, &c.UserAvatar, &c.Comment, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Post, error) {
	const q = `SELECT ` + postColumns + `
	           FROM local_posts
	           WHERE is_approved AND NOT is_hidden
	             AND ($1 = '' OR city ILIKE $1)
	             AND ($2 = '' OR post_type = $2)
	             AND ($3 = '' OR $3 = ANY(tags))
	           ORDER BY created_at DESC
	           LIMIT 50`
	rows, err := s.pool.Query(ctx, q, f.City, string(f.PostType), f.Tag)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresStore) ToggleVote(ctx context.Context, postID, userID string, dir engagement.Direction) (engagement.VoteCounts, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return engagement.VoteCounts{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx, `SELECT true FROM local_posts WHERE id = $1 FOR UPDATE`, postID).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return engagement.VoteCounts{}, engagement.ErrNotFound
	}
	if err != nil {
		return engagement.VoteCounts{}, err
	}

	var ledger engagement.Ledger
	var prev engagement.Direction
	err = tx.QueryRow(ctx,
		`SELECT vote FROM post_votes WHERE post_id = $1 AND user_id = $2`,
		postID, userID).Scan(&prev)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
	case err != nil:
		return engagement.VoteCounts{}, err
	default:
		ledger = engagement.Ledger{{UserID: userID, Vote: prev}}
	}

	t := engagement.ApplyVote(ledger, userID, dir)
	switch t.Action {
	case engagement.VoteCast:
		_, err = tx.Exec(ctx,
			`INSERT INTO post_votes (post_id, user_id, vote) VALUES ($1, $2, $3)`,
			postID, userID, dir)
	case engagement.VoteRetract:
		_, err = tx.Exec(ctx,
			`DELETE FROM post_votes WHERE post_id = $1 AND user_id = $2`,
			postID, userID)
	case engagement.VoteSwitch:
		_, err = tx.Exec(ctx,
			`UPDATE post_votes SET vote = $1 WHERE post_id = $2 AND user_id = $3`,
			dir, postID, userID)
	}
	if err != nil {
		return engagement.VoteCounts{}, err
	}

	var counts engagement.VoteCounts
	err = tx.QueryRow(ctx,
		`UPDATE local_posts SET upvotes = upvotes + $1, downvotes = downvotes + $2, updated_at = now()
		 WHERE id = $3 RETURNING upvotes, downvotes`,
		t.UpDelta, t.DownDelta, postID).Scan(&counts.Upvotes, &counts.Downvotes)
	if err != nil {
		return engagement.VoteCounts{}, err
	}

	return counts, tx.Commit(ctx)
}

func (s *PostgresStore) AddComment(ctx context.Context, postID string, c Comment) (Comment, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM local_posts WHERE id = $1)`, postID).Scan(&exists)
	if err != nil {
		return Comment{}, err
	}
	if !exists {
		return Comment{}, engagement.ErrNotFound
	}

	const q = `INSERT INTO post_comments (post_id, user_id, user_name, user_avatar, comment)
	           VALUES ($1, $2, $3, $4, $5)
	           RETURNING id, user_id, user_name, user_avatar, comment, created_at`
	var out Comment
	err = s.pool.QueryRow(ctx, q, postID, c.UserID, c.UserName, c.UserAvatar, c.Comment).
		Scan(&out.ID, &out.UserID, &out.UserName, &out.UserAvatar, &out.Comment, &out.CreatedAt)
	return out, err
}

func (s *PostgresStore) AddFlag(ctx context.Context, postID string, f Flag) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var count int
	err = tx.QueryRow(ctx,
		`UPDATE local_posts SET flag_count = flag_count + 1, updated_at = now()
		 WHERE id = $1 RETURNING flag_count`, postID).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, engagement.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO post_flags (post_id, user_id, reason) VALUES ($1, $2, $3)`,
		postID, f.UserID, f.Reason)
	if err != nil {
		return 0, err
	}
	return count, tx.Commit(ctx)
}

func (s *PostgresStore) SetApproved(ctx context.Context, postID string, approved bool) (Post, error) {
	const q = `UPDATE local_posts SET is_approved = $1, updated_at = now()
	           WHERE id = $2 RETURNING ` + postColumns
	return scanPost(s.pool.QueryRow(ctx, q, approved, postID))
}
