package localposts

import (
	"context"

	"github.com/example/travelon/internal/engagement"
)

// Store is the local-post persistence surface. Vote toggling reuses the same
// transition semantics as review helpful votes.
type Store interface {
	Create(ctx context.Context, p Post) (Post, error)
	GetByID(ctx context.Context, id string) (Post, error)
	List(ctx context.Context, f Filter) ([]Post, error)
	ToggleVote(ctx context.Context, postID, userID string, dir engagement.Direction) (engagement.VoteCounts, error)
	AddComment(ctx context.Context, postID string, c Comment) (Comment, error)
	AddFlag(ctx context.Context, postID string, f Flag) (int, error)
	SetApproved(ctx context.Context, postID string, approved bool) (Post, error)
}
