package engagement

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a review or rated entity id does not resolve.
var ErrNotFound = errors.New("not found")

// ReviewStore is the contract for review persistence.
type ReviewStore interface {
	Create(ctx context.Context, r Review) (Review, error)
	GetByID(ctx context.Context, id string) (Review, error)
	// ListByEntity returns approved, non-hidden reviews, newest first.
	ListByEntity(ctx context.Context, et EntityType, entityID string) ([]Review, error)
	// ApprovedRatings returns the star values of every approved, non-hidden
	// review for the entity. This is the input set for Summarize.
	ApprovedRatings(ctx context.Context, et EntityType, entityID string) ([]int, error)
	SetApproved(ctx context.Context, id string, approved bool) (Review, error)
	// ToggleVote applies the one-vote-per-user transition to the review's
	// helpful ledger atomically and returns the resulting counters.
	ToggleVote(ctx context.Context, reviewID, userID string, dir Direction) (VoteCounts, error)
}

// EntityStore is the write gateway to the denormalized rating summary on
// hotels, restaurants and places. Nothing outside the engagement service may
// mutate those fields.
type EntityStore interface {
	EntityExists(ctx context.Context, et EntityType, id string) (bool, error)
	SetRatingSummary(ctx context.Context, et EntityType, id string, s Summary) error
}
