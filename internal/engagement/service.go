package engagement

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/travelon/internal/platform/events"
)

// Service orchestrates review writes, vote transitions and summary
// recomputation. It is the only code path allowed to touch the denormalized
// rating fields on rated entities.
type Service struct {
	Reviews  ReviewStore
	Entities EntityStore
	Events   *events.Publisher
	Log      *zap.Logger
}

// SubmitReviewInput is the caller-supplied part of a new review.
type SubmitReviewInput struct {
	EntityType EntityType
	EntityID   string
	UserID     string
	Rating     int
	Title      string
	Comment    string
}

// SubmitReview validates the input, creates the review (pending moderation)
// and recomputes the entity's summary in the same logical operation. The
// recompute never runs when the create fails.
func (s *Service) SubmitReview(ctx context.Context, in SubmitReviewInput) (Review, error) {
	if err := ValidateReview(in.Rating, in.Title, in.Comment); err != nil {
		return Review{}, err
	}

	ok, err := s.Entities.EntityExists(ctx, in.EntityType, in.EntityID)
	if err != nil {
		return Review{}, fmt.Errorf("entity lookup: %w", err)
	}
	if !ok {
		return Review{}, ErrNotFound
	}

	r, err := s.Reviews.Create(ctx, Review{
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		UserID:     in.UserID,
		Rating:     in.Rating,
		Title:      in.Title,
		Comment:    in.Comment,
		IsApproved: false, // admin moderation
	})
	if err != nil {
		return Review{}, fmt.Errorf("create review: %w", err)
	}

	if _, err := s.Recompute(ctx, in.EntityType, in.EntityID); err != nil {
		return Review{}, err
	}

	s.Events.Publish(events.SubjectReviewCreated, "review.created", in.UserID, map[string]any{
		"review_id":   r.ID,
		"entity_type": string(r.EntityType),
		"entity_id":   r.EntityID,
		"rating":      r.Rating,
	})
	return r, nil
}

// ApproveReview flips the moderation flag and recomputes the entity summary,
// since approval is what admits a review into the rating set.
func (s *Service) ApproveReview(ctx context.Context, reviewID string, approved bool) (Review, error) {
	r, err := s.Reviews.SetApproved(ctx, reviewID, approved)
	if err != nil {
		return Review{}, err
	}
	if _, err := s.Recompute(ctx, r.EntityType, r.EntityID); err != nil {
		return Review{}, err
	}
	s.Events.Publish(events.SubjectReviewApproved, "review.approved", r.UserID, map[string]any{
		"review_id": r.ID,
		"approved":  approved,
	})
	return r, nil
}

// ListReviews returns the approved, visible reviews for an entity, newest
// first. Missing entity yields ErrNotFound.
func (s *Service) ListReviews(ctx context.Context, et EntityType, entityID string) ([]Review, error) {
	ok, err := s.Entities.EntityExists(ctx, et, entityID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.Reviews.ListByEntity(ctx, et, entityID)
}

// VoteReview applies a helpful up/down vote with toggle semantics and returns
// the review's counters.
func (s *Service) VoteReview(ctx context.Context, reviewID, userID string, dir Direction) (VoteCounts, error) {
	counts, err := s.Reviews.ToggleVote(ctx, reviewID, userID, dir)
	if err != nil {
		return VoteCounts{}, err
	}
	s.Events.Publish(events.SubjectReviewVoted, "review.voted", userID, map[string]any{
		"review_id": reviewID,
		"direction": string(dir),
	})
	return counts, nil
}

// Recompute fetches the approved rating set for the entity and persists its
// summary. Guarantees the entity's fields reflect exactly the set fetched at
// call time. ErrNotFound when the entity does not exist.
func (s *Service) Recompute(ctx context.Context, et EntityType, entityID string) (Summary, error) {
	ok, err := s.Entities.EntityExists(ctx, et, entityID)
	if err != nil {
		return Summary{}, err
	}
	if !ok {
		return Summary{}, ErrNotFound
	}

	ratings, err := s.Reviews.ApprovedRatings(ctx, et, entityID)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch ratings: %w", err)
	}
	sum := Summarize(ratings)
	if err := s.Entities.SetRatingSummary(ctx, et, entityID, sum); err != nil {
		return Summary{}, fmt.Errorf("persist summary: %w", err)
	}
	if s.Log != nil {
		s.Log.Debug("rating summary recomputed",
			zap.String("entity_type", string(et)),
			zap.String("entity_id", entityID),
			zap.Float64("rating", sum.Rating),
			zap.Int("review_count", sum.ReviewCount))
	}
	return sum, nil
}
