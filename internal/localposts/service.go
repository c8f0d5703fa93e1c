package localposts

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/events"
)

// UserDirectory resolves the display fields denormalized onto comments.
type UserDirectory interface {
	DisplayInfo(ctx context.Context, userID string) (name, avatar string, err error)
}

// Service orchestrates local-post writes and engagement.
type Service struct {
	Posts  Store
	Users  UserDirectory
	Events *events.Publisher
	Log    *zap.Logger
}

// CreatePost validates and stores a new post, pending admin approval. The
// role gate (locals only) sits at the router.
func (s *Service) CreatePost(ctx context.Context, p Post) (Post, error) {
	p.IsApproved = false
	p.IsHidden = false
	p.FlagCount = 0
	if err := ValidatePost(p); err != nil {
		return Post{}, err
	}

	created, err := s.Posts.Create(ctx, p)
	if err != nil {
		return Post{}, err
	}
	s.Events.Publish(events.SubjectPostCreated, "local_post.created", p.UserID, map[string]any{
		"post_id":   created.ID,
		"city":      created.City,
		"post_type": string(created.PostType),
	})
	return created, nil
}

func (s *Service) ListPosts(ctx context.Context, f Filter) ([]Post, error) {
	return s.Posts.List(ctx, f)
}

func (s *Service) GetPost(ctx context.Context, id string) (Post, error) {
	return s.Posts.GetByID(ctx, id)
}

// VotePost applies an up/down vote with toggle semantics.
func (s *Service) VotePost(ctx context.Context, postID, userID string, dir engagement.Direction) (engagement.VoteCounts, error) {
	counts, err := s.Posts.ToggleVote(ctx, postID, userID, dir)
	if err != nil {
		return engagement.VoteCounts{}, err
	}
	s.Events.Publish(events.SubjectPostVoted, "local_post.voted", userID, map[string]any{
		"post_id":   postID,
		"direction": string(dir),
	})
	return counts, nil
}

// AddComment appends a comment, denormalizing the author's display fields.
func (s *Service) AddComment(ctx context.Context, postID, userID, text string) (Comment, error) {
	if strings.TrimSpace(text) == "" {
		return Comment{}, &engagement.ValidationError{Fields: map[string]string{"comment": "comment is required"}}
	}

	c := Comment{UserID: userID, Comment: text}
	if s.Users != nil {
		name, avatar, err := s.Users.DisplayInfo(ctx, userID)
		if err == nil {
			c.UserName, c.UserAvatar = name, avatar
		}
	}

	out, err := s.Posts.AddComment(ctx, postID, c)
	if err != nil {
		return Comment{}, err
	}
	s.Events.Publish(events.SubjectPostCommented, "local_post.commented", userID, map[string]any{
		"post_id":    postID,
		"comment_id": out.ID,
	})
	return out, nil
}

// FlagPost records a report against a post and returns the running count.
func (s *Service) FlagPost(ctx context.Context, postID, userID, reason string) (int, error) {
	return s.Posts.AddFlag(ctx, postID, Flag{UserID: userID, Reason: reason})
}

// ApprovePost flips the moderation flag (admin only, gated at the router).
func (s *Service) ApprovePost(ctx context.Context, postID string, approved bool) (Post, error) {
	return s.Posts.SetApproved(ctx, postID, approved)
}
