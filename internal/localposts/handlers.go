package localposts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/api"
	"github.com/example/travelon/internal/platform/auth"
)

// CreatePost handles POST /v1/local-posts (role=local, gated at the router).
func CreatePost(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in to post", "")
			return
		}

		var req struct {
			City       string     `json:"city"`
			PostType   PostType   `json:"post_type"`
			Title      string     `json:"title"`
			Content    string     `json:"content"`
			Tags       []string   `json:"tags"`
			Visibility Visibility `json:"visibility"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_BODY", "Request body must be valid JSON", "", nil)
			return
		}

		post, err := s.CreatePost(r.Context(), Post{
			UserID:     userID,
			City:       req.City,
			PostType:   req.PostType,
			Title:      req.Title,
			Content:    req.Content,
			Tags:       req.Tags,
			Visibility: req.Visibility,
		})
		if err != nil {
			writePostError(w, err)
			return
		}
		api.Created(w, post)
	}
}

// ListPosts handles GET /v1/local-posts with city/postType/tag filters.
func ListPosts(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := Filter{
			City:     r.URL.Query().Get("city"),
			PostType: PostType(r.URL.Query().Get("postType")),
			Tag:      r.URL.Query().Get("tag"),
		}
		if f.PostType != "" && !f.PostType.Valid() {
			api.BadRequest(w, "INVALID_POST_TYPE", "unknown post type", "", nil)
			return
		}

		posts, err := s.ListPosts(r.Context(), f)
		if err != nil {
			writePostError(w, err)
			return
		}
		api.List(w, len(posts), posts)
	}
}

func GetPost(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := s.GetPost(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writePostError(w, err)
			return
		}
		api.OK(w, post)
	}
}

// VotePost handles POST /v1/local-posts/{id}/upvote and /downvote.
func VotePost(s *Service, dir engagement.Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in to vote", "")
			return
		}

		counts, err := s.VotePost(r.Context(), chi.URLParam(r, "id"), userID, dir)
		if err != nil {
			writePostError(w, err)
			return
		}
		api.OK(w, counts)
	}
}

// AddComment handles POST /v1/local-posts/{id}/comments.
func AddComment(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in to comment", "")
			return
		}

		var req struct {
			Comment string `json:"comment"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_BODY", "Request body must be valid JSON", "", nil)
			return
		}

		c, err := s.AddComment(r.Context(), chi.URLParam(r, "id"), userID, req.Comment)
		if err != nil {
			writePostError(w, err)
			return
		}
		api.Created(w, c)
	}
}

// FlagPost handles POST /v1/local-posts/{id}/flag.
func FlagPost(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in to report a post", "")
			return
		}

		var req struct {
			Reason string `json:"reason"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		// Body is optional; a bare flag is allowed.
		_ = json.NewDecoder(r.Body).Decode(&req)

		count, err := s.FlagPost(r.Context(), chi.URLParam(r, "id"), userID, req.Reason)
		if err != nil {
			writePostError(w, err)
			return
		}
		api.OK(w, map[string]int{"flag_count": count})
	}
}

// ApprovePost handles PUT /v1/local-posts/{id}/approve (admin only).
func ApprovePost(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := s.ApprovePost(r.Context(), chi.URLParam(r, "id"), true)
		if err != nil {
			writePostError(w, err)
			return
		}
		api.OK(w, post)
	}
}

func writePostError(w http.ResponseWriter, err error) {
	var verr *engagement.ValidationError
	switch {
	case errors.As(err, &verr):
		api.BadRequest(w, "VALIDATION", "Invalid post", "", verr.Details())
	case errors.Is(err, engagement.ErrNotFound):
		api.NotFound(w, "NOT_FOUND", "Post not found", "")
	default:
		api.Internal(w, "")
	}
}
