package engagement

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/travelon/internal/platform/api"
	"github.com/example/travelon/internal/platform/auth"
)

type createReviewRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Rating     int    `json:"rating"`
	Title      string `json:"title"`
	Comment    string `json:"comment"`
}

// CreateReview handles POST /v1/reviews.
func CreateReview(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in to write a review", "")
			return
		}

		var req createReviewRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "Invalid JSON", "", nil)
			return
		}
		et, ok := ParseEntityType(req.EntityType)
		if !ok {
			api.BadRequest(w, "INVALID_ENTITY_TYPE", "entity_type must be hotel, restaurant or place", "", nil)
			return
		}
		if strings.TrimSpace(req.EntityID) == "" {
			api.BadRequest(w, "MISSING_ID", "entity_id is required", "", nil)
			return
		}

		review, err := s.SubmitReview(r.Context(), SubmitReviewInput{
			EntityType: et,
			EntityID:   req.EntityID,
			UserID:     userID,
			Rating:     req.Rating,
			Title:      req.Title,
			Comment:    req.Comment,
		})
		if err != nil {
			writeEngagementError(w, err)
			return
		}
		api.Created(w, review)
	}
}

// GetReviews handles GET /v1/reviews/{entity_type}/{entity_id}.
func GetReviews(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		et, ok := ParseEntityType(chi.URLParam(r, "entity_type"))
		if !ok {
			api.BadRequest(w, "INVALID_ENTITY_TYPE", "entity_type must be hotel, restaurant or place", "", nil)
			return
		}
		entityID := strings.TrimSpace(chi.URLParam(r, "entity_id"))
		if entityID == "" {
			api.BadRequest(w, "MISSING_ID", "entity_id is required", "", nil)
			return
		}

		reviews, err := s.ListReviews(r.Context(), et, entityID)
		if err != nil {
			writeEngagementError(w, err)
			return
		}
		api.List(w, len(reviews), reviews)
	}
}

// VoteReview handles POST /v1/reviews/{id}/upvote and /downvote.
func VoteReview(s *Service, dir Direction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in to vote", "")
			return
		}
		reviewID := strings.TrimSpace(chi.URLParam(r, "id"))
		if reviewID == "" {
			api.BadRequest(w, "MISSING_ID", "review id is required", "", nil)
			return
		}

		counts, err := s.VoteReview(r.Context(), reviewID, userID, dir)
		if err != nil {
			writeEngagementError(w, err)
			return
		}
		api.OK(w, counts)
	}
}

// ApproveReview handles PUT /v1/reviews/{id}/approve (admin only).
func ApproveReview(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviewID := strings.TrimSpace(chi.URLParam(r, "id"))
		if reviewID == "" {
			api.BadRequest(w, "MISSING_ID", "review id is required", "", nil)
			return
		}

		review, err := s.ApproveReview(r.Context(), reviewID, true)
		if err != nil {
			writeEngagementError(w, err)
			return
		}
		api.OK(w, review)
	}
}

func writeEngagementError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		api.BadRequest(w, "VALIDATION", "Invalid review", "", verr.Details())
	case errors.Is(err, ErrNotFound):
		api.NotFound(w, "NOT_FOUND", "Resource not found", "")
	default:
		api.Internal(w, "")
	}
}
