package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/api"
	"github.com/example/travelon/internal/platform/auth"
)

// Signup handles POST /v1/auth/signup.
func Signup(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in SignupInput
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			api.BadRequest(w, "INVALID_BODY", "Request body must be valid JSON", "", nil)
			return
		}

		u, err := s.Signup(r.Context(), in)
		if err != nil {
			writeAccountsError(w, err)
			return
		}
		api.Created(w, u)
	}
}

// Login handles POST /v1/auth/login.
func Login(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_BODY", "Request body must be valid JSON", "", nil)
			return
		}

		u, pair, err := s.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeAccountsError(w, err)
			return
		}
		api.OK(w, map[string]any{"user": u, "tokens": pair})
	}
}

// Refresh handles POST /v1/auth/refresh.
func Refresh(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
			api.BadRequest(w, "INVALID_BODY", "refresh_token is required", "", nil)
			return
		}

		pair, err := s.Refresh(r.Context(), req.RefreshToken)
		if err != nil {
			writeAccountsError(w, err)
			return
		}
		api.OK(w, pair)
	}
}

// Me handles GET /v1/auth/me.
func Me(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			api.Unauthorized(w, "UNAUTHENTICATED", "Sign in first", "")
			return
		}
		u, err := s.Me(r.Context(), userID)
		if err != nil {
			writeAccountsError(w, err)
			return
		}
		api.OK(w, u)
	}
}

func writeAccountsError(w http.ResponseWriter, err error) {
	var verr *engagement.ValidationError
	switch {
	case errors.As(err, &verr):
		api.BadRequest(w, "VALIDATION", "Invalid input", "", verr.Details())
	case errors.Is(err, ErrEmailTaken):
		api.Conflict(w, "DUPLICATE_EMAIL", "An account with this email already exists", "", nil)
	case errors.Is(err, ErrInvalidCredentials):
		api.Unauthorized(w, "INVALID_CREDENTIALS", "Invalid email or password", "")
	case errors.Is(err, ErrNotFound):
		api.NotFound(w, "NOT_FOUND", "User not found", "")
	default:
		api.Internal(w, "")
	}
}
