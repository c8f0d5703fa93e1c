package auth

import (
	"net/http"
	"strings"

	"github.com/example/travelon/internal/platform/api"
)

// Role names used across the platform.
const (
	RoleTourist = "tourist"
	RoleLocal   = "local"
	RoleAdmin   = "admin"
)

// RequireRole allows the request only if RequireUser already injected the
// given role into context. Admins pass every role gate.
func RequireRole(role string) func(next http.Handler) http.Handler {
	want := strings.ToLower(strings.TrimSpace(role))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ := RoleFromContext(r.Context())
			got = strings.ToLower(strings.TrimSpace(got))
			if got != want && got != RoleAdmin {
				api.Forbidden(w, "FORBIDDEN", "Insufficient role", "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin allows the request only for role=admin.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(RoleAdmin)(next)
}
