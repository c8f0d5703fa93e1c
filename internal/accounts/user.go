package accounts

import (
	"strings"
	"time"

	"github.com/example/travelon/internal/engagement"
	"github.com/example/travelon/internal/platform/auth"
)

type User struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Avatar       string     `json:"avatar,omitempty"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// SignupInput is the caller-supplied part of a new account. Role may be
// tourist or local; admin accounts are provisioned out of band.
type SignupInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

const minPasswordLength = 8

func (in *SignupInput) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(in.FirstName) == "" {
		fields["first_name"] = "first name is required"
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(in.Password) < minPasswordLength {
		fields["password"] = "password must be at least 8 characters"
	}
	switch in.Role {
	case "":
		in.Role = auth.RoleTourist
	case auth.RoleTourist, auth.RoleLocal:
	default:
		fields["role"] = "role must be tourist or local"
	}
	if len(fields) > 0 {
		return &engagement.ValidationError{Fields: fields}
	}
	return nil
}
