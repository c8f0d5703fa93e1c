package engagement

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// EntityType names the kind of rated entity a review belongs to.
type EntityType string

const (
	EntityHotel      EntityType = "hotel"
	EntityRestaurant EntityType = "restaurant"
	EntityPlace      EntityType = "place"
)

// ParseEntityType normalizes and validates a raw entity type.
func ParseEntityType(raw string) (EntityType, bool) {
	switch EntityType(strings.ToLower(strings.TrimSpace(raw))) {
	case EntityHotel:
		return EntityHotel, true
	case EntityRestaurant:
		return EntityRestaurant, true
	case EntityPlace:
		return EntityPlace, true
	}
	return "", false
}

// VoteCounts is the helpful-vote pair on a review.
type VoteCounts struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
}

// Review is a star rating with text, referencing exactly one rated entity.
// Reviews are immutable once created; moderation only flips approval flags.
type Review struct {
	ID         string     `json:"id"`
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	UserID     string     `json:"user_id"`
	Rating     int        `json:"rating"`
	Title      string     `json:"title"`
	Comment    string     `json:"comment"`
	Helpful    VoteCounts `json:"helpful"`
	IsApproved bool       `json:"is_approved"`
	IsHidden   bool       `json:"is_hidden"`
	CreatedAt  time.Time  `json:"created_at"`
}

// MinCommentLength is the minimum review comment length, in bytes.
const MinCommentLength = 20

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Details exposes the field messages as the error-envelope details map.
func (e *ValidationError) Details() map[string]any {
	out := make(map[string]any, len(e.Fields))
	for k, v := range e.Fields {
		out[k] = v
	}
	return out
}

// ValidateReview checks the caller-supplied review fields. Returns nil or a
// *ValidationError listing every violated field.
func ValidateReview(rating int, title, comment string) error {
	fields := map[string]string{}
	if rating < 1 || rating > 5 {
		fields["rating"] = "rating must be between 1 and 5"
	}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "title is required"
	}
	if len(comment) < MinCommentLength {
		fields["comment"] = fmt.Sprintf("comment must be at least %d characters", MinCommentLength)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
