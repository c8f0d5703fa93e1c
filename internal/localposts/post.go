package localposts

import (
	"strings"
	"time"

	"github.com/example/travelon/internal/engagement"
)

// PostType classifies a local tip.
type PostType string

const (
	TypeTip            PostType = "Tip"
	TypeScamAlert      PostType = "Scam Alert"
	TypeHiddenPlace    PostType = "Hidden Place"
	TypeEvent          PostType = "Event"
	TypeRecommendation PostType = "Recommendation"
)

func (t PostType) Valid() bool {
	switch t {
	case TypeTip, TypeScamAlert, TypeHiddenPlace, TypeEvent, TypeRecommendation:
		return true
	}
	return false
}

type Visibility string

const (
	VisibilityPublic     Visibility = "Public"
	VisibilityLocalsOnly Visibility = "Locals Only"
)

// Comment is an append-only entry on a post. The author's display fields are
// denormalized at write time.
type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	UserAvatar string    `json:"user_avatar,omitempty"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type Flag struct {
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Engagement holds a post's vote counters and comments. The voter ledger is
// store-internal; counters always equal its tallies.
type Engagement struct {
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	Comments  []Comment `json:"comments"`
}

type Post struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	City       string     `json:"city"`
	PostType   PostType   `json:"post_type"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	Engagement Engagement `json:"engagement"`
	IsApproved bool       `json:"is_approved"`
	IsHidden   bool       `json:"is_hidden"`
	FlagCount  int        `json:"flag_count"`
	Visibility Visibility `json:"visibility"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// MinContentLength matches the review comment floor.
const MinContentLength = 20

func ValidatePost(p Post) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.City) == "" {
		fields["city"] = "city is required"
	}
	if !p.PostType.Valid() {
		fields["post_type"] = "must be one of Tip, Scam Alert, Hidden Place, Event, Recommendation"
	}
	if strings.TrimSpace(p.Title) == "" {
		fields["title"] = "title is required"
	}
	if len(strings.TrimSpace(p.Content)) < MinContentLength {
		fields["content"] = "content must be at least 20 characters"
	}
	if p.Visibility != "" && p.Visibility != VisibilityPublic && p.Visibility != VisibilityLocalsOnly {
		fields["visibility"] = "must be Public or Locals Only"
	}
	if len(fields) > 0 {
		return &engagement.ValidationError{Fields: fields}
	}
	return nil
}

// Filter narrows post listings. Zero values mean "no constraint".
type Filter struct {
	City     string
	PostType PostType
	Tag      string
}
