// File path: internal/catalog/types.go

// Package catalog defines the site content entities managed through the
// admin back office and read by the public pages: workshops, experts,
// categories, page configuration blobs, and user accounts.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/parentys/platform/internal/i18n"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("catalog: not found")
)

// Workshop is a bookable parenting workshop.
type Workshop struct {
	ID         string      `json:"id"`
	Slug       string      `json:"slug,omitempty"`
	Status     string      `json:"status,omitempty"`
	PriceCents int64       `json:"price_cents,omitempty"`
	Currency   string      `json:"currency,omitempty"`
	StartsAt   *time.Time  `json:"starts_at,omitempty"`
	Duration   string      `json:"duration,omitempty"`
	AgeRange   string      `json:"age_range,omitempty"`
	Difficulty string      `json:"difficulty,omitempty"`
	BannerURL  string      `json:"banner_url,omitempty"`
	VideoURL   string      `json:"video_url,omitempty"`
	Text       i18n.Fields `json:"text"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Expert is a professional profiled on the site.
type Expert struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id,omitempty"`
	FullName  string      `json:"full_name"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	Text      i18n.Fields `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Category groups workshops by parenting topic. OrderIndex drives display
// order.
type Category struct {
	ID         string      `json:"id"`
	Slug       string      `json:"slug"`
	OrderIndex int         `json:"order_index"`
	Text       i18n.Fields `json:"text"`
	CreatedAt  time.Time   `json:"created_at"`
}

// ConfigEntry is a JSON blob keyed by page name (homepage, about_page)
// holding editor-managed copy and assets.
type ConfigEntry struct {
	Key       string          `json:"config_key"`
	Value     json.RawMessage `json:"config_value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// User is an authenticated account. The admin back office requires
// Role == "admin".
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may access the back office.
func (u User) IsAdmin() bool {
	return u.Role == "admin"
}

// Store is the content read/write surface. Reads serve the public site;
// writes serve the admin screens.
type Store interface {
	ListWorkshops(ctx context.Context) ([]Workshop, error)
	WorkshopByID(ctx context.Context, id string) (*Workshop, error)
	UpsertWorkshop(ctx context.Context, workshop *Workshop) error
	DeleteWorkshop(ctx context.Context, id string) error

	ListExperts(ctx context.Context) ([]Expert, error)
	ExpertByID(ctx context.Context, id string) (*Expert, error)
	UpsertExpert(ctx context.Context, expert *Expert) error
	DeleteExpert(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]Category, error)
	UpsertCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id string) error

	ConfigByKey(ctx context.Context, key string) (*ConfigEntry, error)
	PutConfig(ctx context.Context, entry *ConfigEntry) error

	UserByID(ctx context.Context, id string) (*User, error)
}
