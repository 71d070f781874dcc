// File path: internal/sqlite/content.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/parentys/platform/internal/catalog"
)

// ListWorkshops returns all workshops, soonest first, drafts last.
func (s *Store) ListWorkshops(ctx context.Context) ([]catalog.Workshop, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []workshopRow{}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM workshops ORDER BY starts_at IS NULL, starts_at, id`); err != nil {
		return nil, fmt.Errorf("select workshops: %w", err)
	}
	workshops := make([]catalog.Workshop, 0, len(rows))
	for _, row := range rows {
		workshops = append(workshops, mapWorkshop(row))
	}
	return workshops, nil
}

// WorkshopByID retrieves a single workshop.
func (s *Store) WorkshopByID(ctx context.Context, id string) (*catalog.Workshop, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var row workshopRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM workshops WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("select workshop: %w", err)
	}
	workshop := mapWorkshop(row)
	return &workshop, nil
}

// UpsertWorkshop inserts or updates a workshop row.
func (s *Store) UpsertWorkshop(ctx context.Context, workshop *catalog.Workshop) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if workshop == nil || strings.TrimSpace(workshop.ID) == "" {
		return errors.New("workshop id required")
	}
	status := workshop.Status
	if status == "" {
		status = "draft"
	}
	currency := workshop.Currency
	if currency == "" {
		currency = "MAD"
	}
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO workshops (
                        id, slug, status, price_cents, currency, starts_at,
                        duration, age_range, difficulty, banner_url, video_url,
                        title_en, title_fr, title_ar,
                        description_en, description_fr, description_ar,
                        short_description_en, short_description_fr, short_description_ar
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(id) DO UPDATE SET
                        slug = excluded.slug,
                        status = excluded.status,
                        price_cents = excluded.price_cents,
                        currency = excluded.currency,
                        starts_at = excluded.starts_at,
                        duration = excluded.duration,
                        age_range = excluded.age_range,
                        difficulty = excluded.difficulty,
                        banner_url = excluded.banner_url,
                        video_url = excluded.video_url,
                        title_en = excluded.title_en,
                        title_fr = excluded.title_fr,
                        title_ar = excluded.title_ar,
                        description_en = excluded.description_en,
                        description_fr = excluded.description_fr,
                        description_ar = excluded.description_ar,
                        short_description_en = excluded.short_description_en,
                        short_description_fr = excluded.short_description_fr,
                        short_description_ar = excluded.short_description_ar,
                        updated_at = CURRENT_TIMESTAMP`,
		workshop.ID, nullable(workshop.Slug), status, workshop.PriceCents, currency,
		nullableTime(workshop.StartsAt),
		nullable(workshop.Duration), nullable(workshop.AgeRange), nullable(workshop.Difficulty),
		nullable(workshop.BannerURL), nullable(workshop.VideoURL),
		nullable(workshop.Text.Get("title_en")),
		nullable(workshop.Text.Get("title_fr")),
		nullable(workshop.Text.Get("title_ar")),
		nullable(workshop.Text.Get("description_en")),
		nullable(workshop.Text.Get("description_fr")),
		nullable(workshop.Text.Get("description_ar")),
		nullable(workshop.Text.Get("short_description_en")),
		nullable(workshop.Text.Get("short_description_fr")),
		nullable(workshop.Text.Get("short_description_ar")),
	)
	if err != nil {
		return fmt.Errorf("upsert workshop: %w", err)
	}
	return nil
}

// DeleteWorkshop removes a workshop.
func (s *Store) DeleteWorkshop(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "workshops", id, catalog.ErrNotFound)
}

// ListExperts returns all expert profiles.
func (s *Store) ListExperts(ctx context.Context) ([]catalog.Expert, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []expertRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM experts ORDER BY full_name, id`); err != nil {
		return nil, fmt.Errorf("select experts: %w", err)
	}
	experts := make([]catalog.Expert, 0, len(rows))
	for _, row := range rows {
		experts = append(experts, mapExpert(row))
	}
	return experts, nil
}

// ExpertByID retrieves a single expert profile.
func (s *Store) ExpertByID(ctx context.Context, id string) (*catalog.Expert, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var row expertRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM experts WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("select expert: %w", err)
	}
	expert := mapExpert(row)
	return &expert, nil
}

// UpsertExpert inserts or updates an expert profile.
func (s *Store) UpsertExpert(ctx context.Context, expert *catalog.Expert) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if expert == nil || strings.TrimSpace(expert.ID) == "" {
		return errors.New("expert id required")
	}
	if strings.TrimSpace(expert.FullName) == "" {
		return errors.New("expert full name required")
	}
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO experts (
                        id, user_id, full_name, avatar_url,
                        headline_en, headline_fr, headline_ar,
                        bio_en, bio_fr, bio_ar
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(id) DO UPDATE SET
                        user_id = excluded.user_id,
                        full_name = excluded.full_name,
                        avatar_url = excluded.avatar_url,
                        headline_en = excluded.headline_en,
                        headline_fr = excluded.headline_fr,
                        headline_ar = excluded.headline_ar,
                        bio_en = excluded.bio_en,
                        bio_fr = excluded.bio_fr,
                        bio_ar = excluded.bio_ar,
                        updated_at = CURRENT_TIMESTAMP`,
		expert.ID, nullable(expert.UserID), expert.FullName, nullable(expert.AvatarURL),
		nullable(expert.Text.Get("headline_en")),
		nullable(expert.Text.Get("headline_fr")),
		nullable(expert.Text.Get("headline_ar")),
		nullable(expert.Text.Get("bio_en")),
		nullable(expert.Text.Get("bio_fr")),
		nullable(expert.Text.Get("bio_ar")),
	)
	if err != nil {
		return fmt.Errorf("upsert expert: %w", err)
	}
	return nil
}

// DeleteExpert removes an expert profile.
func (s *Store) DeleteExpert(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "experts", id, catalog.ErrNotFound)
}

// ListCategories returns categories in display order.
func (s *Store) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []categoryRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM categories ORDER BY order_index, slug`); err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	categories := make([]catalog.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, mapCategory(row))
	}
	return categories, nil
}

// UpsertCategory inserts or updates a category.
func (s *Store) UpsertCategory(ctx context.Context, category *catalog.Category) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if category == nil || strings.TrimSpace(category.ID) == "" {
		return errors.New("category id required")
	}
	if strings.TrimSpace(category.Slug) == "" {
		return errors.New("category slug required")
	}
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO categories (
                        id, slug, order_index, label, label_en, label_fr, label_ar,
                        description_en, description_fr, description_ar
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(id) DO UPDATE SET
                        slug = excluded.slug,
                        order_index = excluded.order_index,
                        label = excluded.label,
                        label_en = excluded.label_en,
                        label_fr = excluded.label_fr,
                        label_ar = excluded.label_ar,
                        description_en = excluded.description_en,
                        description_fr = excluded.description_fr,
                        description_ar = excluded.description_ar`,
		category.ID, category.Slug, category.OrderIndex,
		nullable(category.Text.Get("label")),
		nullable(category.Text.Get("label_en")),
		nullable(category.Text.Get("label_fr")),
		nullable(category.Text.Get("label_ar")),
		nullable(category.Text.Get("description_en")),
		nullable(category.Text.Get("description_fr")),
		nullable(category.Text.Get("description_ar")),
	)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// DeleteCategory removes a category.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "categories", id, catalog.ErrNotFound)
}

// ConfigByKey retrieves a page configuration blob.
func (s *Store) ConfigByKey(ctx context.Context, key string) (*catalog.ConfigEntry, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var row configRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM app_config WHERE config_key = ?`, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("select config: %w", err)
	}
	entry := mapConfig(row)
	return &entry, nil
}

// PutConfig stores a page configuration blob, replacing any existing value
// for the key.
func (s *Store) PutConfig(ctx context.Context, entry *catalog.ConfigEntry) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if entry == nil || strings.TrimSpace(entry.Key) == "" {
		return errors.New("config key required")
	}
	if len(entry.Value) == 0 {
		return errors.New("config value required")
	}
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO app_config (config_key, config_value, updated_at)
                VALUES (?, ?, CURRENT_TIMESTAMP)
                ON CONFLICT(config_key) DO UPDATE SET
                        config_value = excluded.config_value,
                        updated_at = CURRENT_TIMESTAMP`,
		entry.Key, string(entry.Value))
	if err != nil {
		return fmt.Errorf("upsert config: %w", err)
	}
	return nil
}

// UserByID retrieves a user account.
func (s *Store) UserByID(ctx context.Context, id string) (*catalog.User, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, catalog.ErrNotFound
	}
	var row userRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	user := mapUser(row)
	return &user, nil
}

// UpsertUser inserts or updates a user account. Accounts are provisioned by
// the external auth provider; this keeps the local role mirror current.
func (s *Store) UpsertUser(ctx context.Context, user *catalog.User) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if user == nil || strings.TrimSpace(user.ID) == "" {
		return errors.New("user id required")
	}
	role := user.Role
	if role == "" {
		role = "parent"
	}
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO users (id, email, full_name, role)
                VALUES (?, ?, ?, ?)
                ON CONFLICT(id) DO UPDATE SET
                        email = excluded.email,
                        full_name = excluded.full_name,
                        role = excluded.role`,
		user.ID, user.Email, nullable(user.FullName), role)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
