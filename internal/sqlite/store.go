// File path: internal/sqlite/store.go

// Package sqlite implements the platform catalog over a SQLite database:
// the QuickPath decision tree, the content entities, page configuration,
// and user accounts.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store wraps a pooled sqlx.DB connection to the SQLite catalog.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store backed by the SQLite database at the provided path.
// The schema is migrated on first use.
func Open(path string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		cfg.Path = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path required")
	}
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	busy := int(cfg.BusyTimeout / time.Millisecond)
	if busy <= 0 {
		busy = 5000
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", abs, busy)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingTimeout := cfg.BusyTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying sqlx.DB for advanced callers.
func (s *Store) DB() *sqlx.DB {
	if s == nil {
		return nil
	}
	return s.db
}

var errNilStore = errors.New("sqlite store not initialised")

func (s *Store) ensureReady() error {
	if s == nil || s.db == nil {
		return errNilStore
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

var schemaStatements = []string{
	`PRAGMA journal_mode = WAL;`,
	`PRAGMA foreign_keys = ON;`,
	`CREATE TABLE IF NOT EXISTS quickpath_steps (
                id TEXT PRIMARY KEY,
                role TEXT NOT NULL DEFAULT 'generic',
                question TEXT,
                question_en TEXT,
                question_fr TEXT,
                question_ar TEXT,
                description_en TEXT,
                description_fr TEXT,
                description_ar TEXT,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS quickpath_answers (
                id TEXT PRIMARY KEY,
                step_id TEXT NOT NULL,
                next_step_id TEXT,
                order_index INTEGER NOT NULL DEFAULT 0,
                label TEXT,
                label_en TEXT,
                label_fr TEXT,
                label_ar TEXT,
                recommendation_en TEXT,
                recommendation_fr TEXT,
                recommendation_ar TEXT,
                action_plan_en TEXT,
                action_plan_fr TEXT,
                action_plan_ar TEXT,
                example_en TEXT,
                example_fr TEXT,
                example_ar TEXT,
                recommended_workshop_ids TEXT,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                FOREIGN KEY(step_id) REFERENCES quickpath_steps(id) ON DELETE CASCADE
        );`,
	`CREATE TABLE IF NOT EXISTS quickpath_recommendation_rules (
                id TEXT PRIMARY KEY,
                issue_answer_id TEXT NOT NULL,
                age_answer_id TEXT NOT NULL,
                recommendation_en TEXT,
                recommendation_fr TEXT,
                recommendation_ar TEXT,
                action_plan_en TEXT,
                action_plan_fr TEXT,
                action_plan_ar TEXT,
                example_en TEXT,
                example_fr TEXT,
                example_ar TEXT,
                workshop_ids TEXT,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                UNIQUE(issue_answer_id, age_answer_id)
        );`,
	`CREATE TABLE IF NOT EXISTS workshops (
                id TEXT PRIMARY KEY,
                slug TEXT UNIQUE,
                status TEXT NOT NULL DEFAULT 'draft',
                price_cents INTEGER NOT NULL DEFAULT 0,
                currency TEXT NOT NULL DEFAULT 'MAD',
                starts_at DATETIME,
                duration TEXT,
                age_range TEXT,
                difficulty TEXT,
                banner_url TEXT,
                video_url TEXT,
                title_en TEXT,
                title_fr TEXT,
                title_ar TEXT,
                description_en TEXT,
                description_fr TEXT,
                description_ar TEXT,
                short_description_en TEXT,
                short_description_fr TEXT,
                short_description_ar TEXT,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS experts (
                id TEXT PRIMARY KEY,
                user_id TEXT,
                full_name TEXT NOT NULL,
                avatar_url TEXT,
                headline_en TEXT,
                headline_fr TEXT,
                headline_ar TEXT,
                bio_en TEXT,
                bio_fr TEXT,
                bio_ar TEXT,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
                updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS categories (
                id TEXT PRIMARY KEY,
                slug TEXT NOT NULL UNIQUE,
                order_index INTEGER NOT NULL DEFAULT 0,
                label TEXT,
                label_en TEXT,
                label_fr TEXT,
                label_ar TEXT,
                description_en TEXT,
                description_fr TEXT,
                description_ar TEXT,
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS app_config (
                config_key TEXT PRIMARY KEY,
                config_value TEXT NOT NULL,
                updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE TABLE IF NOT EXISTS users (
                id TEXT PRIMARY KEY,
                email TEXT NOT NULL UNIQUE,
                full_name TEXT,
                role TEXT NOT NULL DEFAULT 'parent',
                created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
        );`,
	`CREATE INDEX IF NOT EXISTS idx_answers_step ON quickpath_answers(step_id, order_index);`,
	`CREATE INDEX IF NOT EXISTS idx_answers_next_step ON quickpath_answers(next_step_id);`,
	`CREATE INDEX IF NOT EXISTS idx_rules_pair ON quickpath_recommendation_rules(issue_answer_id, age_answer_id);`,
	`CREATE INDEX IF NOT EXISTS idx_workshops_status_starts ON workshops(status, starts_at);`,
	`CREATE INDEX IF NOT EXISTS idx_categories_order ON categories(order_index);`,
	`CREATE INDEX IF NOT EXISTS idx_experts_user ON experts(user_id);`,
}
