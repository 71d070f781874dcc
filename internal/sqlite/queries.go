// File path: internal/sqlite/queries.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/parentys/platform/internal/quickpath"
)

// StepByID retrieves a single decision tree step.
func (s *Store) StepByID(ctx context.Context, id string) (*quickpath.Step, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, quickpath.ErrNotFound
	}
	var row stepRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM quickpath_steps WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, quickpath.ErrNotFound
		}
		return nil, fmt.Errorf("select step: %w", err)
	}
	step := mapStep(row)
	return &step, nil
}

// AnswersForStep returns the answers attached to a step in display order.
func (s *Store) AnswersForStep(ctx context.Context, stepID string) ([]quickpath.Answer, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []answerRow{}
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM quickpath_answers WHERE step_id = ? ORDER BY order_index, id`, stepID); err != nil {
		return nil, fmt.Errorf("select answers: %w", err)
	}
	answers := make([]quickpath.Answer, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, mapAnswer(row))
	}
	return answers, nil
}

// AnswerByID retrieves a single answer.
func (s *Store) AnswerByID(ctx context.Context, id string) (*quickpath.Answer, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, quickpath.ErrNotFound
	}
	var row answerRow
	if err := s.db.GetContext(ctx, &row, `SELECT * FROM quickpath_answers WHERE id = ?`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, quickpath.ErrNotFound
		}
		return nil, fmt.Errorf("select answer: %w", err)
	}
	answer := mapAnswer(row)
	return &answer, nil
}

// RuleForPivots returns the first rule matching the (issue, age) answer pair,
// or nil when none exists. The schema enforces at most one per pair; ordering
// by created_at keeps first-match behaviour deterministic for legacy data.
func (s *Store) RuleForPivots(ctx context.Context, issueAnswerID, ageAnswerID string) (*quickpath.Rule, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	var row ruleRow
	err := s.db.GetContext(ctx, &row,
		`SELECT * FROM quickpath_recommendation_rules
                 WHERE issue_answer_id = ? AND age_answer_id = ?
                 ORDER BY created_at, id LIMIT 1`, issueAnswerID, ageAnswerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select rule: %w", err)
	}
	rule := mapRule(row)
	return &rule, nil
}

// WorkshopRefs returns id + localized title fields for the given workshop
// ids. Unknown ids are silently skipped.
func (s *Store) WorkshopRefs(ctx context.Context, ids []string) ([]quickpath.WorkshopRef, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT id, title_en, title_fr, title_ar FROM workshops WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build workshop query: %w", err)
	}
	query = s.db.Rebind(query)
	rows := []struct {
		ID      string         `db:"id"`
		TitleEN sql.NullString `db:"title_en"`
		TitleFR sql.NullString `db:"title_fr"`
		TitleAR sql.NullString `db:"title_ar"`
	}{}
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select workshop refs: %w", err)
	}
	refs := make([]quickpath.WorkshopRef, 0, len(rows))
	for _, row := range rows {
		fields := make(map[string]string, 3)
		putField(fields, "title_en", row.TitleEN)
		putField(fields, "title_fr", row.TitleFR)
		putField(fields, "title_ar", row.TitleAR)
		refs = append(refs, quickpath.WorkshopRef{ID: row.ID, Text: fields})
	}
	return refs, nil
}
