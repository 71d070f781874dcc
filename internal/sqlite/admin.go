// File path: internal/sqlite/admin.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/parentys/platform/internal/quickpath"
)

// ListSteps returns every decision tree step for the admin screens.
func (s *Store) ListSteps(ctx context.Context) ([]quickpath.Step, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []stepRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM quickpath_steps ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("select steps: %w", err)
	}
	steps := make([]quickpath.Step, 0, len(rows))
	for _, row := range rows {
		steps = append(steps, mapStep(row))
	}
	return steps, nil
}

// ListAnswers returns every answer for the admin screens.
func (s *Store) ListAnswers(ctx context.Context) ([]quickpath.Answer, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []answerRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM quickpath_answers ORDER BY step_id, order_index, id`); err != nil {
		return nil, fmt.Errorf("select answers: %w", err)
	}
	answers := make([]quickpath.Answer, 0, len(rows))
	for _, row := range rows {
		answers = append(answers, mapAnswer(row))
	}
	return answers, nil
}

// ListRules returns every recommendation rule for the admin screens.
func (s *Store) ListRules(ctx context.Context) ([]quickpath.Rule, error) {
	if err := s.ensureReady(); err != nil {
		return nil, err
	}
	rows := []ruleRow{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM quickpath_recommendation_rules ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("select rules: %w", err)
	}
	rules := make([]quickpath.Rule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, mapRule(row))
	}
	return rules, nil
}

// UpsertStep inserts or updates a step.
func (s *Store) UpsertStep(ctx context.Context, step *quickpath.Step) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if step == nil || strings.TrimSpace(step.ID) == "" {
		return errors.New("step id required")
	}
	role := step.Role
	if role != quickpath.RoleIssue && role != quickpath.RoleAge {
		role = quickpath.RoleGeneric
	}
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO quickpath_steps (
                        id, role, question, question_en, question_fr, question_ar,
                        description_en, description_fr, description_ar
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(id) DO UPDATE SET
                        role = excluded.role,
                        question = excluded.question,
                        question_en = excluded.question_en,
                        question_fr = excluded.question_fr,
                        question_ar = excluded.question_ar,
                        description_en = excluded.description_en,
                        description_fr = excluded.description_fr,
                        description_ar = excluded.description_ar,
                        updated_at = CURRENT_TIMESTAMP`,
		step.ID, string(role),
		nullable(step.Text.Get("question")),
		nullable(step.Text.Get("question_en")),
		nullable(step.Text.Get("question_fr")),
		nullable(step.Text.Get("question_ar")),
		nullable(step.Text.Get("description_en")),
		nullable(step.Text.Get("description_fr")),
		nullable(step.Text.Get("description_ar")),
	)
	if err != nil {
		return fmt.Errorf("upsert step: %w", err)
	}
	return nil
}

// DeleteStep removes a step and, via the schema cascade, its answers.
func (s *Store) DeleteStep(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "quickpath_steps", id, quickpath.ErrNotFound)
}

// UpsertAnswer inserts or updates an answer. The owning step must exist and a
// non-empty next step reference must point at an existing step; authoring
// mistakes are rejected here rather than surfacing mid-quiz.
func (s *Store) UpsertAnswer(ctx context.Context, answer *quickpath.Answer) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if answer == nil || strings.TrimSpace(answer.ID) == "" {
		return errors.New("answer id required")
	}
	if err := s.requireStep(ctx, answer.StepID); err != nil {
		return err
	}
	if answer.NextStepID != "" {
		if err := s.requireStep(ctx, answer.NextStepID); err != nil {
			if errors.Is(err, quickpath.ErrNotFound) {
				return fmt.Errorf("next_step_id %s: %w", answer.NextStepID, quickpath.ErrInvalidNextStep)
			}
			return err
		}
	}
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO quickpath_answers (
                        id, step_id, next_step_id, order_index,
                        label, label_en, label_fr, label_ar,
                        recommendation_en, recommendation_fr, recommendation_ar,
                        action_plan_en, action_plan_fr, action_plan_ar,
                        example_en, example_fr, example_ar,
                        recommended_workshop_ids
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
                ON CONFLICT(id) DO UPDATE SET
                        step_id = excluded.step_id,
                        next_step_id = excluded.next_step_id,
                        order_index = excluded.order_index,
                        label = excluded.label,
                        label_en = excluded.label_en,
                        label_fr = excluded.label_fr,
                        label_ar = excluded.label_ar,
                        recommendation_en = excluded.recommendation_en,
                        recommendation_fr = excluded.recommendation_fr,
                        recommendation_ar = excluded.recommendation_ar,
                        action_plan_en = excluded.action_plan_en,
                        action_plan_fr = excluded.action_plan_fr,
                        action_plan_ar = excluded.action_plan_ar,
                        example_en = excluded.example_en,
                        example_fr = excluded.example_fr,
                        example_ar = excluded.example_ar,
                        recommended_workshop_ids = excluded.recommended_workshop_ids`,
		answer.ID, answer.StepID, nullable(answer.NextStepID), answer.OrderIndex,
		nullable(answer.Text.Get("label")),
		nullable(answer.Text.Get("label_en")),
		nullable(answer.Text.Get("label_fr")),
		nullable(answer.Text.Get("label_ar")),
		nullable(answer.Text.Get("recommendation_en")),
		nullable(answer.Text.Get("recommendation_fr")),
		nullable(answer.Text.Get("recommendation_ar")),
		nullable(answer.Text.Get("action_plan_en")),
		nullable(answer.Text.Get("action_plan_fr")),
		nullable(answer.Text.Get("action_plan_ar")),
		nullable(answer.Text.Get("example_en")),
		nullable(answer.Text.Get("example_fr")),
		nullable(answer.Text.Get("example_ar")),
		encodeIDList(answer.WorkshopIDs),
	)
	if err != nil {
		return fmt.Errorf("upsert answer: %w", err)
	}
	return nil
}

// DeleteAnswer removes an answer.
func (s *Store) DeleteAnswer(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "quickpath_answers", id, quickpath.ErrNotFound)
}

// InsertRule stores a new recommendation rule. At most one rule may exist per
// (issue, age) pair.
func (s *Store) InsertRule(ctx context.Context, rule *quickpath.Rule) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	if rule == nil || strings.TrimSpace(rule.ID) == "" {
		return errors.New("rule id required")
	}
	if rule.IssueAnswerID == "" || rule.AgeAnswerID == "" {
		return errors.New("rule requires issue and age answer ids")
	}
	existing, err := s.RuleForPivots(ctx, rule.IssueAnswerID, rule.AgeAnswerID)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("pair (%s, %s): %w", rule.IssueAnswerID, rule.AgeAnswerID, quickpath.ErrRuleExists)
	}
	_, err = s.db.ExecContext(ctx, `
                INSERT INTO quickpath_recommendation_rules (
                        id, issue_answer_id, age_answer_id,
                        recommendation_en, recommendation_fr, recommendation_ar,
                        action_plan_en, action_plan_fr, action_plan_ar,
                        example_en, example_fr, example_ar,
                        workshop_ids
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rule.ID, rule.IssueAnswerID, rule.AgeAnswerID,
		nullable(rule.Text.Get("recommendation_en")),
		nullable(rule.Text.Get("recommendation_fr")),
		nullable(rule.Text.Get("recommendation_ar")),
		nullable(rule.Text.Get("action_plan_en")),
		nullable(rule.Text.Get("action_plan_fr")),
		nullable(rule.Text.Get("action_plan_ar")),
		nullable(rule.Text.Get("example_en")),
		nullable(rule.Text.Get("example_fr")),
		nullable(rule.Text.Get("example_ar")),
		encodeIDList(rule.WorkshopIDs),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("pair (%s, %s): %w", rule.IssueAnswerID, rule.AgeAnswerID, quickpath.ErrRuleExists)
		}
		return fmt.Errorf("insert rule: %w", err)
	}
	return nil
}

// DeleteRule removes a rule.
func (s *Store) DeleteRule(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "quickpath_recommendation_rules", id, quickpath.ErrNotFound)
}

func (s *Store) requireStep(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return quickpath.ErrNotFound
	}
	var exists int
	err := s.db.GetContext(ctx, &exists, `SELECT 1 FROM quickpath_steps WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quickpath.ErrNotFound
		}
		return fmt.Errorf("check step %s: %w", id, err)
	}
	return nil
}

func (s *Store) deleteByID(ctx context.Context, table, id string, notFound error) error {
	if err := s.ensureReady(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
