// File path: internal/quickpath/types.go

// Package quickpath implements the branching questionnaire: a decision tree
// of steps and answers walked one page at a time, terminating in a
// personalized recommendation.
package quickpath

import (
	"context"
	"errors"
	"time"

	"github.com/parentys/platform/internal/i18n"
)

var (
	// ErrNotFound is returned when a step or answer does not exist, or when
	// an answer does not belong to the step it was chosen from.
	ErrNotFound = errors.New("quickpath: not found")
	// ErrInvalidNextStep rejects an answer write whose next_step_id does not
	// reference an existing step.
	ErrInvalidNextStep = errors.New("quickpath: next step does not exist")
	// ErrRuleExists rejects a second rule for the same (issue, age) pair.
	ErrRuleExists = errors.New("quickpath: rule already exists for answer pair")
)

// StepRole marks the steps whose chosen answers are captured as pivots for
// recommendation rule lookups.
type StepRole string

const (
	RoleGeneric StepRole = "generic"
	RoleIssue   StepRole = "issue"
	RoleAge     StepRole = "age"
)

// Step is a question node in the decision tree.
type Step struct {
	ID        string      `json:"id"`
	Role      StepRole    `json:"role"`
	Text      i18n.Fields `json:"text"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Answer is a selectable edge out of a Step. An empty NextStepID marks the
// answer terminal: the walk ends and a recommendation is resolved.
type Answer struct {
	ID          string      `json:"id"`
	StepID      string      `json:"step_id"`
	NextStepID  string      `json:"next_step_id,omitempty"`
	OrderIndex  int         `json:"order_index"`
	WorkshopIDs []string    `json:"recommended_workshop_ids,omitempty"`
	Text        i18n.Fields `json:"text"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Terminal reports whether choosing this answer ends the traversal.
func (a Answer) Terminal() bool {
	return a.NextStepID == ""
}

// Rule maps a (issue, age) pivot pair to curated guidance. Rule fields take
// precedence over the terminal answer's embedded fields.
type Rule struct {
	ID            string      `json:"id"`
	IssueAnswerID string      `json:"issue_answer_id"`
	AgeAnswerID   string      `json:"age_answer_id"`
	WorkshopIDs   []string    `json:"workshop_ids,omitempty"`
	Text          i18n.Fields `json:"text"`
	CreatedAt     time.Time   `json:"created_at"`
}

// WorkshopRef is the subset of a workshop surfaced alongside a
// recommendation.
type WorkshopRef struct {
	ID   string      `json:"id"`
	Text i18n.Fields `json:"-"`
}

// Store is the read surface the traversal engine and recommendation resolver
// depend on.
type Store interface {
	StepByID(ctx context.Context, id string) (*Step, error)
	AnswersForStep(ctx context.Context, stepID string) ([]Answer, error)
	AnswerByID(ctx context.Context, id string) (*Answer, error)
	// RuleForPivots returns the first rule matching the pair, or (nil, nil)
	// when none exists.
	RuleForPivots(ctx context.Context, issueAnswerID, ageAnswerID string) (*Rule, error)
	WorkshopRefs(ctx context.Context, ids []string) ([]WorkshopRef, error)
}

// AdminStore is the write surface behind the back office screens. Writes
// validate graph references and rule uniqueness; traversal never does.
type AdminStore interface {
	ListSteps(ctx context.Context) ([]Step, error)
	ListAnswers(ctx context.Context) ([]Answer, error)
	ListRules(ctx context.Context) ([]Rule, error)
	UpsertStep(ctx context.Context, step *Step) error
	DeleteStep(ctx context.Context, id string) error
	UpsertAnswer(ctx context.Context, answer *Answer) error
	DeleteAnswer(ctx context.Context, id string) error
	InsertRule(ctx context.Context, rule *Rule) error
	DeleteRule(ctx context.Context, id string) error
}
