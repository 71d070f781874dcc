// File path: internal/quickpath/engine.go
package quickpath

import (
	"context"
	"fmt"

	"github.com/parentys/platform/internal/common"
	"github.com/parentys/platform/internal/session"
)

// Engine walks the step/answer graph. It holds no per-user state: pivot
// capture goes to the caller-supplied session.State, which keeps the engine
// pure and testable.
type Engine struct {
	store    Store
	rootStep string
}

// NewEngine constructs an Engine over the given store. rootStep is the
// configured entry point of the questionnaire.
func NewEngine(store Store, rootStep string) *Engine {
	return &Engine{store: store, rootStep: rootStep}
}

// RootStepID returns the configured entry step.
func (e *Engine) RootStepID() string {
	return e.rootStep
}

// Transition is the outcome of choosing an answer: either the next step, or
// the terminal state that triggers recommendation resolution. Terminal is
// absorbing.
type Transition struct {
	Answer     Answer `json:"answer"`
	NextStepID string `json:"next_step_id,omitempty"`
	Terminal   bool   `json:"terminal"`
}

// LoadStep fetches a step and its answers, ordered by their ordinal. A step
// with zero answers is a content configuration problem, logged and surfaced
// as an empty list rather than an error.
func (e *Engine) LoadStep(ctx context.Context, stepID string) (*Step, []Answer, error) {
	step, err := e.store.StepByID(ctx, stepID)
	if err != nil {
		return nil, nil, err
	}
	answers, err := e.store.AnswersForStep(ctx, stepID)
	if err != nil {
		return nil, nil, fmt.Errorf("load answers for step %s: %w", stepID, err)
	}
	if len(answers) == 0 {
		common.Logger().Warn("quickpath: step has no answers", "step", stepID)
	}
	return step, answers, nil
}

// Choose resolves the transition for answerID picked on stepID and records
// the choice in state. The answer must belong to the step; a mismatch is
// reported as ErrNotFound. state may be nil when session storage is
// unavailable, in which case the traversal proceeds statelessly.
func (e *Engine) Choose(ctx context.Context, state *session.State, stepID, answerID string) (Transition, error) {
	answer, err := e.store.AnswerByID(ctx, answerID)
	if err != nil {
		return Transition{}, err
	}
	if answer.StepID != stepID {
		return Transition{}, fmt.Errorf("answer %s does not belong to step %s: %w", answerID, stepID, ErrNotFound)
	}
	step, err := e.store.StepByID(ctx, stepID)
	if err != nil {
		return Transition{}, err
	}
	e.record(state, step, answer.ID)
	return Transition{
		Answer:     *answer,
		NextStepID: answer.NextStepID,
		Terminal:   answer.Terminal(),
	}, nil
}

// record updates the session slots: the last answer always, the issue or age
// pivot only when the step carries that role.
func (e *Engine) record(state *session.State, step *Step, answerID string) {
	if state == nil {
		return
	}
	state.LastAnswerID = answerID
	switch step.Role {
	case RoleIssue:
		state.IssueAnswerID = answerID
	case RoleAge:
		state.AgeAnswerID = answerID
	}
}
