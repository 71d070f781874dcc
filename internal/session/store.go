// File path: internal/session/store.go

// Package session holds the per-browser QuickPath state: the most recent
// answer, the two pivot answers keyed by rule lookups, and the language
// choice. State survives navigation within one browser session but is never
// shared across devices.
package session

import "context"

// State is the explicit session-context object threaded through the traversal
// engine and recommendation resolver. All slots are optional; a missing slot
// means "not set".
type State struct {
	LastAnswerID  string `json:"last_answer_id,omitempty"`
	IssueAnswerID string `json:"issue_answer_id,omitempty"`
	AgeAnswerID   string `json:"age_answer_id,omitempty"`
	Language      string `json:"language,omitempty"`
}

// HasPivots reports whether both pivot slots are recorded.
func (s State) HasPivots() bool {
	return s.IssueAnswerID != "" && s.AgeAnswerID != ""
}

// Store persists State keyed by an opaque session identifier. Implementations
// are best-effort: callers treat read failures as "not set" and drop failed
// writes rather than aborting the request.
type Store interface {
	Get(ctx context.Context, id string) (State, bool, error)
	Put(ctx context.Context, id string, state State) error
	Delete(ctx context.Context, id string) error
}
