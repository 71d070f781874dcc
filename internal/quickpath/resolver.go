// File path: internal/quickpath/resolver.go
package quickpath

import (
	"context"

	"github.com/parentys/platform/internal/common"
	"github.com/parentys/platform/internal/i18n"
	"github.com/parentys/platform/internal/session"
)

// WorkshopSummary is a workshop reference resolved for display.
type WorkshopSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Recommendation is the final guidance shown on the result page. All fields
// may be empty; the presentation layer omits empty sections.
type Recommendation struct {
	Recommendation       string            `json:"recommendation"`
	RecommendationPoints []string          `json:"recommendation_points"`
	ActionPlan           string            `json:"action_plan"`
	ActionPoints         []string          `json:"action_points"`
	Example              string            `json:"example"`
	Workshops            []WorkshopSummary `json:"workshops"`
	RuleID               string            `json:"rule_id,omitempty"`
}

// Resolver computes the recommendation for a terminal answer, preferring a
// curated rule keyed by the session's pivot answers over the fields embedded
// on the answer itself.
type Resolver struct {
	store Store
	i18n  *i18n.Resolver
}

// NewResolver constructs a Resolver over the given store and field resolver.
func NewResolver(store Store, fields *i18n.Resolver) *Resolver {
	return &Resolver{store: store, i18n: fields}
}

// Resolve produces the recommendation for terminal in the given language.
// A rule is consulted only when both pivots are recorded; any lookup failure
// degrades to the answer's embedded fields. Resolve never fails for missing
// data and is a pure function of the stored rows.
func (r *Resolver) Resolve(ctx context.Context, terminal *Answer, state session.State, lang string) Recommendation {
	logger := common.Logger()
	if lang == "" {
		lang = state.Language
	}

	text := terminal.Text
	workshopIDs := terminal.WorkshopIDs
	ruleID := ""
	if state.HasPivots() {
		rule, err := r.store.RuleForPivots(ctx, state.IssueAnswerID, state.AgeAnswerID)
		switch {
		case err != nil:
			logger.Warn("quickpath: rule lookup failed, using embedded fields",
				"issue_answer", state.IssueAnswerID, "age_answer", state.AgeAnswerID, "error", err)
		case rule != nil:
			text = rule.Text
			workshopIDs = rule.WorkshopIDs
			ruleID = rule.ID
		}
	}

	recommendation := r.i18n.Resolve(text, "recommendation", lang)
	actionPlan := r.i18n.Resolve(text, "action_plan", lang)
	result := Recommendation{
		Recommendation:       recommendation,
		RecommendationPoints: FormatBullets(recommendation),
		ActionPlan:           actionPlan,
		ActionPoints:         FormatBullets(actionPlan),
		Example:              r.i18n.Resolve(text, "example", lang),
		RuleID:               ruleID,
	}
	result.Workshops = r.workshops(ctx, workshopIDs, lang)
	return result
}

func (r *Resolver) workshops(ctx context.Context, ids []string, lang string) []WorkshopSummary {
	if len(ids) == 0 {
		return nil
	}
	refs, err := r.store.WorkshopRefs(ctx, ids)
	if err != nil {
		common.Logger().Warn("quickpath: workshop lookup failed", "ids", len(ids), "error", err)
		return nil
	}
	// Preserve the curated ordering from the rule or answer.
	byID := make(map[string]WorkshopRef, len(refs))
	for _, ref := range refs {
		byID[ref.ID] = ref
	}
	out := make([]WorkshopSummary, 0, len(ids))
	for _, id := range ids {
		ref, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, WorkshopSummary{ID: ref.ID, Title: r.i18n.Resolve(ref.Text, "title", lang)})
	}
	return out
}
