// File path: internal/quickpath/engine_test.go
package quickpath

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parentys/platform/internal/i18n"
	"github.com/parentys/platform/internal/session"
)

type fakeStore struct {
	steps         map[string]Step
	answers       map[string]Answer
	rules         []Rule
	workshops     map[string]WorkshopRef
	ruleErr       error
	workshopErr   error
	ruleQueries   int
	workshopCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		steps:     make(map[string]Step),
		answers:   make(map[string]Answer),
		workshops: make(map[string]WorkshopRef),
	}
}

func (f *fakeStore) StepByID(ctx context.Context, id string) (*Step, error) {
	step, ok := f.steps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &step, nil
}

func (f *fakeStore) AnswersForStep(ctx context.Context, stepID string) ([]Answer, error) {
	var out []Answer
	for _, a := range f.answers {
		if a.StepID == stepID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeStore) AnswerByID(ctx context.Context, id string) (*Answer, error) {
	answer, ok := f.answers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &answer, nil
}

func (f *fakeStore) RuleForPivots(ctx context.Context, issueAnswerID, ageAnswerID string) (*Rule, error) {
	f.ruleQueries++
	if f.ruleErr != nil {
		return nil, f.ruleErr
	}
	for _, rule := range f.rules {
		if rule.IssueAnswerID == issueAnswerID && rule.AgeAnswerID == ageAnswerID {
			r := rule
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) WorkshopRefs(ctx context.Context, ids []string) ([]WorkshopRef, error) {
	f.workshopCalls++
	if f.workshopErr != nil {
		return nil, f.workshopErr
	}
	var out []WorkshopRef
	for _, id := range ids {
		if ref, ok := f.workshops[id]; ok {
			out = append(out, ref)
		}
	}
	return out, nil
}

func seedTree(store *fakeStore) {
	store.steps["issue-step"] = Step{ID: "issue-step", Role: RoleIssue, Text: i18n.Fields{"question_en": "What is the challenge?"}}
	store.steps["age-step"] = Step{ID: "age-step", Role: RoleAge, Text: i18n.Fields{"question_en": "How old is your child?"}}
	store.steps["extra-step"] = Step{ID: "extra-step", Role: RoleGeneric, Text: i18n.Fields{"question_en": "Anything else?"}}

	store.answers["sleep"] = Answer{ID: "sleep", StepID: "issue-step", NextStepID: "age-step", OrderIndex: 1, Text: i18n.Fields{"label_en": "Sleep"}}
	store.answers["nutrition"] = Answer{ID: "nutrition", StepID: "issue-step", NextStepID: "age-step", OrderIndex: 2, Text: i18n.Fields{"label_en": "Nutrition"}}
	store.answers["toddler"] = Answer{
		ID: "toddler", StepID: "age-step", OrderIndex: 1,
		Text: i18n.Fields{
			"label_en":          "Toddler",
			"recommendation_en": "Try a consistent bedtime routine.",
			"action_plan_en":    "- Dim the lights\n- Keep a fixed schedule",
		},
		WorkshopIDs: []string{"ws-1"},
	}
	store.answers["teen"] = Answer{ID: "teen", StepID: "age-step", NextStepID: "extra-step", OrderIndex: 2, Text: i18n.Fields{"label_en": "Teen"}}
	store.answers["done"] = Answer{ID: "done", StepID: "extra-step", OrderIndex: 1, Text: i18n.Fields{"label_en": "No"}}

	store.workshops["ws-1"] = WorkshopRef{ID: "ws-1", Text: i18n.Fields{"title_en": "Sleep Basics", "title_fr": "Bases du sommeil"}}
	store.workshops["ws-2"] = WorkshopRef{ID: "ws-2", Text: i18n.Fields{"title_en": "Calm Evenings"}}
}

func TestLoadStepOrdersAnswers(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	engine := NewEngine(store, "issue-step")

	step, answers, err := engine.LoadStep(context.Background(), "issue-step")
	require.NoError(t, err)
	assert.Equal(t, RoleIssue, step.Role)
	require.Len(t, answers, 2)
	assert.Equal(t, "sleep", answers[0].ID)
	assert.Equal(t, "nutrition", answers[1].ID)
}

func TestLoadStepNotFound(t *testing.T) {
	store := newFakeStore()
	engine := NewEngine(store, "issue-step")

	_, _, err := engine.LoadStep(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadStepZeroAnswers(t *testing.T) {
	store := newFakeStore()
	store.steps["dead-end"] = Step{ID: "dead-end", Role: RoleGeneric}
	engine := NewEngine(store, "dead-end")

	_, answers, err := engine.LoadStep(context.Background(), "dead-end")
	require.NoError(t, err)
	assert.Empty(t, answers, "zero answers is degraded output, not an error")
}

func TestChooseTransitionsToNextStep(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	engine := NewEngine(store, "issue-step")

	state := &session.State{}
	tr, err := engine.Choose(context.Background(), state, "issue-step", "sleep")
	require.NoError(t, err)
	assert.False(t, tr.Terminal)
	assert.Equal(t, "age-step", tr.NextStepID)
	assert.Equal(t, "sleep", state.LastAnswerID)
	assert.Equal(t, "sleep", state.IssueAnswerID, "issue-role step captures the issue pivot")
	assert.Empty(t, state.AgeAnswerID)
}

func TestChooseReachesTerminal(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	engine := NewEngine(store, "issue-step")

	state := &session.State{IssueAnswerID: "sleep"}
	tr, err := engine.Choose(context.Background(), state, "age-step", "toddler")
	require.NoError(t, err)
	assert.True(t, tr.Terminal)
	assert.Empty(t, tr.NextStepID)
	assert.Equal(t, "toddler", state.AgeAnswerID)
	assert.Equal(t, "sleep", state.IssueAnswerID)
	assert.Equal(t, "toddler", state.LastAnswerID)
}

func TestChooseGenericStepLeavesPivotsAlone(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	engine := NewEngine(store, "issue-step")

	state := &session.State{IssueAnswerID: "sleep", AgeAnswerID: "toddler"}
	_, err := engine.Choose(context.Background(), state, "extra-step", "done")
	require.NoError(t, err)
	assert.Equal(t, "sleep", state.IssueAnswerID)
	assert.Equal(t, "toddler", state.AgeAnswerID)
	assert.Equal(t, "done", state.LastAnswerID)
}

func TestChooseValidatesOwnership(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	engine := NewEngine(store, "issue-step")

	_, err := engine.Choose(context.Background(), &session.State{}, "age-step", "sleep")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChooseUnknownAnswer(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	engine := NewEngine(store, "issue-step")

	_, err := engine.Choose(context.Background(), &session.State{}, "issue-step", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChooseNilStateIsStateless(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	engine := NewEngine(store, "issue-step")

	tr, err := engine.Choose(context.Background(), nil, "issue-step", "sleep")
	require.NoError(t, err)
	assert.Equal(t, "age-step", tr.NextStepID)
}

func TestEndToEndTraversal(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	engine := NewEngine(store, "issue-step")
	resolver := NewResolver(store, i18n.NewResolver(nil))
	ctx := context.Background()

	state := &session.State{Language: "en"}
	tr, err := engine.Choose(ctx, state, "issue-step", "sleep")
	require.NoError(t, err)
	require.False(t, tr.Terminal)

	tr, err = engine.Choose(ctx, state, tr.NextStepID, "toddler")
	require.NoError(t, err)
	require.True(t, tr.Terminal)

	assert.Equal(t, "sleep", state.IssueAnswerID)
	assert.Equal(t, "toddler", state.AgeAnswerID)

	rec := resolver.Resolve(ctx, &tr.Answer, *state, "en")
	assert.Equal(t, "Try a consistent bedtime routine.", rec.Recommendation)
	assert.Equal(t, []string{"Dim the lights", "Keep a fixed schedule"}, rec.ActionPoints)
	require.Len(t, rec.Workshops, 1)
	assert.Equal(t, "Sleep Basics", rec.Workshops[0].Title)
}

func TestResolveIsIdempotent(t *testing.T) {
	store := newFakeStore()
	seedTree(store)
	resolver := NewResolver(store, i18n.NewResolver(nil))
	ctx := context.Background()

	terminal := store.answers["toddler"]
	state := session.State{IssueAnswerID: "sleep", AgeAnswerID: "toddler"}
	first := resolver.Resolve(ctx, &terminal, state, "en")
	second := resolver.Resolve(ctx, &terminal, state, "en")
	assert.Equal(t, first, second)
}
