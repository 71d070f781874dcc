// File path: internal/api/quickpath_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"github.com/parentys/platform/internal/common"
	"github.com/parentys/platform/internal/i18n"
	"github.com/parentys/platform/internal/quickpath"
)

type stepView struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Question    string `json:"question"`
	Description string `json:"description,omitempty"`
}

type answerView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Terminal bool   `json:"terminal"`
}

type stepResponse struct {
	Step     stepView     `json:"step"`
	Answers  []answerView `json:"answers"`
	Language string       `json:"language"`
	RTL      bool         `json:"rtl"`
}

type entryResponse struct {
	RootStepID string `json:"root_step_id"`
}

func (s *Server) handleQuickPathEntry(w http.ResponseWriter, r *http.Request) {
	root := s.engine.RootStepID()
	if root == "" {
		writeError(w, http.StatusNotFound, fmt.Errorf("no quickpath entry point configured"))
		return
	}
	writeJSON(w, http.StatusOK, entryResponse{RootStepID: root})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	stepID := chi.URLParam(r, "stepID")
	sessionID := s.ensureSession(w, r)
	state := s.loadState(r, sessionID)
	lang := s.language(r, state)

	step, answers, err := s.engine.LoadStep(r.Context(), stepID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views := make([]answerView, 0, len(answers))
	for _, answer := range answers {
		views = append(views, answerView{
			ID:       answer.ID,
			Label:    s.fields.Resolve(answer.Text, "label", lang),
			Terminal: answer.Terminal(),
		})
	}
	writeJSON(w, http.StatusOK, stepResponse{
		Step: stepView{
			ID:          step.ID,
			Role:        string(step.Role),
			Question:    s.fields.Resolve(step.Text, "question", lang),
			Description: s.fields.Resolve(step.Text, "description", lang),
		},
		Answers:  views,
		Language: lang,
		RTL:      i18n.RTL(lang),
	})
}

type chooseResponse struct {
	Terminal   bool   `json:"terminal"`
	NextStepID string `json:"next_step_id,omitempty"`
	AnswerID   string `json:"answer_id"`
	Next       string `json:"next"`
}

func (s *Server) handleChoose(w http.ResponseWriter, r *http.Request) {
	stepID := chi.URLParam(r, "stepID")
	answerID := chi.URLParam(r, "answerID")
	sessionID := s.ensureSession(w, r)
	state := s.loadState(r, sessionID)

	transition, err := s.engine.Choose(r.Context(), &state, stepID, answerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.saveState(r, sessionID, state)

	resp := chooseResponse{
		Terminal:   transition.Terminal,
		NextStepID: transition.NextStepID,
		AnswerID:   transition.Answer.ID,
	}
	if transition.Terminal {
		resp.Next = "/v1/quickpath/result/" + transition.Answer.ID
	} else {
		resp.Next = "/v1/quickpath/steps/" + transition.NextStepID
	}
	writeJSON(w, http.StatusOK, resp)
}

type resultResponse struct {
	AnswerID       string                   `json:"answer_id"`
	Recommendation quickpath.Recommendation `json:"recommendation"`
	Language       string                   `json:"language"`
	RTL            bool                     `json:"rtl"`
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	answerID := chi.URLParam(r, "answerID")
	sessionID := s.ensureSession(w, r)
	state := s.loadState(r, sessionID)

	// Deep links may carry the pivots directly when session storage is
	// unavailable or the user landed here from another device.
	if v := strings.TrimSpace(r.URL.Query().Get("issue_answer")); v != "" {
		state.IssueAnswerID = v
	}
	if v := strings.TrimSpace(r.URL.Query().Get("age_answer")); v != "" {
		state.AgeAnswerID = v
	}
	lang := s.language(r, state)

	terminal, err := s.store.AnswerByID(r.Context(), answerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	recommendation := s.recommender.Resolve(r.Context(), terminal, state, lang)
	writeJSON(w, http.StatusOK, resultResponse{
		AnswerID:       terminal.ID,
		Recommendation: recommendation,
		Language:       lang,
		RTL:            i18n.RTL(lang),
	})
}

type languageRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode language request: %w", err))
		return
	}
	lang := strings.TrimSpace(strings.ToLower(req.Language))
	if !i18n.Supported(lang) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported language %q", req.Language))
		return
	}
	sessionID := s.ensureSession(w, r)
	state := s.loadState(r, sessionID)
	state.Language = lang
	s.saveState(r, sessionID, state)
	common.Logger().Debug("api: language set", "session", sessionID, "lang", lang)
	writeJSON(w, http.StatusOK, map[string]string{"language": lang})
}
