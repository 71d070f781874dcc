// File path: internal/api/admin_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/parentys/platform/internal/catalog"
	"github.com/parentys/platform/internal/common"
	"github.com/parentys/platform/internal/quickpath"
)

func decodeBody(r *http.Request, out interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

func (s *Server) handleAdminListSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := s.admin.ListSteps(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"steps": steps})
}

func (s *Server) handleAdminPutStep(w http.ResponseWriter, r *http.Request) {
	var step quickpath.Step
	if err := decodeBody(r, &step); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	step.ID = chi.URLParam(r, "id")
	if err := s.admin.UpsertStep(r.Context(), &step); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (s *Server) handleAdminDeleteStep(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteStep(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminListAnswers(w http.ResponseWriter, r *http.Request) {
	answers, err := s.admin.ListAnswers(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
}

func (s *Server) handleAdminPutAnswer(w http.ResponseWriter, r *http.Request) {
	var answer quickpath.Answer
	if err := decodeBody(r, &answer); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	answer.ID = chi.URLParam(r, "id")
	if err := s.admin.UpsertAnswer(r.Context(), &answer); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) handleAdminDeleteAnswer(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteAnswer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.admin.ListRules(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

func (s *Server) handleAdminCreateRule(w http.ResponseWriter, r *http.Request) {
	var rule quickpath.Rule
	if err := decodeBody(r, &rule); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if rule.IssueAnswerID == "" || rule.AgeAnswerID == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("issue_answer_id and age_answer_id required"))
		return
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if err := s.admin.InsertRule(r.Context(), &rule); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func (s *Server) handleAdminDeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := s.admin.DeleteRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminPutWorkshop(w http.ResponseWriter, r *http.Request) {
	var workshop catalog.Workshop
	if err := decodeBody(r, &workshop); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	workshop.ID = chi.URLParam(r, "id")
	if err := s.catalog.UpsertWorkshop(r.Context(), &workshop); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workshop)
}

func (s *Server) handleAdminDeleteWorkshop(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteWorkshop(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminPutExpert(w http.ResponseWriter, r *http.Request) {
	var expert catalog.Expert
	if err := decodeBody(r, &expert); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	expert.ID = chi.URLParam(r, "id")
	if err := s.catalog.UpsertExpert(r.Context(), &expert); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expert)
}

func (s *Server) handleAdminDeleteExpert(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteExpert(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminPutCategory(w http.ResponseWriter, r *http.Request) {
	var category catalog.Category
	if err := decodeBody(r, &category); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	category.ID = chi.URLParam(r, "id")
	if err := s.catalog.UpsertCategory(r.Context(), &category); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleAdminDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.DeleteCategory(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAdminPutConfig(w http.ResponseWriter, r *http.Request) {
	var value json.RawMessage
	if err := decodeBody(r, &value); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry := catalog.ConfigEntry{Key: chi.URLParam(r, "key"), Value: value}
	if err := s.catalog.PutConfig(r.Context(), &entry); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleAdminLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"logs": common.LogEntries()})
}
