// File path: internal/api/server.go

// Package api exposes the platform over HTTP: public content reads, the
// QuickPath questionnaire, and the admin back office endpoints.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/parentys/platform/internal/auth"
	"github.com/parentys/platform/internal/catalog"
	"github.com/parentys/platform/internal/common"
	"github.com/parentys/platform/internal/i18n"
	"github.com/parentys/platform/internal/quickpath"
	"github.com/parentys/platform/internal/session"
)

// Deps carries the collaborators the server is built from.
type Deps struct {
	QuickPath   quickpath.Store
	Admin       quickpath.AdminStore
	Catalog     catalog.Store
	Sessions    session.Store
	Verifier    *auth.Verifier
	Fields      *i18n.Resolver
	RootStepID  string
	DefaultLang string
}

type Server struct {
	router      chi.Router
	engine      *quickpath.Engine
	recommender *quickpath.Resolver
	store       quickpath.Store
	admin       quickpath.AdminStore
	catalog     catalog.Store
	sessions    session.Store
	verifier    *auth.Verifier
	fields      *i18n.Resolver
	defaultLang string
}

// NewServer validates the dependencies and wires the route table.
func NewServer(deps Deps) (*Server, error) {
	logger := common.Logger()
	if deps.QuickPath == nil {
		return nil, fmt.Errorf("quickpath store required")
	}
	if deps.Admin == nil {
		return nil, fmt.Errorf("admin store required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if deps.Sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if deps.Verifier == nil {
		return nil, fmt.Errorf("auth verifier required")
	}
	fields := deps.Fields
	if fields == nil {
		fields = i18n.NewResolver(nil)
	}
	defaultLang := deps.DefaultLang
	if defaultLang == "" {
		defaultLang = i18n.DefaultLanguage
	}
	srv := &Server{
		router:      chi.NewRouter(),
		engine:      quickpath.NewEngine(deps.QuickPath, deps.RootStepID),
		recommender: quickpath.NewResolver(deps.QuickPath, fields),
		store:       deps.QuickPath,
		admin:       deps.Admin,
		catalog:     deps.Catalog,
		sessions:    deps.Sessions,
		verifier:    deps.Verifier,
		fields:      fields,
		defaultLang: defaultLang,
	}
	srv.routes()
	logger.Info("api: server ready", "root_step", deps.RootStepID, "default_lang", defaultLang)
	return srv, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Get("/v1/quickpath", s.handleQuickPathEntry)
	s.router.Get("/v1/quickpath/steps/{stepID}", s.handleStep)
	s.router.Post("/v1/quickpath/steps/{stepID}/answers/{answerID}", s.handleChoose)
	s.router.Get("/v1/quickpath/result/{answerID}", s.handleResult)
	s.router.Put("/v1/quickpath/language", s.handleSetLanguage)

	s.router.Get("/v1/workshops", s.handleListWorkshops)
	s.router.Get("/v1/workshops/{id}", s.handleGetWorkshop)
	s.router.Get("/v1/experts", s.handleListExperts)
	s.router.Get("/v1/experts/{id}", s.handleGetExpert)
	s.router.Get("/v1/categories", s.handleListCategories)
	s.router.Get("/v1/config/{key}", s.handleGetConfig)

	s.router.Route("/v1/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/quickpath/steps", s.handleAdminListSteps)
		r.Put("/quickpath/steps/{id}", s.handleAdminPutStep)
		r.Delete("/quickpath/steps/{id}", s.handleAdminDeleteStep)
		r.Get("/quickpath/answers", s.handleAdminListAnswers)
		r.Put("/quickpath/answers/{id}", s.handleAdminPutAnswer)
		r.Delete("/quickpath/answers/{id}", s.handleAdminDeleteAnswer)
		r.Get("/quickpath/rules", s.handleAdminListRules)
		r.Post("/quickpath/rules", s.handleAdminCreateRule)
		r.Delete("/quickpath/rules/{id}", s.handleAdminDeleteRule)

		r.Put("/workshops/{id}", s.handleAdminPutWorkshop)
		r.Delete("/workshops/{id}", s.handleAdminDeleteWorkshop)
		r.Put("/experts/{id}", s.handleAdminPutExpert)
		r.Delete("/experts/{id}", s.handleAdminDeleteExpert)
		r.Put("/categories/{id}", s.handleAdminPutCategory)
		r.Delete("/categories/{id}", s.handleAdminDeleteCategory)
		r.Put("/config/{key}", s.handleAdminPutConfig)

		r.Get("/logs", s.handleAdminLogs)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeDomainError maps domain sentinels onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quickpath.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, quickpath.ErrInvalidNextStep):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, quickpath.ErrRuleExists):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, auth.ErrForbidden):
		writeError(w, http.StatusForbidden, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
