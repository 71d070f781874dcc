// File path: internal/api/middleware.go
package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/parentys/platform/internal/common"
	"github.com/parentys/platform/internal/session"
)

const (
	sessionCookie = "qp_session"
	authCookie    = "parentys_session"
)

// ensureSession returns the request's session id, minting a cookie when the
// browser has none yet.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// loadState reads the session state. Storage failures degrade to an empty
// state so the traversal keeps working statelessly.
func (s *Server) loadState(r *http.Request, id string) session.State {
	if id == "" {
		return session.State{}
	}
	state, ok, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		common.Logger().Warn("api: session read failed", "session", id, "error", err)
		return session.State{}
	}
	if !ok {
		return session.State{}
	}
	return state
}

// saveState persists the session state best-effort; failed writes are
// dropped with a warning.
func (s *Server) saveState(r *http.Request, id string, state session.State) {
	if id == "" {
		return
	}
	if err := s.sessions.Put(r.Context(), id, state); err != nil {
		common.Logger().Warn("api: session write failed", "session", id, "error", err)
	}
}

// language picks the response language: explicit query parameter first, then
// the session choice, then the configured default.
func (s *Server) language(r *http.Request, state session.State) string {
	if lang := strings.TrimSpace(strings.ToLower(r.URL.Query().Get("lang"))); lang != "" {
		return lang
	}
	if state.Language != "" {
		return state.Language
	}
	return s.defaultLang
}

// requireAdmin guards the back office routes: a valid provider session token
// referencing an account with the admin role.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			if cookie, err := r.Cookie(authCookie); err == nil {
				token = cookie.Value
			}
		}
		user, err := s.verifier.RequireAdmin(r.Context(), token)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		common.Logger().Debug("api: admin request", "user", user.ID, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
