// File path: internal/api/content_handler.go
package api

import (
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"github.com/parentys/platform/internal/catalog"
	"github.com/parentys/platform/internal/i18n"
)

type workshopView struct {
	ID               string     `json:"id"`
	Slug             string     `json:"slug,omitempty"`
	Status           string     `json:"status"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	ShortDescription string     `json:"short_description,omitempty"`
	PriceCents       int64      `json:"price_cents"`
	Currency         string     `json:"currency"`
	StartsAt         *time.Time `json:"starts_at,omitempty"`
	Duration         string     `json:"duration,omitempty"`
	AgeRange         string     `json:"age_range,omitempty"`
	Difficulty       string     `json:"difficulty,omitempty"`
	BannerURL        string     `json:"banner_url,omitempty"`
	VideoURL         string     `json:"video_url,omitempty"`
}

func (s *Server) workshopView(workshop catalog.Workshop, lang string) workshopView {
	return workshopView{
		ID:               workshop.ID,
		Slug:             workshop.Slug,
		Status:           workshop.Status,
		Title:            s.fields.Resolve(workshop.Text, "title", lang),
		Description:      s.fields.Resolve(workshop.Text, "description", lang),
		ShortDescription: s.fields.Resolve(workshop.Text, "short_description", lang),
		PriceCents:       workshop.PriceCents,
		Currency:         workshop.Currency,
		StartsAt:         workshop.StartsAt,
		Duration:         workshop.Duration,
		AgeRange:         workshop.AgeRange,
		Difficulty:       workshop.Difficulty,
		BannerURL:        workshop.BannerURL,
		VideoURL:         workshop.VideoURL,
	}
}

func (s *Server) handleListWorkshops(w http.ResponseWriter, r *http.Request) {
	sessionID := s.ensureSession(w, r)
	lang := s.language(r, s.loadState(r, sessionID))

	workshops, err := s.catalog.ListWorkshops(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	views := make([]workshopView, 0, len(workshops))
	for _, workshop := range workshops {
		views = append(views, s.workshopView(workshop, lang))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"workshops": views,
		"language":  lang,
		"rtl":       i18n.RTL(lang),
	})
}

func (s *Server) handleGetWorkshop(w http.ResponseWriter, r *http.Request) {
	sessionID := s.ensureSession(w, r)
	lang := s.language(r, s.loadState(r, sessionID))

	workshop, err := s.catalog.WorkshopByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.workshopView(*workshop, lang))
}

type expertView struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Headline  string `json:"headline,omitempty"`
	Bio       string `json:"bio,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (s *Server) expertView(expert catalog.Expert, lang string) expertView {
	return expertView{
		ID:        expert.ID,
		FullName:  expert.FullName,
		Headline:  s.fields.Resolve(expert.Text, "headline", lang),
		Bio:       s.fields.Resolve(expert.Text, "bio", lang),
		AvatarURL: expert.AvatarURL,
	}
}

func (s *Server) handleListExperts(w http.ResponseWriter, r *http.Request) {
	sessionID := s.ensureSession(w, r)
	lang := s.language(r, s.loadState(r, sessionID))

	experts, err := s.catalog.ListExperts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	views := make([]expertView, 0, len(experts))
	for _, expert := range experts {
		views = append(views, s.expertView(expert, lang))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"experts": views, "language": lang})
}

func (s *Server) handleGetExpert(w http.ResponseWriter, r *http.Request) {
	sessionID := s.ensureSession(w, r)
	lang := s.language(r, s.loadState(r, sessionID))

	expert, err := s.catalog.ExpertByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.expertView(*expert, lang))
}

type categoryView struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	OrderIndex  int    `json:"order_index"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	sessionID := s.ensureSession(w, r)
	lang := s.language(r, s.loadState(r, sessionID))

	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	views := make([]categoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, categoryView{
			ID:          category.ID,
			Slug:        category.Slug,
			Label:       s.fields.Resolve(category.Text, "label", lang),
			Description: s.fields.Resolve(category.Text, "description", lang),
			OrderIndex:  category.OrderIndex,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": views, "language": lang})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	entry, err := s.catalog.ConfigByKey(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
