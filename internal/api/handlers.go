package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"CreditSentinel/internal/model"
	"CreditSentinel/internal/store"

	"github.com/go-chi/chi/v5"
)

// displayDateFormat renders lastUpdated for API consumers, e.g. "August 31, 2026".
const displayDateFormat = "January 02, 2006"

// companyDetail is the wire form of a ScoreRecord with a display-formatted
// timestamp.
type companyDetail struct {
	Name         string                  `json:"name"`
	Ticker       string                  `json:"ticker"`
	Sector       string                  `json:"sector"`
	MarketCap    *float64                `json:"marketCap"`
	LastUpdated  string                  `json:"lastUpdated"`
	Score        float64                 `json:"score"`
	ScoreFactors []model.ScoreFactor     `json:"scoreFactors"`
	Sentiment    []model.SentimentBucket `json:"sentiment"`
	CreditTrend  []model.TrendPoint      `json:"creditTrend"`
	Metrics      map[string]string       `json:"metrics"`
}

func toDetail(rec *model.ScoreRecord) companyDetail {
	return companyDetail{
		Name:         rec.Name,
		Ticker:       rec.Ticker,
		Sector:       rec.Sector,
		MarketCap:    rec.MarketCap,
		LastUpdated:  rec.LastUpdated.Format(displayDateFormat),
		Score:        rec.Score,
		ScoreFactors: rec.ScoreFactors,
		Sentiment:    rec.Sentiment,
		CreditTrend:  rec.CreditTrend,
		Metrics:      rec.Metrics,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	refs, err := s.store.List(r.Context())
	if err != nil {
		log.Printf("[ERROR] list companies: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}
	if refs == nil {
		refs = []model.CompanyRef{}
	}
	writeJSON(w, http.StatusOK, refs)
}

func (s *Server) handleCompanyDetail(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	rec, err := s.store.GetByName(r.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Company not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] get company %q: %v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to load company")
		return
	}
	writeJSON(w, http.StatusOK, toDetail(rec))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.sched == nil {
		writeError(w, http.StatusServiceUnavailable, "refresh not available")
		return
	}
	s.sched.RunNow()
	writeJSON(w, http.StatusOK, map[string]string{"message": "refresh completed"})
}
