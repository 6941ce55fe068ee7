package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/chamchi6619/pantry-core/internal/entity"
)

type matchRequest struct {
	Name string `json:"name"`
}

type matchResponse struct {
	Match *entity.MatchResult `json:"match"` // null when unmatched
}

// handleMatch resolves a free-text name against the canonical catalog.
// An unmatched name is a 200 with a null match, never an invented id.
func (s *Service) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	result := s.matcher.Match(req.Name, s.catalog.Items())
	if result != nil && s.history != nil {
		s.history.Add(req.Name)
	}

	s.logger.Info("match.ok",
		"request_id", requestIDFrom(r.Context()),
		"matched", result != nil,
	)
	s.writeJSON(w, http.StatusOK, matchResponse{Match: result})
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// handleSuggestions serves recent history entries for autosuggest.
func (s *Service) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: []string{}})
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	names := s.history.Recent(r.URL.Query().Get("prefix"), limit)
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, suggestionsResponse{Suggestions: names})
}
