package api

import (
	"net/http"
)

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.RecommendationService.GetRecommendationsForUser(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, bundle)
}
