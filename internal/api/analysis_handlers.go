package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	analyses, err := s.AnalysisService.ListAnalyses(r.Context(), r.URL.Query().Get("userId"), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, map[string]any{"analyses": analyses})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.AnalysisService.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, analysis)
}
