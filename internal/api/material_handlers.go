package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/kaiwa/internal/services"
)

func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	materials, err := s.MaterialService.ListMaterials(r.Context(), r.URL.Query().Get("userId"), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, map[string]any{"materials": materials})
}

func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	material, err := s.MaterialService.GetMaterial(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, material)
}

func (s *Server) handleGenerateMaterial(w http.ResponseWriter, r *http.Request) {
	var req services.GenerateMaterialInput
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.MaterialService.Generate(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusCreated, res)
}
