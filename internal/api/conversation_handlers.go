package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/models"
	"github.com/vytor/kaiwa/internal/services"
)

type sendMessageRequest struct {
	SessionID string `json:"sessionId"`
	Content   string `json:"content"`
}

type endConversationRequest struct {
	SessionID string `json:"sessionId"`
	Locale    string `json:"locale"`
}

func (s *Server) handleStartConversation(w http.ResponseWriter, r *http.Request) {
	var req services.StartConversationInput
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.ConversationService.Start(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusCreated, res)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.ConversationService.SendMessage(r.Context(), req.SessionID, req.Content)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, res)
}

func (s *Server) handleEndConversation(w http.ResponseWriter, r *http.Request) {
	var req endConversationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.ConversationService.End(r.Context(), req.SessionID, req.Locale)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, res)
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := s.ConversationService.GetConversation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, conv)
}

func (s *Server) handleGetConversationAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.AnalysisService.GetAnalysisForConversation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, analysis)
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	limit, err := queryLimit(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if limit == 0 {
		limit = services.DefaultListLimit
	}
	offset, err := queryOffset(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	status := models.ConversationStatus(r.URL.Query().Get("status"))
	switch status {
	case "", models.StatusActive, models.StatusCompleted, models.StatusAbandoned:
	default:
		log.Warn("invalid conversation status filter: %s", status)
		handleError(w, r, errors.NewValidationError("status", "must be active, completed or abandoned"))
		return
	}

	convs, err := s.ConversationService.ListConversations(r.Context(), models.ConversationFilter{
		UserID: r.URL.Query().Get("userId"),
		Status: status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, map[string]any{"conversations": convs})
}
