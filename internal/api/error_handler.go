package api

import (
	"encoding/json"
	"net/http"

	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/logger"
)

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleError centralizes error handling for HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	writeError(w, appErr)
}

func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	writeJSON(w, appErr.Status, envelope{
		Success: false,
		Error:   &errorBody{Code: appErr.Code, Message: appErr.Message},
	})
}

func writeSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, envelope{Success: true, Data: data}); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, envelope{
		Success: false,
		Error:   &errorBody{Code: errors.ErrCodeBadRequest, Message: "method not allowed"},
	})
}
