package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/vytor/kaiwa/internal/errors"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/speech"
)

type synthesizeRequest struct {
	Text  string       `json:"text"`
	Voice speech.Voice `json:"voice"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		log.Warn("invalid multipart upload: %v", err)
		handleError(w, r, errors.NewBadRequestError("multipart form with an audio file is required"))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		handleError(w, r, errors.NewValidationError("audio", "Audio file is required"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("failed to read audio file"))
		return
	}

	result, err := s.SpeechService.Transcribe(r.Context(), audio, header.Header.Get("Content-Type"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeSuccess(w, r, http.StatusOK, result)
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req synthesizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	audio, err := s.SpeechService.Synthesize(r.Context(), req.Text, req.Voice)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		log.Error("failed to write audio: %v", err)
	}
}
