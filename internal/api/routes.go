package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)
	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}

		r.Get("/recommendations", s.handleRecommendations)

		r.Post("/conversation/start", s.handleStartConversation)
		r.Post("/conversation/message", s.handleSendMessage)
		r.Post("/conversation/end", s.handleEndConversation)
		r.Get("/conversation/{id}", s.handleGetConversation)
		r.Get("/conversation/{id}/analysis", s.handleGetConversationAnalysis)
		r.Get("/conversations", s.handleListConversations)

		r.Get("/analysis", s.handleListAnalyses)
		r.Get("/analysis/{id}", s.handleGetAnalysis)

		r.Get("/materials", s.handleListMaterials)
		r.Get("/materials/{id}", s.handleGetMaterial)
		r.Post("/materials/generate", s.handleGenerateMaterial)

		r.Post("/speech/transcribe", s.handleTranscribe)
		r.Post("/speech/synthesize", s.handleSynthesize)
	})

	return r
}
