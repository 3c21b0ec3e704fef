package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/kaiwa/internal/ai"
	"github.com/vytor/kaiwa/internal/api"
	"github.com/vytor/kaiwa/internal/db"
	"github.com/vytor/kaiwa/internal/jobs"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/repository/sqlite"
	"github.com/vytor/kaiwa/internal/services"
	"github.com/vytor/kaiwa/internal/speech"
	"github.com/vytor/kaiwa/internal/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.Default()
	defer log.Sync()

	log.Info("===========================================")
	log.Info("Kaiwa Server Starting")
	log.Info("===========================================")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("gemini_model=%s", cfg.GeminiModel)
	log.Debug("vertex_ai=%t", cfg.UseVertexAI())
	log.Debug("ai_timeout=%s", cfg.AITimeout)
	log.Debug("ai_max_attempts=%d", cfg.AIMaxAttempts)
	log.Debug("speech_enabled=%t", cfg.SpeechEnabled)
	log.Debug("abandon_after=%s", cfg.AbandonAfter)

	ctx, cancel := context.WithCancel(logger.NewContext(context.Background(), log))
	defer cancel()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	gemini, err := ai.NewGeminiProvider(ctx, ai.GeminiConfig{
		APIKey:   cfg.GeminiAPIKey,
		Project:  cfg.GoogleProjectID,
		Location: cfg.VertexAILocation,
		Model:    cfg.GeminiModel,
	})
	if err != nil {
		return fmt.Errorf("init generative model: %w", err)
	}
	tutor := ai.NewTutor(ai.WithRetry(gemini, ai.DefaultRetryConfig(cfg.AIMaxAttempts)), cfg.AITimeout)

	var speechClient speech.Client
	if cfg.SpeechEnabled {
		speechClient, err = speech.NewGoogleClient(ctx, speech.ClientOptions(cfg.CredentialsJSON, cfg.CredentialsFile)...)
		if err != nil {
			// Speech endpoints answer 503 without a client.
			log.Warn("speech disabled: %v", err)
		} else {
			defer speechClient.Close()
		}
	}

	conversationRepo := sqlite.NewConversationRepository(database.DB)
	analysisRepo := sqlite.NewAnalysisRepository(database.DB)
	materialRepo := sqlite.NewMaterialRepository(database.DB)

	conversationService := services.NewConversationService(conversationRepo, analysisRepo, tutor)

	srv := &api.Server{
		RecommendationService: services.NewRecommendationService(analysisRepo, conversationRepo),
		ConversationService:   conversationService,
		AnalysisService:       services.NewAnalysisService(analysisRepo),
		MaterialService:       services.NewMaterialService(materialRepo, analysisRepo, tutor),
		SpeechService:         services.NewSpeechService(speechClient),
		DB:                    database,
		RequestTimeout:        cfg.RequestTimeout,
	}

	pool := worker.NewPool(1, 4)
	pool.Start(ctx)
	queue := jobs.NewWorkerQueue(pool, conversationService, cfg.AbandonAfter)
	if err := queue.EnqueueAbandonSweep(); err != nil {
		log.Warn("initial abandon sweep not queued: %v", err)
	}
	go jobs.Schedule(ctx, queue, cfg.SweepInterval)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case sig := <-stop:
		log.Info("received signal %v, initiating graceful shutdown", sig)
	case err := <-serverErr:
		if err != nil {
			log.Error("HTTP server error: %v", err)
			cancel()
			pool.Stop()
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping background jobs")
	cancel()
	pool.Stop()

	log.Info("Kaiwa Server Stopped")
	return nil
}
