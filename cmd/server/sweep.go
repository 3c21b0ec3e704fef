package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vytor/kaiwa/internal/db"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/repository/sqlite"
	"github.com/vytor/kaiwa/internal/services"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mark long-idle active conversations as abandoned",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSweep(cmd)
	},
}

func init() {
	sweepCmd.Flags().Duration("older-than", 0, "Abandon conversations started longer ago than this (default ABANDON_AFTER)")
}

func runSweep(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)
	log := logger.Default()
	defer log.Sync()

	maxAge := cfg.AbandonAfter
	if d, _ := cmd.Flags().GetDuration("older-than"); d > 0 {
		maxAge = d
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	// The sweep never talks to the tutor.
	svc := services.NewConversationService(
		sqlite.NewConversationRepository(database.DB),
		sqlite.NewAnalysisRepository(database.DB),
		nil,
	)

	ctx := logger.NewContext(context.Background(), log)
	closed, err := svc.AbandonStale(ctx, time.Now().UTC().Add(-maxAge))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "abandoned %d conversations\n", closed)
	return nil
}
