package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vytor/kaiwa/internal/db"
	"github.com/vytor/kaiwa/internal/logger"
	"github.com/vytor/kaiwa/internal/repository/sqlite"
	"github.com/vytor/kaiwa/internal/services"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Print the recommendation bundle for a user as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return runRecommend(cmd, userID)
	},
}

func init() {
	recommendCmd.Flags().String("user", "", "User ID to build recommendations for")
	_ = recommendCmd.MarkFlagRequired("user")
}

func runRecommend(cmd *cobra.Command, userID string) error {
	cfg := loadConfig(cmd)
	log := logger.Default()
	defer log.Sync()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	svc := services.NewRecommendationService(
		sqlite.NewAnalysisRepository(database.DB),
		sqlite.NewConversationRepository(database.DB),
	)

	ctx := logger.NewContext(context.Background(), log)
	bundle, err := svc.GetRecommendationsForUser(ctx, userID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}
