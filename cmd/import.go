package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/config"
	"github.com/helpdesk-portal/helpdesk-service/internal/database"
	"github.com/helpdesk-portal/helpdesk-service/internal/importer"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"github.com/helpdesk-portal/helpdesk-service/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var importActorID int64

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import tickets from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().Int64Var(&importActorID, "actor", 0, "user id the import runs as (falls back as creator for unresolvable rows)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Open(cfg.DSN())
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	actor := policy.Actor{UserID: importActorID, Role: model.RoleAdmin}
	result, err := importer.New(importer.NewStore(db), log).Run(ctx, actor, f)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	log.Info().Int("processed", result.Processed).Int("created", result.Created).Int("errors", len(result.Errors)).Msg(result.Message)
	for _, e := range result.Errors {
		log.Warn().Msg(e)
	}
	return nil
}
