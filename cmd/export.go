package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/config"
	"github.com/helpdesk-portal/helpdesk-service/internal/database"
	"github.com/helpdesk-portal/helpdesk-service/internal/exporter"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/helpdesk-portal/helpdesk-service/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.csv>",
	Short: "Export all tickets to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
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

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	exp := exporter.New(service.NewTicketService(db, log))
	n, err := exp.Write(ctx, policy.Actor{Role: model.RoleAdmin}, f)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	log.Info().Int("tickets", n).Str("file", args[0]).Msg("export complete")
	return nil
}
