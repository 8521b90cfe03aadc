package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/helpdesk-portal/helpdesk-service/internal/config"
	"github.com/helpdesk-portal/helpdesk-service/internal/server"
	"github.com/helpdesk-portal/helpdesk-service/pkg/logger"
	"github.com/spf13/cobra"
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the HTTP API server",
	RunE:  runAPI,
}

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	app, err := server.NewAPI(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}
