// Package server assembles the API application: config, migrations,
// database, services, event producers and the HTTP server.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/helpdesk-portal/helpdesk-service/internal/config"
	"github.com/helpdesk-portal/helpdesk-service/internal/database"
	"github.com/helpdesk-portal/helpdesk-service/internal/exporter"
	"github.com/helpdesk-portal/helpdesk-service/internal/handler"
	"github.com/helpdesk-portal/helpdesk-service/internal/importer"
	"github.com/helpdesk-portal/helpdesk-service/internal/kafka"
	"github.com/helpdesk-portal/helpdesk-service/internal/notify"
	"github.com/helpdesk-portal/helpdesk-service/internal/router"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/rs/zerolog"
)

type API struct {
	cfg      *config.Config
	log      zerolog.Logger
	httpSrv  *http.Server
	producer *kafka.Producer
}

// NewAPI wires the application for the api mode.
func NewAPI(cfg *config.Config, log zerolog.Logger) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := database.MigrateUp(cfg.DatabaseURL()); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	ticketSvc := service.NewTicketService(db, log)
	categorySvc := service.NewCategoryService(db)
	userSvc := service.NewUserService(db, log)
	faqSvc := service.NewFaqService(db)
	imp := importer.New(importer.NewStore(db), log)
	exp := exporter.New(ticketSvc)
	producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicTicket)
	notifier := notify.NewClient(cfg.NotifyServiceURL)

	deps := router.Deps{
		Auth:     handler.NewAuthHandler(userSvc, cfg.SessionSecret, cfg.SessionTTL, log),
		Ticket:   handler.NewTicketHandler(ticketSvc, imp, exp, producer, notifier, log),
		Category: handler.NewCategoryHandler(categorySvc, log),
		User:     handler.NewUserHandler(userSvc, log),
		Faq:      handler.NewFaqHandler(faqSvc, log),
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(cfg.SessionSecret, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &API{cfg: cfg, log: log, httpSrv: httpSrv, producer: producer}, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (a *API) Run(ctx context.Context) error {
	host := a.cfg.AppHost
	if host == "0.0.0.0" {
		host = "localhost"
	}
	base := "http://" + host + ":" + a.cfg.HTTPPort
	a.log.Info().Str("addr", a.httpSrv.Addr).Msg("HTTP server listening")
	a.log.Info().Str("swagger", base+"/swagger").Str("health", base+"/health").Str("api", base+"/api/v1/").Msg("endpoints")

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.producer.Close(); err != nil {
		a.log.Warn().Err(err).Msg("kafka producer close")
	}
	return nil
}
