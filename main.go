package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/RubachokBoss/hostel-report-service/internal/app"
	"github.com/RubachokBoss/hostel-report-service/internal/config"
	"github.com/RubachokBoss/hostel-report-service/pkg/logger"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log = logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create application")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	go func() {
		if err := application.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run application")
		}
	}()

	log.Info().
		Str("version", cfg.App.Version).
		Str("verification_mode", cfg.Verification.Mode).
		Msgf("%s started on %s", cfg.App.Name, cfg.Server.Address)

	<-ctx.Done()
	log.Info().Msg("Shutting down report service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("Report service stopped")
}
