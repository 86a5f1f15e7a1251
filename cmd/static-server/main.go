package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

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

	application, err := app.NewStatic(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create static server")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	go func() {
		if err := application.Run(); err != nil {
			log.Fatal().Err(err).Msg("Failed to run static server")
		}
	}()

	log.Info().
		Str("provider", cfg.Static.Provider).
		Str("root", cfg.Static.Root).
		Msgf("Static server running at %s", cfg.Static.Address)

	<-ctx.Done()
	log.Info().Msg("Shutting down static server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown gracefully")
	}

	log.Info().Msg("Static server stopped")
}
