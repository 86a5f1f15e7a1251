package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/RubachokBoss/hostel-report-service/internal/config"
	"github.com/RubachokBoss/hostel-report-service/internal/delivery/httpd"
	"github.com/RubachokBoss/hostel-report-service/internal/middleware"
	"github.com/RubachokBoss/hostel-report-service/internal/server"
	"github.com/RubachokBoss/hostel-report-service/internal/service"
	"github.com/RubachokBoss/hostel-report-service/internal/service/document"
	"github.com/RubachokBoss/hostel-report-service/internal/service/integration"
	"github.com/RubachokBoss/hostel-report-service/internal/service/verification"
	"github.com/RubachokBoss/hostel-report-service/internal/staticfs"
	"github.com/RubachokBoss/hostel-report-service/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type App struct {
	server         *server.Server
	logger         zerolog.Logger
	address        string
	pool           *worker.WorkerPool
	rabbitmqClient integration.RabbitMQClient
}

// New собирает сервис отчетов: PDF-эндпоинты, health и статика с корня
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	pool := worker.NewWorkerPool(cfg.Worker.MaxWorkers, log)
	if err := pool.Start(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to start worker pool: %w", err)
	}

	// без брокера квитанции выдаются как обычно, просто без событий
	var publisher service.ReceiptEventPublisher
	var rabbitmqClient integration.RabbitMQClient
	if cfg.RabbitMQ.Enabled {
		client, err := integration.NewRabbitMQClient(integration.RabbitMQConfig{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, log)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create RabbitMQ client, receipt events disabled")
		} else {
			rabbitmqClient = client
			publisher = integration.NewAsyncPublisher(pool, client, cfg.Worker.PublishTimeout, log)
		}
	}

	composer := document.NewPDFComposer(document.PDFOptions{
		Compress: cfg.Report.Compress,
		Creator:  cfg.App.Name,
	})

	renderCfg := service.RenderConfig{
		Institution:    cfg.Report.Institution,
		ReceiptTitle:   cfg.Report.ReceiptTitle,
		CurrencySymbol: cfg.Report.CurrencySymbol,
		AuthCode:       cfg.Verification.AuthCode,
		TempDir:        cfg.Report.TempDir,
	}

	stamper := verification.NewStamper(verification.Config{
		Mode:         cfg.Verification.Mode,
		SecretKey:    cfg.Verification.SecretKey,
		CodeSalt:     cfg.Verification.CodeSalt,
		ChecksumSalt: cfg.Verification.ChecksumSalt,
		HostTag:      cfg.Verification.HostTag,
	})

	reportService := service.NewReportService(composer, renderCfg, log)
	receiptService := service.NewReceiptService(
		composer,
		stamper,
		verification.PNGEncoder{Size: cfg.Verification.QRSize},
		publisher,
		renderCfg,
		log,
	)

	store, err := NewAssetStore(cfg.Static, log)
	if err != nil {
		pool.Stop()
		return nil, err
	}

	handler := httpd.NewHandler(
		reportService,
		receiptService,
		staticfs.NewHandler(store, log),
		httpd.Options{
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			MaxBodySize: cfg.Server.MaxUploadSize,
		},
		log,
	)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	srv := server.NewServer(server.ServerConfig{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, router, log)

	srv.SetupMiddleware(
		middleware.NewCORS(middleware.CORSOptions{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			ExposedHeaders:   cfg.CORS.ExposedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
		}),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
	)

	return &App{
		server:         srv,
		logger:         log,
		address:        cfg.Server.Address,
		pool:           pool,
		rabbitmqClient: rabbitmqClient,
	}, nil
}

// NewStatic собирает отдельный файловый сервер с разрешающими CORS-заголовками
func NewStatic(cfg *config.Config, log zerolog.Logger) (*App, error) {
	store, err := NewAssetStore(cfg.Static, log)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	staticfs.NewHandler(store, log).RegisterRoutes(router)

	srv := server.NewServer(server.ServerConfig{
		Address:      cfg.Static.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}, router, log)

	srv.SetupMiddleware(
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		staticfs.PermissiveCORS,
	)

	return &App{
		server:  srv,
		logger:  log,
		address: cfg.Static.Address,
	}, nil
}

func NewAssetStore(cfg config.StaticConfig, log zerolog.Logger) (staticfs.AssetStore, error) {
	switch cfg.Provider {
	case "minio":
		store, err := staticfs.NewMinIOStore(staticfs.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
			Prefix:    cfg.MinIO.Prefix,
			Index:     cfg.Index,
		}, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "fs", "":
		log.Info().Str("root", cfg.Root).Msg("Serving static assets from directory")
		return staticfs.NewDirStore(cfg.Root, cfg.Index), nil
	default:
		return nil, fmt.Errorf("unsupported static provider %q", cfg.Provider)
	}
}

func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Listening on %s", a.address)
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)

	// пул дожидается отправки уже принятых событий
	if a.pool != nil {
		if stopErr := a.pool.Stop(); stopErr != nil {
			a.logger.Error().Err(stopErr).Msg("Failed to stop worker pool")
		}
	}

	if a.rabbitmqClient != nil {
		if closeErr := a.rabbitmqClient.Close(); closeErr != nil {
			a.logger.Error().Err(closeErr).Msg("Failed to close RabbitMQ connection")
		}
	}

	return err
}
