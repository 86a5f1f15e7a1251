package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	server *http.Server
	logger zerolog.Logger
	// appRouter держит конечные маршруты; chi не позволяет вешать use после их регистрации
	appRouter chi.Router
	// rootRouter нужен для цепочки middleware, сюда монтируется appRouter
	rootRouter *chi.Mux
	mounted    bool
}

type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func NewServer(cfg ServerConfig, router chi.Router, logger zerolog.Logger) *Server {
	s := &Server{
		logger:     logger,
		appRouter:  router,
		rootRouter: chi.NewRouter(),
	}

	s.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.rootRouter,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info().Str("address", s.server.Addr).Msg("Starting server")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server")
	return s.server.Shutdown(ctx)
}

func (s *Server) Handler() http.Handler {
	return s.rootRouter
}

// SetupMiddleware навешивает middleware в переданном порядке: первый внешний.
// Nil пропускается, повторный вызов маршруты не перемонтирует.
func (s *Server) SetupMiddleware(middlewares ...func(http.Handler) http.Handler) {
	if s.mounted {
		return
	}

	s.rootRouter.Use(middleware.RequestID)
	s.rootRouter.Use(middleware.RealIP)
	s.rootRouter.Use(middleware.CleanPath)
	s.rootRouter.Use(middleware.GetHead)

	for _, mw := range middlewares {
		if mw != nil {
			s.rootRouter.Use(mw)
		}
	}

	// монтируем после навешивания middleware
	s.rootRouter.Mount("/", s.appRouter)
	s.mounted = true
}
