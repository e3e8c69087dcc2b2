package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/bcssewl/optivise-installer/internal/api/http"
	"github.com/bcssewl/optivise-installer/internal/api/middleware"
	"github.com/bcssewl/optivise-installer/internal/api/ws"
	"github.com/bcssewl/optivise-installer/internal/app"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/config"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/logging"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/monitoring"
	"github.com/bcssewl/optivise-installer/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	installer  *app.Installer
	hub        *ws.Hub
	tracer     *tracing.Tracer
	logger     *logging.Logger
	config     *config.Config
	metrics    *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, logger *logging.Logger, opts ...app.Option) (*Server, error) {
	if logger == nil {
		logger = logging.FromSettings(cfg.Logging.Level, cfg.Logging.Development)
	}

	logger.Info("Initializing installer server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("manifest_url", cfg.Manifest.URL),
		zap.Strings("supported_apps", cfg.Hosts.SupportedApps),
	)

	// Metrics first; the lifecycle manager records into them
	metrics := monitoring.NewMetrics()
	tracer := tracing.New(logger)

	installer, err := app.New(cfg, logger, append([]app.Option{app.WithRecorder(metrics)}, opts...)...)
	if err != nil {
		tracer.Close()
		return nil, err
	}

	hub := ws.NewHub(installer.Inspector, middleware.IsLocalOrigin, logger).WithMetrics(metrics)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(
		installer.Inspector,
		installer.Lifecycle,
		installer.Launcher,
		installer.Policy,
		logger,
	).WithPublisher(hub).WithBreaker(installer.Fetcher)
	handlers.Register(router)

	router.GET("/stream", hub.HandleConnection)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:    router,
		installer: installer,
		hub:       hub,
		tracer:    tracer,
		logger:    logger,
		config:    cfg,
		metrics:   metrics,
	}, nil
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until Shutdown is called
func (s *Server) Run() error {
	addr := s.config.Server.Addr()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, disconnects stream clients and
// releases background resources
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	s.hub.Close()

	var err error
	if s.httpServer != nil {
		if err = s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP shutdown failed", zap.Error(err))
		}
	}

	s.tracer.Close()
	_ = s.logger.Sync()
	return err
}
