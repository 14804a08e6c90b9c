// Package httpapi exposes the sign-up and sign-in endpoints over HTTP with
// gin, together with health probes and the Prometheus scrape endpoint.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/courseauth/internal/logging"
	"github.com/dmitrijs2005/courseauth/internal/server/config"
	"github.com/dmitrijs2005/courseauth/internal/server/metrics"
	"github.com/dmitrijs2005/courseauth/internal/server/services"
	"github.com/dmitrijs2005/courseauth/internal/server/validation"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const readinessTimeout = 2 * time.Second

// UserService is the part of services.UserService the handlers need.
type UserService interface {
	Register(ctx context.Context, req validation.RegisterRequest) (*services.AuthResult, error)
	Login(ctx context.Context, req validation.LoginRequest) (*services.AuthResult, error)
}

// Pinger reports store reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	address         string
	engine          *gin.Engine
	users           UserService
	store           Pinger
	metrics         *metrics.Metrics
	logger          logging.Logger
	legacyCodes     bool
	defaultRole     string
	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, store Pinger, reg prometheus.Gatherer, m *metrics.Metrics) *Server {
	s := &Server{
		address:         cfg.EndpointAddr,
		users:           us,
		store:           store,
		metrics:         m,
		logger:          l.With("module", "http_server"),
		legacyCodes:     cfg.LegacyStatusCodes,
		defaultRole:     cfg.DefaultRole,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	s.engine = s.initRouter(reg)
	return s
}

func (s *Server) initRouter(reg prometheus.Gatherer) *gin.Engine {
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(requestID())
	engine.Use(s.requestLogger())
	engine.Use(s.observe())
	engine.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	}))
	// promhttp negotiates its own compression
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	api := engine.Group("/api/v1/auth")
	{
		api.POST("/sign-up", s.signUp)
		api.POST("/sign-in", s.signIn)
	}

	engine.GET("/healthz/liveness", s.liveness)
	engine.GET("/healthz/readiness", s.readiness)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})))

	return engine
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully, giving
// in-flight requests up to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
