// Package server wires the auth service together: it opens the store, runs
// migrations, builds the user service and runs the HTTP API next to the
// gRPC health server until a signal arrives.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/courseauth/internal/logging"
	"github.com/dmitrijs2005/courseauth/internal/server/avatars"
	"github.com/dmitrijs2005/courseauth/internal/server/config"
	"github.com/dmitrijs2005/courseauth/internal/server/httpapi"
	"github.com/dmitrijs2005/courseauth/internal/server/metrics"
	"github.com/dmitrijs2005/courseauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/courseauth/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/courseauth/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	store      repomanager.RepositoryManager
	httpServer *httpapi.Server
	grpcServer *gs.HealthServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {

	logger := logging.NewJSONLogger(logOut, c.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	store, err := repomanager.OpenWithRetry(ctx, c.DatabaseDSN, c.DatabaseName, c.StoreConnectTimeout, logger.With("module", "repomanager"))
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := store.RunMigrations(ctx); err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("migration error: %w", err)
	}

	resolver, err := avatars.NewResolver(ctx, c)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("avatar resolver init error: %w", err)
	}

	us, err := services.NewUserService(store, resolver, c, logger)
	if err != nil {
		_ = store.Close(ctx)
		return nil, fmt.Errorf("user service init error: %w", err)
	}

	reg, m := metrics.NewRegistry()

	app := &App{
		config:     c,
		logger:     logger,
		store:      store,
		httpServer: httpapi.NewServer(c, logger, us, store, reg, m),
	}
	if c.EndpointAddrGRPC != "" {
		app.grpcServer = gs.NewHealthServer(c.EndpointAddrGRPC, logger, store, c.HealthCheckInterval, m)
	}

	return app, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run blocks until ctx is canceled, a signal arrives or a server fails.
// It returns the first server error, if any.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	start := func(name string, run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(ctx); err != nil {
				app.logger.Error(ctx, "server failed", "server", name, "error", err)
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("%s: %w", name, err)
				}
				mu.Unlock()
				cancelFunc()
			}
		}()
	}

	start("http", app.httpServer.Run)
	if app.grpcServer != nil {
		start("grpc", app.grpcServer.Run)
	}

	wg.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.store.Close(closeCtx); err != nil {
		app.logger.Error(closeCtx, "store close error", "error", err)
		firstErr = errors.Join(firstErr, err)
	}

	app.logger.Info(closeCtx, "App stopped")

	return firstErr
}
