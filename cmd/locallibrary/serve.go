package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/locallibrary/internal/config"
	"github.com/deppfellow/locallibrary/internal/database"
	"github.com/deppfellow/locallibrary/internal/handler"
	"github.com/deppfellow/locallibrary/internal/metrics"
	"github.com/deppfellow/locallibrary/internal/repository"
	"github.com/deppfellow/locallibrary/internal/repository/memory"
	"github.com/deppfellow/locallibrary/internal/repository/mongostore"
	"github.com/deppfellow/locallibrary/internal/router"
	"github.com/deppfellow/locallibrary/internal/server"
	"github.com/deppfellow/locallibrary/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the catalog web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), skipMigrate)
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "Do not apply PostgreSQL migrations on start")

	return cmd
}

func runServe(cmdCtx context.Context, skipMigrate bool) error {
	if cmdCtx == nil {
		cmdCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	if cfg.Database.Driver == config.DriverPostgres && !skipMigrate {
		if err := database.Migrate(ctx, &log, cfg); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	repos, err := newRepositories(ctx, srv)
	if err != nil {
		return err
	}

	services, err := service.NewService(srv, repos)
	if err != nil {
		return fmt.Errorf("initialize services: %w", err)
	}

	m := metrics.New()
	r, err := router.NewRouter(srv, handler.NewHandlers(srv, services, m), m)
	if err != nil {
		return fmt.Errorf("initialize router: %w", err)
	}

	srv.SetupHTTPServer(r)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

// newRepositories picks the store implementation for the configured driver.
func newRepositories(ctx context.Context, srv *server.Server) (*repository.Repositories, error) {
	switch srv.Config.Database.Driver {
	case config.DriverPostgres:
		return repository.NewRepositories(srv), nil
	case config.DriverMongo:
		if err := mongostore.EnsureIndexes(ctx, srv.Mongo.DB); err != nil {
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return mongostore.NewRepositories(srv.Mongo.DB), nil
	default:
		return memory.NewRepositories(), nil
	}
}
