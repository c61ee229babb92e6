package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/sports-federation/internal/config"
	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/handler"
	"github.com/deppfellow/sports-federation/internal/logger"
	"github.com/deppfellow/sports-federation/internal/middleware"
	"github.com/deppfellow/sports-federation/internal/repository"
	"github.com/deppfellow/sports-federation/internal/router"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/deppfellow/sports-federation/internal/service"
	"github.com/rs/zerolog"
)

const (
	migrateTimeout  = time.Minute
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to initialize New Relic")
	}
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if err := run(cfg, &log, loggerService); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		loggerService.Shutdown()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Primary.Env != "local" {
		migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		err := database.Migrate(migrateCtx, log, cfg)
		cancel()
		if err != nil {
			return err
		}
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(srv)
	services, err := service.NewService(srv, repos)
	if err != nil {
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv, services.Auth)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers, middlewares))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
