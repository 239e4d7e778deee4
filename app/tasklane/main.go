package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jharlan/tasklane/app/tasklane/api"
	"github.com/jharlan/tasklane/app/tasklane/config"
	"github.com/jharlan/tasklane/bridge/scaffolding/mid"
	"github.com/jharlan/tasklane/core/repositories"
	"github.com/jharlan/tasklane/core/usecases"
	"github.com/jharlan/tasklane/infrastructure/postgresdb"
	"github.com/jharlan/tasklane/infrastructure/web"
	"github.com/jharlan/tasklane/infrastructure/workers"
	"github.com/jharlan/tasklane/sdk/environment"
	"github.com/jharlan/tasklane/sdk/logger"
)

var build = "develop"

const appName = "TASKLANE"

func main() {
	environment.Load()
	ctx := context.Background()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}

	if err := run(ctx, log); err != nil {
		log.ErrorContext(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	log.InfoContext(ctx, "startup", "GOMAXPROCS", runtime.GOMAXPROCS(0), "build", build)

	pool, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
	if err != nil {
		return fmt.Errorf("configuring postgres support: %w", err)
	}
	defer func() {
		log.InfoContext(ctx, "shutdown", "status", "closing database connection")
		pool.Close()
	}()

	log.InfoContext(ctx, "startup", "status", "initializing repository support")
	pg := repositories.NewPostgres(log, pool)

	uc := usecases.New(usecases.Config{
		Log:        log,
		Repos:      pg.Repos(),
		Transactor: pg,
		Clock:      usecases.UTCClock{},
	})

	webHandler, err := web.NewWebHandlerFromEnv(appName,
		web.WithLogging(log),
		web.WithGlobalMiddleware(mid.Logger(log), mid.Errors(log), mid.Panics()),
	)
	if err != nil {
		return fmt.Errorf("webhandler: %w", err)
	}

	api.AddRoutes(webHandler, config.Tasklane{
		Build:    build,
		Log:      log,
		Usecases: uc,
	})

	server, err := web.NewServerFromEnv(appName,
		web.WithHandler(webHandler),
		web.WithErrorLog(logger.NewStdLogger(log, slog.LevelError)),
	)
	if err != nil {
		return fmt.Errorf("webserver: %w", err)
	}

	sweeperStop, err := startSweeper(ctx, log, pg)
	if err != nil {
		return fmt.Errorf("sweeper: %w", err)
	}
	if sweeperStop != nil {
		defer sweeperStop()
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "startup", "status", "api router started", "host", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.InfoContext(ctx, "shutdown", "status", "shutdown started", "signal", sig)
		defer log.InfoContext(ctx, "shutdown", "status", "shutdown complete", "signal", sig)

		ctx, cancel := context.WithTimeout(ctx, server.Config.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			server.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// startSweeper runs the overdue-task worker pool when SWEEPER_ENABLED is
// set. The returned stop func is nil when the sweeper is disabled.
func startSweeper(ctx context.Context, log *logger.Logger, pg *repositories.Postgres) (func(), error) {
	enabled := environment.GetPrefixEnvOrDefault(appName, "SWEEPER_ENABLED", "false")
	if enabled != "true" {
		return nil, nil
	}

	sweeper := usecases.NewOverdueSweeper(log, usecases.Config{
		Log:        log,
		Repos:      pg.Repos(),
		Transactor: pg,
		Clock:      usecases.UTCClock{},
	})

	pool, err := workers.NewFromEnv(appName, sweeper, workers.WithLogger(log))
	if err != nil {
		return nil, err
	}

	go func() {
		if err := pool.Start(ctx); err != nil {
			log.ErrorContext(ctx, "sweeper pool stopped", "err", err)
		}
	}()
	log.InfoContext(ctx, "startup", "status", "overdue sweeper started")

	return pool.Stop, nil
}
