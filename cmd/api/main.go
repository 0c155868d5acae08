package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sudface/frequency/internal/app"
	"github.com/sudface/frequency/internal/appconf"
	"github.com/sudface/frequency/internal/logging"
	"github.com/sudface/frequency/internal/metrics"
	"github.com/sudface/frequency/internal/restapi"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// parseConfig reads the environment and lets command line flags override it.
func parseConfig(args []string) (*appconf.Config, error) {
	cfg, err := appconf.Load()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	var env, apiKeys string
	fs.IntVar(&cfg.Port, "port", cfg.Port, "API server port")
	fs.StringVar(&env, "env", cfg.Env.String(), "Environment (development|test|production)")
	fs.StringVar(&apiKeys, "api-keys", strings.Join(cfg.ApiKeys, ","), "Comma separated API keys; empty leaves the API open")
	fs.StringVar(&cfg.FeedPath, "feed", cfg.FeedPath, "GTFS feed directory, zip file or zip URL")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database written by the import mode, read instead of -feed")
	fs.StringVar(&cfg.ProfilesFile, "profiles", cfg.ProfilesFile, "YAML file with extra window profiles")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second per client")
	fs.DurationVar(&cfg.RefreshInterval, "refresh", cfg.RefreshInterval, "Reload interval for feed URLs, 0 disables")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Env = appconf.EnvFlagToEnvironment(env)
	cfg.ApiKeys = appconf.SplitList(apiKeys)
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewStructuredLogger(stdout, level)

	application, closeApp, err := app.BuildApplication(ctx, *cfg, logger, metrics.NewCollector())
	if err != nil {
		logging.LogError(logger, "failed to initialize application", err)
		return err
	}
	defer closeApp()

	api := restapi.NewRestAPI(application)
	defer api.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	logging.LogOperation(logger, "starting_server",
		slog.String("addr", srv.Addr),
		slog.String("env", cfg.Env.String()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.LogOperation(logger, "shutting_down_server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
