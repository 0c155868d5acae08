package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sudface/frequency/gtfsdb"
	"github.com/sudface/frequency/internal/app"
	"github.com/sudface/frequency/internal/appconf"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/logging"
	"github.com/sudface/frequency/internal/metrics"
	"github.com/sudface/frequency/internal/schedule"
	"github.com/sudface/frequency/internal/utils"
)

const (
	modeInspect = "inspect"
	modeImport  = "import"
)

type options struct {
	cfg  *appconf.Config
	mode string
	date gtfs.Date
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	cfg, err := appconf.Load()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("frequency", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var env, date, mode, routeTypes string
	fs.StringVar(&mode, "mode", string(app.ModeWeekday), "weekday, weekend, details, inspect, import or a profile name")
	fs.StringVar(&date, "date", "today", "Service date (YYYYMMDD, YYYY-MM-DD or today)")
	fs.StringVar(&env, "env", cfg.Env.String(), "Environment (development|test|production)")
	fs.StringVar(&cfg.FeedPath, "feed", cfg.FeedPath, "GTFS feed directory, zip file or zip URL")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database; target of import, source of every other mode")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory")
	fs.StringVar(&cfg.ProfilesFile, "profiles", cfg.ProfilesFile, "YAML file with extra window profiles")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&routeTypes, "route-types", "", "Comma separated eligible route_type values")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg.Env = appconf.EnvFlagToEnvironment(env)
	cfg.RefreshInterval = 0
	if routeTypes != "" {
		if cfg.RouteTypes, err = appconf.ParseRouteTypes(routeTypes); err != nil {
			return nil, err
		}
	}

	d, fieldErrors, ok := utils.ParseDateParameter("date", date, time.Local)
	if !ok {
		return nil, fmt.Errorf("%s", strings.Join(fieldErrors["date"], " "))
	}

	return &options{cfg: cfg, mode: strings.ToLower(strings.TrimSpace(mode)), date: d}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	level, err := logging.ParseLevel(opts.cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.NewStructuredLogger(stderr, level)
	ctx = logging.WithLogger(ctx, logger)

	switch opts.mode {
	case modeInspect:
		return inspect(ctx, opts.cfg.FeedPath, stdout)
	case modeImport:
		return importFeed(ctx, opts.cfg, logger)
	}

	application, closeApp, err := app.BuildApplication(ctx, *opts.cfg, logger, metrics.NewCollector())
	if err != nil {
		logging.LogError(logger, "failed to initialize application", err)
		return err
	}
	defer closeApp()

	summary, err := application.Run(ctx, app.Mode(opts.mode), opts.date)
	if errors.Is(err, schedule.ErrNoActiveServices) {
		fmt.Fprintf(stdout, "No matching services for %s (%s)\n", opts.date, opts.date.Weekday())
		return err
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s %s: %d services, %d trips, %d stops -> %s\n",
		summary.Mode, summary.Date, summary.ActiveServices, summary.RetainedTrips,
		summary.StopsEmitted, summary.Output)
	return nil
}

func inspect(ctx context.Context, source string, stdout io.Writer) error {
	summary, err := gtfs.Inspect(ctx, source, nil)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func importFeed(ctx context.Context, cfg *appconf.Config, logger *slog.Logger) error {
	if cfg.DBPath == "" {
		return errors.New("import requires -db")
	}

	client, err := gtfsdb.NewClient(gtfsdb.NewConfig(cfg.DBPath, cfg.Env, true))
	if err != nil {
		return err
	}
	defer logging.SafeCloseWithLogging(client, logger, "gtfs_database")

	imported, err := client.ImportFromSource(ctx, cfg.FeedPath)
	if err != nil {
		return err
	}

	counts, err := client.TableCounts(ctx)
	if err != nil {
		return err
	}
	attrs := []slog.Attr{
		slog.String("db", cfg.DBPath),
		slog.Bool("imported", imported),
		slog.Duration("duration", client.ImportRuntime()),
	}
	for table, n := range counts {
		attrs = append(attrs, slog.Int(table, n))
	}
	logging.LogOperation(logger, "gtfs_database_ready", attrs...)
	return nil
}
