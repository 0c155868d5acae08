package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sudface/frequency/gtfsdb"
	"github.com/sudface/frequency/internal/appconf"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/logging"
	"github.com/sudface/frequency/internal/metrics"
)

// BuildApplication loads the profiles and the feed described by cfg. The
// feed is read from the SQLite store when cfg.DBPath is set, otherwise from
// cfg.FeedPath. The returned close function stops background reloads and
// releases the store.
func BuildApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger, collector *metrics.Collector) (*Application, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	profiles, err := appconf.LoadProfiles(cfg.ProfilesFile)
	if err != nil {
		return nil, nil, err
	}

	gtfsConfig := gtfs.Config{
		Source:          cfg.FeedPath,
		RefreshInterval: cfg.RefreshInterval,
		Verbose:         true,
	}

	var loader gtfs.TableLoader
	closeStore := func() {}
	if cfg.DBPath != "" {
		client, err := gtfsdb.NewClient(gtfsdb.NewConfig(cfg.DBPath, cfg.Env, true))
		if err != nil {
			return nil, nil, fmt.Errorf("error opening GTFS database: %w", err)
		}
		loader = client
		closeStore = func() { logging.SafeCloseWithLogging(client, logger, "gtfs_database") }
		gtfsConfig.Source = cfg.DBPath
		gtfsConfig.RefreshInterval = 0
	}

	manager, err := gtfs.InitGTFSManager(logging.WithLogger(ctx, logger), gtfsConfig, loader, logger)
	if collector != nil {
		collector.FeedLoaded(err, time.Now())
	}
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	if collector != nil {
		manager.OnReload(func(*gtfs.Feed) {
			collector.FeedLoaded(nil, manager.LastUpdated())
		})
	}

	app := &Application{
		Config:      cfg,
		GtfsConfig:  gtfsConfig,
		Logger:      logger,
		GtfsManager: manager,
		Metrics:     collector,
		Profiles:    profiles,
	}
	return app, func() {
		manager.Shutdown()
		closeStore()
	}, nil
}
