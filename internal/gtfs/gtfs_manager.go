package gtfs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sudface/frequency/internal/logging"
)

// TableLoader produces the raw tables of a feed.
type TableLoader interface {
	LoadTables(ctx context.Context) (*Tables, error)
}

// SourceLoader loads tables from a directory, zip file or zip URL.
type SourceLoader struct {
	Source string
	Client *http.Client
}

func (l SourceLoader) LoadTables(ctx context.Context) (*Tables, error) {
	return LoadTables(ctx, l.Source, l.Client)
}

// Manager owns the current Feed. Readers get an immutable snapshot; a reload
// swaps the snapshot and notifies subscribers.
type Manager struct {
	config      Config
	loader      TableLoader
	logger      *slog.Logger
	feed        *Feed
	lastUpdated time.Time
	mu          sync.RWMutex

	onReload     []func(*Feed)
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	shutdownOnce sync.Once
}

// InitGTFSManager loads the feed once and, for remote sources with a refresh
// interval, keeps reloading it in the background until Shutdown.
func InitGTFSManager(ctx context.Context, config Config, loader TableLoader, logger *slog.Logger) (*Manager, error) {
	if loader == nil {
		loader = SourceLoader{Source: config.Source}
	}
	if logger == nil {
		logger = slog.Default()
	}

	manager := &Manager{
		config:       config,
		loader:       loader,
		logger:       logger.With(slog.String("component", "gtfs_manager")),
		shutdownChan: make(chan struct{}),
	}

	if err := manager.Reload(ctx); err != nil {
		return nil, err
	}

	if config.refreshEnabled() {
		manager.wg.Add(1)
		go manager.updateStaticGTFS()
	}

	return manager, nil
}

// Reload loads and indexes the tables again and swaps them in.
func (manager *Manager) Reload(ctx context.Context) error {
	start := time.Now()
	tables, err := manager.loader.LoadTables(logging.WithLogger(ctx, manager.logger))
	if err != nil {
		return fmt.Errorf("error loading GTFS tables: %w", err)
	}
	feed, err := NewFeed(tables)
	if err != nil {
		return fmt.Errorf("error indexing GTFS tables: %w", err)
	}

	manager.mu.Lock()
	manager.feed = feed
	manager.lastUpdated = time.Now()
	subscribers := append([]func(*Feed){}, manager.onReload...)
	manager.mu.Unlock()

	for _, fn := range subscribers {
		fn(feed)
	}

	if manager.config.Verbose {
		logging.LogOperation(manager.logger, "gtfs_feed_loaded",
			slog.String("source", manager.config.Source),
			slog.Int("stops", len(tables.Stops)),
			slog.Int("trips", len(tables.Trips)),
			slog.Int("stop_times", len(tables.StopTimes)),
			slog.Duration("duration", time.Since(start)))
	}
	return nil
}

// OnReload registers fn to be called with every newly loaded feed.
func (manager *Manager) OnReload(fn func(*Feed)) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	manager.onReload = append(manager.onReload, fn)
}

func (manager *Manager) Feed() *Feed {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.feed
}

func (manager *Manager) LastUpdated() time.Time {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return manager.lastUpdated
}

func (manager *Manager) updateStaticGTFS() {
	defer manager.wg.Done()

	ticker := time.NewTicker(manager.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			err := manager.Reload(ctx)
			cancel()
			if err != nil {
				// keep serving the previous feed
				logging.LogError(manager.logger, "error updating GTFS data", err,
					slog.String("source", manager.config.Source))
			}
		case <-manager.shutdownChan:
			logging.LogOperation(manager.logger, "static_gtfs_updates_stopped")
			return
		}
	}
}

// Shutdown stops background reloads.
func (manager *Manager) Shutdown() {
	manager.shutdownOnce.Do(func() {
		close(manager.shutdownChan)
		manager.wg.Wait()
	})
}
