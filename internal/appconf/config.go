package appconf

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sudface/frequency/internal/schedule"
)

// Config holds the settings shared by the CLI and the API server. Values come
// from the environment (optionally a .env file); command line flags override
// them in main.
type Config struct {
	Env Environment

	// FeedPath is a feed directory, zip file or zip URL.
	FeedPath string
	// DBPath is a SQLite database written by the import mode. When set it is
	// read instead of FeedPath.
	DBPath          string
	OutputDir       string
	ProfilesFile    string
	RouteTypes      []int
	LogLevel        string
	RefreshInterval time.Duration

	Port      int
	RateLimit int
	ApiKeys   []string
	CacheSize int
}

// Load reads .env files (missing files are ignored) and the process
// environment.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Env:          EnvFlagToEnvironment(os.Getenv("ENV")),
		FeedPath:     getenvDefault("FEED_PATH", "."),
		DBPath:       os.Getenv("DB_PATH"),
		OutputDir:    getenvDefault("OUTPUT_DIR", "."),
		ProfilesFile: os.Getenv("PROFILES_FILE"),
		LogLevel:     getenvDefault("LOG_LEVEL", "info"),
		RouteTypes:   []int{schedule.BusRouteType},
		Port:         4000,
		RateLimit:    100,
		CacheSize:    32,
	}

	if v := os.Getenv("BUS_ROUTE_TYPES"); v != "" {
		types, err := ParseRouteTypes(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BUS_ROUTE_TYPES: %w", err)
		}
		cfg.RouteTypes = types
	}

	var err error
	if cfg.Port, err = getenvInt("PORT", cfg.Port, 1); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getenvInt("RATE_LIMIT", cfg.RateLimit, 1); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getenvInt("PLAN_CACHE_SIZE", cfg.CacheSize, 1); err != nil {
		return nil, err
	}

	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %q", v)
		}
		cfg.RefreshInterval = d
	}

	if v := os.Getenv("API_KEYS"); v != "" {
		cfg.ApiKeys = SplitList(v)
	}

	return cfg, nil
}

// ParseRouteTypes parses a comma separated list of route_type values.
func ParseRouteTypes(s string) ([]int, error) {
	var types []int
	for _, part := range SplitList(s) {
		t, err := strconv.Atoi(part)
		if err != nil || t < 0 {
			return nil, fmt.Errorf("invalid route type %q", part)
		}
		types = append(types, t)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("no route types in %q", s)
	}
	return types, nil
}

// SplitList splits a comma separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def, min int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return 0, fmt.Errorf("invalid %s: %q", k, v)
	}
	return n, nil
}
