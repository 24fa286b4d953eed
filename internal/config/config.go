package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Graph   GraphConfig
	Logging LoggingConfig
	Dataset DatasetConfig
	Search  SearchConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MetricsEnabled    bool
	AllowedOriginsCSV string
}

// GraphConfig describes connectivity to the Neo4j database holding the
// people/movies graph. An empty URI means the CSV dataset is used instead.
type GraphConfig struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
	QueryTimeout   time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

// DatasetConfig points at the CSV relations loaded at startup.
type DatasetConfig struct {
	Dir string
}

// SearchConfig tunes the shortest-path search.
type SearchConfig struct {
	// MaxDepth bounds the hops explored per search; zero is unbounded.
	MaxDepth int
}

const (
	defaultDatasetDir       = "data/large"
	defaultHost             = "0.0.0.0"
	defaultPort             = 8080
	defaultReadTimeout      = 10 * time.Second
	defaultWriteTimeout     = 15 * time.Second
	defaultIdleTimeout      = 60 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoggingLevel     = "info"
	defaultLoggingFormat    = "text"
	defaultGraphMaxSessions = 10
)

// Load reads configuration from environment variables, applying defaults.
// Every malformed variable is reported, not just the first.
func Load() (Config, error) {
	var env envReader

	cfg := Config{
		HTTP: HTTPConfig{
			Host:              env.str("SERVER_HOST", defaultHost),
			Port:              env.intRange("SERVER_PORT", defaultPort, 1, 65535),
			ReadTimeout:       env.duration("SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:      env.duration("SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:       env.duration("SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout:   env.duration("SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
			MetricsEnabled:    env.boolean("SERVER_METRICS_ENABLED", false),
			AllowedOriginsCSV: env.str("SERVER_ALLOWED_ORIGINS", ""),
		},
		Graph: GraphConfig{
			URI:            env.str("GRAPH_URI", ""),
			Database:       env.str("GRAPH_DATABASE", ""),
			Username:       env.str("GRAPH_USERNAME", ""),
			Password:       env.str("GRAPH_PASSWORD", ""),
			MaxConnections: env.intRange("GRAPH_MAX_CONNECTIONS", defaultGraphMaxSessions, 1, math.MaxInt32),
			QueryTimeout:   env.duration("GRAPH_QUERY_TIMEOUT", 0),
		},
		Logging: LoggingConfig{
			Level:         env.str("LOG_LEVEL", defaultLoggingLevel),
			Format:        env.str("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: env.boolean("LOG_INCLUDE_CALLER", false),
		},
		Dataset: DatasetConfig{
			Dir: env.str("DATASET_DIR", defaultDatasetDir),
		},
		Search: SearchConfig{
			MaxDepth: env.intRange("SEARCH_MAX_DEPTH", 0, 0, math.MaxInt32),
		},
	}

	if err := env.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envReader reads typed variables and collects parse failures.
type envReader struct {
	errs []error
}

func (e *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e *envReader) boolean(key string, fallback bool) bool {
	v := e.str(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s value %q: %w", key, v, err))
		return fallback
	}
	return b
}

func (e *envReader) intRange(key string, fallback, lo, hi int) int {
	v := e.str(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s value %q: %w", key, v, err))
		return fallback
	}
	if n < lo || n > hi {
		e.errs = append(e.errs, fmt.Errorf("%s must be between %d and %d, got %d", key, lo, hi, n))
		return fallback
	}
	return n
}

func (e *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	if d < 0 {
		e.errs = append(e.errs, fmt.Errorf("%s must not be negative, got %s", key, d))
		return fallback
	}
	return d
}

func (e *envReader) err() error {
	return errors.Join(e.errs...)
}
