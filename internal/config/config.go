package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/oomerozdemir/TUAgiyim-frontend-sub000/pkg/config"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the storefront process.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// UI API
	HTTPPort           int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	CatalogCacheSecs   int      `env:"CATALOG_CACHE_SECONDS" envDefault:"60"`
	AuthRateLimitRPS   float64  `env:"AUTH_RATE_LIMIT_RPS" envDefault:"1"`
	AuthRateLimitBurst int      `env:"AUTH_RATE_LIMIT_BURST" envDefault:"5"`

	// Backend
	APIBase            string `env:"VITE_API_BASE" envDefault:"http://localhost:4000"`
	HTTPTimeoutSecs    int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"15"`
	HTTPMaxRetries     int    `env:"HTTP_MAX_RETRIES" envDefault:"2"`
	RefreshTimeoutSecs int    `env:"REFRESH_TIMEOUT_SECONDS" envDefault:"10"`
	PaymentPageURL     string `env:"PAYMENT_PAGE_URL" envDefault:"https://www.paytr.com/odeme/guvenli/"`

	// Local storage
	StorageBackend   string `env:"STORAGE_BACKEND" envDefault:"file"`
	StorageDir       string `env:"STORAGE_DIR" envDefault:".storefront"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:".storefront/storefront.db"`
	StorageNamespace string `env:"STORAGE_NAMESPACE" envDefault:"storefront"`
	StorageSlowOpMs  int    `env:"STORAGE_SLOW_OP_MS" envDefault:"100"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Observability
	OTELEnabled       bool     `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint      string   `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate    float64  `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
	PprofEnabled      bool     `env:"PPROF_ENABLED" envDefault:"false"`
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return load()
}

func load(opts ...pkgconfig.Option) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, opts...); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if u, err := url.Parse(c.APIBase); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid VITE_API_BASE: %q", c.APIBase)
	}
	switch c.StorageBackend {
	case StorageMemory, StorageFile, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend: %q", c.StorageBackend)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be within [0, 1], got %v", c.OTELSampleRate)
	}
	if c.HTTPMaxRetries < 0 {
		return fmt.Errorf("invalid HTTP_MAX_RETRIES: %d", c.HTTPMaxRetries)
	}
	return nil
}

// HTTPTimeout is the per-request timeout towards the backend.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSecs) * time.Second
}

// RefreshTimeout bounds one credential refresh call.
func (c *Config) RefreshTimeout() time.Duration {
	return time.Duration(c.RefreshTimeoutSecs) * time.Second
}

// StorageSlowOp is the duration above which a storage operation is logged.
func (c *Config) StorageSlowOp() time.Duration {
	return time.Duration(c.StorageSlowOpMs) * time.Millisecond
}
