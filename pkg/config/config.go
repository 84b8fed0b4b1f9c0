package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Visitor VisitorConfig
	Catalog CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.NeedsDB() && cfg.DB.DSN == "" {
		return nil, fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStorageDriver, cfg.Storage.Driver)
	}
	if cfg.Storage.Driver == StorageDriverRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("either %s or %s is required when %s=redis", EnvRedisURL, EnvRedisAddr, EnvStorageDriver)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUXE_APP_ENV" default:"dev"`
	Port         string `envconfig:"LUXE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LUXE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUXE_LOG_WARN_STACK" default:"false"`
	// CORSOrigins lists the origins allowed to call /api/v1 from a browser.
	CORSOrigins []string `envconfig:"LUXE_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the backend that persists visitor carts and preferences.
type StorageConfig struct {
	Driver      string `envconfig:"LUXE_STORAGE_DRIVER" default:"memory"`
	AutoMigrate bool   `envconfig:"LUXE_STORAGE_AUTO_MIGRATE" default:"false"`
}

// NeedsDB reports whether the configured driver is backed by a SQL database.
func (s StorageConfig) NeedsDB() bool {
	switch s.normalized() {
	case StorageDriverSQLite, StorageDriverPostgres:
		return true
	}
	return false
}

func (s StorageConfig) normalized() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

func (s *StorageConfig) validate() error {
	s.Driver = s.normalized()
	for _, d := range storageDrivers {
		if s.Driver == d {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", EnvStorageDriver, strings.Join(storageDrivers, ", "), s.Driver)
}

type DBConfig struct {
	DSN string `envconfig:"LUXE_DB_DSN"`

	MaxOpenConns    int           `envconfig:"LUXE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUXE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUXE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUXE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUXE_REDIS_URL"`
	Address      string        `envconfig:"LUXE_REDIS_ADDR"`
	Password     string        `envconfig:"LUXE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUXE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUXE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUXE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUXE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUXE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUXE_REDIS_WRITE_TIMEOUT" default:"5s"`
	// EntryTTL expires idle carts; zero keeps them forever.
	EntryTTL time.Duration `envconfig:"LUXE_REDIS_ENTRY_TTL" default:"0"`
}

type VisitorConfig struct {
	Secret       string        `envconfig:"LUXE_VISITOR_SECRET" required:"true"`
	Issuer       string        `envconfig:"LUXE_VISITOR_ISSUER" default:"luxe-storefront"`
	TTL          time.Duration `envconfig:"LUXE_VISITOR_TTL" default:"8760h"`
	CookieName   string        `envconfig:"LUXE_VISITOR_COOKIE" default:"luxe_visitor"`
	CookieSecure bool          `envconfig:"LUXE_VISITOR_COOKIE_SECURE" default:"false"`
}

type CatalogConfig struct {
	// BaseURL defaults to the server's own address when empty.
	BaseURL         string        `envconfig:"LUXE_CATALOG_BASE_URL"`
	Path            string        `envconfig:"LUXE_CATALOG_PATH" default:"products.json"`
	CacheTTL        time.Duration `envconfig:"LUXE_CATALOG_CACHE_TTL" default:"5m"`
	Timeout         time.Duration `envconfig:"LUXE_CATALOG_TIMEOUT" default:"10s"`
	DefaultPageSize int           `envconfig:"LUXE_CATALOG_PAGE_SIZE" default:"9"`
}

// ResolvedBaseURL returns the feed base URL, falling back to the local listener.
func (c CatalogConfig) ResolvedBaseURL(port string) string {
	if base := strings.TrimSpace(c.BaseURL); base != "" {
		return base
	}
	return "http://127.0.0.1:" + port + "/"
}
