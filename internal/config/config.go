// Package config loads service configuration: YAML file, environment
// overrides on top, then validation. The two directory roots are mandatory
// and come from the environment only, matching how the container images are
// deployed.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Mandatory environment variables.
const (
	EnvRoot  = "XL_IDP_ROOT_UNZIPPING"
	EnvInput = "XL_IDP_PATH_UNZIPPING"
)

// Cache backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the full service configuration.
type Config struct {
	// Root is the output root; all result directories live under it.
	// Environment only.
	Root string `yaml:"-"`
	// InputDir is the polled inbox. Environment only.
	InputDir string `yaml:"-"`

	Logging  LoggingConfig  `yaml:"logging"`
	Watch    WatchConfig    `yaml:"watch"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Cache    CacheConfig    `yaml:"cache"`
	Registry RegistryConfig `yaml:"registry"`
	Search   SearchConfig   `yaml:"search"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	API      APIConfig      `yaml:"api"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
}

type WatchConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	StabilityWait time.Duration `yaml:"stability_wait"`
}

type CatalogConfig struct {
	// Path of the synonym workbook; empty uses the compiled-in catalog.
	Path string `yaml:"path"`
}

type CacheConfig struct {
	Backend string      `yaml:"backend"`
	DSN     string      `yaml:"dsn"`
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type RegistryConfig struct {
	Proxies           []string      `yaml:"proxies"`
	Timeout           time.Duration `yaml:"timeout"`
	RetryDelay        time.Duration `yaml:"retry_delay"`
	RussiaURLFormat   string        `yaml:"russia_url_format"`
	BelarusURLFormat  string        `yaml:"belarus_url_format"`
	KazakhstanBaseURL string        `yaml:"kazakhstan_base_url"`
	UzbekistanBaseURL string        `yaml:"uzbekistan_base_url"`
}

type SearchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	BaseURL  string        `yaml:"base_url"`
	User     string        `yaml:"user"`
	Key      string        `yaml:"key"`
	Attempts int           `yaml:"attempts"`
	RetryGap time.Duration `yaml:"retry_gap"`
}

type PipelineConfig struct {
	HeaderCoefficient int            `yaml:"header_coefficient"`
	HeaderMinCells    int            `yaml:"header_min_cells"`
	SeedPositions     map[string]int `yaml:"seed_positions"`
}

type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Console: true},
		Watch: WatchConfig{
			PollInterval:  5 * time.Second,
			StabilityWait: 300 * time.Second,
		},
		Cache: CacheConfig{Backend: BackendSQLite},
		Search: SearchConfig{
			Enabled:  true,
			Attempts: 3,
			RetryGap: 60 * time.Second,
		},
		API: APIConfig{Listen: ":8081"},
	}
}

// Load builds the configuration: defaults, then the YAML file if any, then
// environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Root = os.Getenv(EnvRoot)
	c.InputDir = os.Getenv(EnvInput)

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("CACHE_DSN"); v != "" {
		c.Cache.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Cache.Redis.DB = db
		}
	}
	if v := os.Getenv("SEARCH_USER"); v != "" {
		c.Search.User = v
	}
	if v := os.Getenv("SEARCH_KEY"); v != "" {
		c.Search.Key = v
	}
}

// Validate checks the invariants a running service depends on.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("config: %s is required", EnvRoot)
	}
	if c.InputDir == "" {
		return fmt.Errorf("config: %s is required", EnvInput)
	}
	switch c.Cache.Backend {
	case BackendSQLite, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == BackendPostgres && c.Cache.DSN == "" {
		return fmt.Errorf("config: postgres backend needs a dsn")
	}
	if c.Cache.Backend == BackendRedis && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("config: redis backend needs an addr")
	}
	if c.Watch.PollInterval <= 0 {
		return fmt.Errorf("config: poll_interval must be positive")
	}
	return nil
}

// Result directories under the root.

func (c *Config) JSONDir() string      { return filepath.Join(c.Root, "json") }
func (c *Config) DoneExcelDir() string { return filepath.Join(c.Root, "done_excel") }
func (c *Config) ErrorsExcelDir() string {
	return filepath.Join(c.Root, "errors_excel")
}
func (c *Config) DoneDir() string    { return filepath.Join(c.Root, "done") }
func (c *Config) ErrorsDir() string  { return filepath.Join(c.Root, "errors") }
func (c *Config) ScratchDir() string { return filepath.Join(c.Root, "archives") }
func (c *Config) LogDir() string     { return filepath.Join(c.Root, "logging") }

// SQLiteDSN is the cache file location when the sqlite backend runs without
// an explicit dsn.
func (c *Config) SQLiteDSN() string {
	if c.Cache.DSN != "" {
		return c.Cache.DSN
	}
	return filepath.Join(c.Root, "cache", "cache.db")
}
