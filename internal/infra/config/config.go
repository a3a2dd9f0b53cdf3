package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
	Solunar SolunarConfig `yaml:"solunar"`
	Tiles   TilesConfig   `yaml:"tiles"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SolunarConfig holds the default location used when a request omits coordinates.
type SolunarConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Timezone  string  `yaml:"timezone"`
}

// TilesConfig controls offline map tile caching.
type TilesConfig struct {
	URLTemplate       string         `yaml:"urlTemplate"`
	AccessToken       string         `yaml:"accessToken"`
	MaxTilesPerRegion int            `yaml:"maxTilesPerRegion"`
	MaxZoom           int            `yaml:"maxZoom"`
	QuotaBytes        int64          `yaml:"quotaBytes"`
	Retention         time.Duration  `yaml:"retention"`
	PruneSchedule     string         `yaml:"pruneSchedule"`
	Storage           StorageConfig  `yaml:"storage"`
	Postgres          PostgresConfig `yaml:"postgres"`
	Valkey            ValkeyConfig   `yaml:"valkey"`
}

// DownloadsEnabled reports whether the tile source can be reached. A template
// with a {token} placeholder and no access token leaves offline maps disabled.
func (t TilesConfig) DownloadsEnabled() bool {
	return !strings.Contains(t.URLTemplate, "{token}") || strings.TrimSpace(t.AccessToken) != ""
}

// StorageConfig selects the tile blob backend.
type StorageConfig struct {
	Driver    string `yaml:"driver"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// ValkeyConfig contains connection information for the download job queue.
type ValkeyConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	QueueKey string `yaml:"queueKey"`
}

// Load reads configuration from .env, a YAML file and environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SOLUNAR_LATITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Solunar.Latitude = parsed
		}
	}
	if v := os.Getenv("SOLUNAR_LONGITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Solunar.Longitude = parsed
		}
	}
	if v := os.Getenv("SOLUNAR_TIMEZONE"); v != "" {
		cfg.Solunar.Timezone = v
	}
	if v := os.Getenv("TILES_URL_TEMPLATE"); v != "" {
		cfg.Tiles.URLTemplate = v
	}
	if v := os.Getenv("TILES_ACCESS_TOKEN"); v != "" {
		cfg.Tiles.AccessToken = v
	}
	if v := os.Getenv("TILES_MAX_PER_REGION"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Tiles.MaxTilesPerRegion = parsed
		}
	}
	if v := os.Getenv("TILES_QUOTA_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Tiles.QuotaBytes = parsed
		}
	}
	if v := os.Getenv("TILES_RETENTION"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Tiles.Retention = parsed
		}
	}
	if v := os.Getenv("TILES_PRUNE_SCHEDULE"); v != "" {
		cfg.Tiles.PruneSchedule = v
	}
	if v := os.Getenv("TILES_STORAGE_DRIVER"); v != "" {
		cfg.Tiles.Storage.Driver = v
	}
	if v := os.Getenv("TILES_R2_ENDPOINT"); v != "" {
		cfg.Tiles.Storage.Endpoint = v
	}
	if v := os.Getenv("TILES_R2_ACCESS_KEY"); v != "" {
		cfg.Tiles.Storage.AccessKey = v
	}
	if v := os.Getenv("TILES_R2_SECRET_KEY"); v != "" {
		cfg.Tiles.Storage.SecretKey = v
	}
	if v := os.Getenv("TILES_R2_BUCKET"); v != "" {
		cfg.Tiles.Storage.Bucket = v
	}
	if v := os.Getenv("TILES_R2_REGION"); v != "" {
		cfg.Tiles.Storage.Region = v
	}
	if v := os.Getenv("TILES_POSTGRES_DSN"); v != "" {
		cfg.Tiles.Postgres.DSN = v
	}
	if v := os.Getenv("TILES_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Tiles.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("TILES_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Tiles.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("TILES_VALKEY_ENABLED"); v != "" {
		cfg.Tiles.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("TILES_VALKEY_ADDR"); v != "" {
		cfg.Tiles.Valkey.Addr = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Solunar: SolunarConfig{
			Latitude:  39.8283,
			Longitude: -98.5795,
			Timezone:  "America/New_York",
		},
		Tiles: TilesConfig{
			URLTemplate:       "https://api.mapbox.com/v4/mapbox.satellite/{z}/{x}/{y}@2x.webp?access_token={token}",
			MaxTilesPerRegion: 2000,
			MaxZoom:           18,
			QuotaBytes:        50 * 1024 * 1024,
			Retention:         30 * 24 * time.Hour,
			PruneSchedule:     "@hourly",
			Storage: StorageConfig{
				Driver: "memory",
				Bucket: "bitebrain-tiles",
				Region: "auto",
			},
			Postgres: PostgresConfig{
				MaxConns: 4,
			},
			Valkey: ValkeyConfig{
				QueueKey: "tiles:jobs",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Solunar.Latitude < -90 || c.Solunar.Latitude > 90 {
		return errors.New("solunar.latitude must be within [-90, 90]")
	}
	if c.Solunar.Longitude < -180 || c.Solunar.Longitude > 180 {
		return errors.New("solunar.longitude must be within [-180, 180]")
	}
	if _, err := time.LoadLocation(c.Solunar.Timezone); err != nil {
		return fmt.Errorf("solunar.timezone: %w", err)
	}
	if strings.TrimSpace(c.Tiles.URLTemplate) == "" {
		return errors.New("tiles.urlTemplate cannot be empty")
	}
	for _, ph := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(c.Tiles.URLTemplate, ph) {
			return fmt.Errorf("tiles.urlTemplate must contain %s", ph)
		}
	}
	if c.Tiles.MaxTilesPerRegion <= 0 {
		return errors.New("tiles.maxTilesPerRegion must be positive")
	}
	if c.Tiles.MaxZoom <= 0 || c.Tiles.MaxZoom > 22 {
		return errors.New("tiles.maxZoom must be within [1, 22]")
	}
	if c.Tiles.QuotaBytes <= 0 {
		return errors.New("tiles.quotaBytes must be positive")
	}
	if c.Tiles.Retention < 0 {
		return errors.New("tiles.retention cannot be negative")
	}
	switch c.Tiles.Storage.Driver {
	case "memory":
	case "r2":
		if strings.TrimSpace(c.Tiles.Storage.Endpoint) == "" || strings.TrimSpace(c.Tiles.Storage.Bucket) == "" {
			return errors.New("tiles.storage endpoint and bucket are required for the r2 driver")
		}
	default:
		return fmt.Errorf("tiles.storage.driver %q is not supported", c.Tiles.Storage.Driver)
	}
	if c.Tiles.Valkey.Enabled && strings.TrimSpace(c.Tiles.Valkey.Addr) == "" {
		return errors.New("tiles.valkey.addr cannot be empty when the valkey queue is enabled")
	}
	return nil
}
