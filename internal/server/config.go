package server

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alnah/go-md2cv/internal/logging"
	"github.com/alnah/go-md2cv/internal/storage"
)

// EnvPrefix prefixes every server environment variable, e.g. MD2CV_PORT.
const EnvPrefix = "MD2CV"

// Storage backends.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// EnvProduction hides error details and restricts CORS to configured origins.
const EnvProduction = "production"

// Config holds server settings.
type Config struct {
	Port            string        `mapstructure:"port"`
	Env             string        `mapstructure:"env"`
	FrontendURL     string        `mapstructure:"frontend_url"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	AssetsDir       string        `mapstructure:"assets_dir"`
	Storage         string        `mapstructure:"storage"`
	UploadDir       string        `mapstructure:"upload_dir"`
	MaxUploadMB     int64         `mapstructure:"max_upload_mb"`
	Retention       time.Duration `mapstructure:"retention"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Rate            RateConfig    `mapstructure:"rate"`
	S3              S3Config      `mapstructure:"s3"`
	Log             LogConfig     `mapstructure:"log"`
}

// RateConfig holds per-client rate limits.
type RateConfig struct {
	Limit float64 `mapstructure:"limit"` // requests per second, 0 disables
	Burst int     `mapstructure:"burst"`
}

// S3Config holds S3 storage settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// defaults are applied before env and flags; every key needs one so
// environment-only values reach Unmarshal.
var defaults = map[string]any{
	"port":             "8081",
	"env":              "development",
	"frontend_url":     "",
	"allowed_origins":  []string{},
	"assets_dir":       "",
	"storage":          StorageLocal,
	"upload_dir":       "uploads",
	"max_upload_mb":    5,
	"retention":        "24h",
	"cleanup_interval": "1h",
	"read_timeout":     "30s",
	"write_timeout":    "120s",
	"shutdown_timeout": "30s",
	"rate.limit":       1.0,
	"rate.burst":       5,
	"s3.region":        "us-east-1",
	"s3.bucket":        "",
	"s3.prefix":        "",
	"s3.endpoint":      "",
	"s3.access_key":    "",
	"s3.secret_key":    "",
	"log.level":        "info",
	"log.format":       logging.FormatText,
	"log.file":         "",
}

// flagKeys maps serve flags to config keys.
var flagKeys = map[string]string{
	"port":       "port",
	"env":        "env",
	"assets-dir": "assets_dir",
	"storage":    "storage",
	"upload-dir": "upload_dir",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
}

// EnvVars lists the environment variables LoadConfig reads.
func EnvVars() []string {
	names := make([]string, 0, len(defaults))
	for key := range defaults {
		names = append(names, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}
	sort.Strings(names)
	return names
}

// RegisterFlags adds the serve flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("port", "p", "8081", "listen port")
	fs.String("env", "development", "environment (production hides error details)")
	fs.String("assets-dir", "", "directory overriding templates/ and web/ assets")
	fs.String("storage", StorageLocal, "artifact storage: local or s3")
	fs.String("upload-dir", "uploads", "directory for generated PDFs (local storage)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("log-format", logging.FormatText, "log format: text or json")
	fs.String("log-file", "", "rotate logs into this file instead of stderr")
}

// LoadConfig reads settings from defaults, MD2CV_* environment variables
// and the flags in fs (highest priority, when set). fs may be nil.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if fs != nil {
		for flag, key := range flagKeys {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", flag, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding server config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values viper cannot check by type.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageLocal:
		if c.UploadDir == "" {
			return errors.New("upload_dir is required for local storage")
		}
	case StorageS3:
		if c.S3.Bucket == "" {
			return errors.New("s3.bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("invalid storage %q (must be local or s3)", c.Storage)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	if c.Retention <= 0 {
		return fmt.Errorf("retention must be positive, got %s", c.Retention)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup_interval must be positive, got %s", c.CleanupInterval)
	}
	if c.Rate.Limit < 0 || c.Rate.Burst < 0 {
		return errors.New("rate limit and burst must not be negative")
	}
	return nil
}

// Production reports whether the server runs in production mode.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Origins returns the CORS origins: configured ones in production,
// the local UI otherwise.
func (c *Config) Origins() []string {
	if c.Production() {
		origins := append([]string{}, c.AllowedOrigins...)
		if c.FrontendURL != "" {
			origins = append(origins, c.FrontendURL)
		}
		return origins
	}
	port := c.Port
	if i := strings.LastIndex(port, ":"); i >= 0 {
		port = port[i+1:]
	}
	return []string{"http://localhost:" + port, "http://127.0.0.1:" + port}
}

// StorageS3Config converts the S3 settings for the storage package.
func (c *Config) StorageS3Config() storage.S3Config {
	return storage.S3Config{
		Region:    c.S3.Region,
		Bucket:    c.S3.Bucket,
		Prefix:    c.S3.Prefix,
		Endpoint:  c.S3.Endpoint,
		AccessKey: c.S3.AccessKey,
		SecretKey: c.S3.SecretKey,
	}
}

// LoggingConfig converts the log settings for the logging package.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
}
