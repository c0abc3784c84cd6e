package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-md2cv/internal/config"
	"github.com/alnah/go-md2cv/internal/server"
)

// ErrInvalidEnvValue reports an MD2CV_* variable that cannot be parsed.
var ErrInvalidEnvValue = errors.New("invalid environment variable")

const envPrefix = server.EnvPrefix + "_"

// envConfig holds generation settings from environment variables.
// Server variables are read by the server package.
type envConfig struct {
	ConfigPath string        // MD2CV_CONFIG: config file name or path
	Timeout    time.Duration // MD2CV_TIMEOUT: render timeout
}

// loadEnvConfig reads MD2CV_CONFIG and MD2CV_TIMEOUT.
func loadEnvConfig() (*envConfig, error) {
	cfg := &envConfig{ConfigPath: os.Getenv(envPrefix + "CONFIG")}

	if v := os.Getenv(envPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%w: %sTIMEOUT=%q (expected a positive duration like 45s)", ErrInvalidEnvValue, envPrefix, v)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}

// knownEnvVars lists every MD2CV_* variable read by any command.
func knownEnvVars() map[string]bool {
	known := map[string]bool{
		envPrefix + "CONFIG":    true,
		envPrefix + "TIMEOUT":   true,
		envPrefix + "CONTAINER": true, // doctor
	}
	for _, name := range server.EnvVars() {
		known[name] = true
	}
	return known
}

// warnUnknownEnvVars warns about unrecognized MD2CV_* variables (typos).
func warnUnknownEnvVars(w io.Writer) {
	known := knownEnvVars()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !known[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config values the file left empty.
// Precedence: flags > environment > config file > defaults
// (flags are applied afterwards by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Timeout > 0 && cfg.Render.Timeout == "" {
		cfg.Render.Timeout = env.Timeout.String()
	}
}

// loadConfig resolves the config file from the flag, then MD2CV_CONFIG,
// and applies environment overrides. No file means defaults.
func loadConfig(flagConfig string) (*config.Config, error) {
	env, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}

	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	return cfg, nil
}
