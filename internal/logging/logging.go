// Package logging builds the logrus loggers used by the CLI and the server.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalidFormat indicates an unknown log format.
var ErrInvalidFormat = errors.New("invalid log format")

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Rotation defaults, applied when a file is set and the field is zero.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Config describes a server logger.
type Config struct {
	Level      string // debug, info, warn, error; default info
	Format     string // text or json; default text
	File       string // rotate into this file instead of the console writer
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// New builds a logger from cfg. Without a file, entries go to console.
// The returned closer releases the rotating file and is never nil.
func New(cfg Config, console io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level := logrus.InfoLevel
	if cfg.Level != "" {
		var err error
		if level, err = logrus.ParseLevel(cfg.Level); err != nil {
			return nil, nil, fmt.Errorf("parsing log level: %w", err)
		}
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("%w: %q (must be text or json)", ErrInvalidFormat, cfg.Format)
	}

	if cfg.File == "" {
		logger.SetOutput(console)
		return logger, nopCloser{}, nil
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: orDefault(cfg.MaxBackups, DefaultMaxBackups),
		MaxAge:     orDefault(cfg.MaxAgeDays, DefaultMaxAgeDays),
		Compress:   cfg.Compress,
	}
	logger.SetOutput(rotator)
	return logger, rotator, nil
}

// NewCLI builds the command-line logger: short text lines on w,
// debug with verbose, errors only with quiet.
func NewCLI(w io.Writer, verbose, quiet bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})

	switch {
	case quiet:
		logger.SetLevel(logrus.ErrorLevel)
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
