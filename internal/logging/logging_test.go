package logging

// Notes:
// - File rotation is exercised with a single small write; lumberjack
//   creates the file lazily on first write

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew_Console(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, closer, err := New(Config{Level: "debug"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer closer.Close()

	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.GetLevel())
	}
	logger.WithField("stage", "launch").Debug("hello")
	if !strings.Contains(buf.String(), "stage=launch") {
		t.Errorf("output %q missing field", buf.String())
	}
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, _, err := New(Config{Format: "JSON"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.WithField("request_id", "abc").Info("served")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["request_id"] != "abc" || entry["msg"] != "served" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := New(Config{Format: "xml"}, &bytes.Buffer{}); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("format error = %v, want ErrInvalidFormat", err)
	}
	if _, _, err := New(Config{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "server.log")
	var console bytes.Buffer
	logger, closer, err := New(Config{File: path}, &console)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
	if console.Len() != 0 {
		t.Error("console should stay empty when logging to a file")
	}
}

func TestNewCLI_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    logrus.Level
	}{
		{"default", false, false, logrus.InfoLevel},
		{"verbose", true, false, logrus.DebugLevel},
		{"quiet", false, true, logrus.ErrorLevel},
		{"quiet wins", true, true, logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NewCLI(&bytes.Buffer{}, tt.verbose, tt.quiet).GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOrDefault(t *testing.T) {
	t.Parallel()

	if orDefault(0, 5) != 5 || orDefault(-1, 5) != 5 || orDefault(7, 5) != 7 {
		t.Error("orDefault mismatch")
	}
}
