package main

// Notes:
// - Black-box: everything goes through runDoctorCmd output
// - Chrome detection depends on the machine; only the JSON shape and the
//   status/exit-code agreement are asserted
// - Container tests set environment variables and cannot run in parallel;
//   hint tests below MD2CV_CONTAINER skip inside Docker, where /.dockerenv wins

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/alnah/go-md2cv/internal/hints"
)

func doctorJSON(t *testing.T) (doctorResult, int) {
	t.Helper()
	var stdout bytes.Buffer
	code := runDoctorCmd([]string{"--json"}, &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}})

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	return result, code
}

// clearContainerEnv blanks every container signal for the test's lifetime.
func clearContainerEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MD2CV_CONTAINER", "container", "KUBERNETES_SERVICE_HOST"} {
		t.Setenv(k, "")
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output Formats
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	result, code := doctorJSON(t)

	switch result.Status {
	case statusReady, statusWarnings:
		if code != ExitSuccess {
			t.Errorf("status %q exit code = %d, want %d", result.Status, code, ExitSuccess)
		}
	case statusErrors:
		if code != ExitGeneral {
			t.Errorf("status %q exit code = %d, want %d", result.Status, code, ExitGeneral)
		}
	default:
		t.Errorf("invalid status %q", result.Status)
	}

	if result.Env.OS != runtime.GOOS || result.Env.Arch != runtime.GOARCH {
		t.Errorf("platform = %s/%s, want %s/%s", result.Env.OS, result.Env.Arch, runtime.GOOS, runtime.GOARCH)
	}
	if result.Chrome.Found && result.Chrome.Path == "" {
		t.Error("found Chrome without a path")
	}
}

func TestRunDoctorCmd_HumanOutput(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	runDoctorCmd(nil, &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}})
	out := stdout.String()

	for _, want := range []string{
		"md2cv doctor",
		"Chrome/Chromium",
		"Environment",
		"System",
		"Status:",
		runtime.GOOS + "/" + runtime.GOARCH,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd_Container - Environment Detection
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_ContainerDetection(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		wantHint string
	}{
		{"explicit override", "MD2CV_CONTAINER", "1", "MD2CV_CONTAINER=1"},
		{"podman", "container", "podman", "container=podman"},
		{"kubernetes", "KUBERNETES_SERVICE_HOST", "10.0.0.1", "KUBERNETES_SERVICE_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key != "MD2CV_CONTAINER" && hints.IsInContainer() {
				t.Skip("/.dockerenv takes priority")
			}
			clearContainerEnv(t)
			t.Setenv(tt.key, tt.value)

			result, _ := doctorJSON(t)
			if !result.Env.Container {
				t.Error("container not detected")
			}
			if result.Env.ContainerHint != tt.wantHint {
				t.Errorf("hint = %q, want %q", result.Env.ContainerHint, tt.wantHint)
			}
			if result.Status == statusReady {
				t.Error("container should produce a sandbox warning")
			}
		})
	}
}

func TestRunDoctorCmd_ContainerPriority(t *testing.T) {
	clearContainerEnv(t)
	t.Setenv("MD2CV_CONTAINER", "1")
	t.Setenv("KUBERNETES_SERVICE_HOST", "10.0.0.1")

	result, _ := doctorJSON(t)
	if result.Env.ContainerHint != "MD2CV_CONTAINER=1" {
		t.Errorf("hint = %q, want the explicit override first", result.Env.ContainerHint)
	}
}

func TestRunDoctorCmd_ReportsEnv(t *testing.T) {
	t.Setenv("MD2CV_CONFIG", "work")
	t.Setenv("ROD_BROWSER_BIN", "/nonexistent/chrome")

	result, code := doctorJSON(t)
	if result.Env.ConfigPath != "work" {
		t.Errorf("config = %q, want work", result.Env.ConfigPath)
	}
	if result.Chrome.Found || result.Status != statusErrors {
		t.Errorf("missing ROD_BROWSER_BIN should be an error, got status %q", result.Status)
	}
	if code != ExitGeneral {
		t.Errorf("exit code = %d, want %d", code, ExitGeneral)
	}
}
