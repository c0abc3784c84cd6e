package hints

// Notes:
// - ForEngineLaunch tests cannot use t.Parallel() because they use
//   t.Setenv() and swap the package-level IsInContainer variable

import (
	"strings"
	"testing"
)

func clearCI(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(key, "")
	}
}

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

// ---------------------------------------------------------------------------
// TestForEngineLaunch
// ---------------------------------------------------------------------------

func TestForEngineLaunch_SandboxInCI(t *testing.T) {
	stubContainer(t, false)
	clearCI(t)
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("ROD_BROWSER_BIN", "")

	hint := ForEngineLaunch(true)

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint %q lacks prefix", hint)
	}
	for _, want := range []string{"--sandbox", "ROD_BROWSER_BIN", "md2cv doctor"} {
		if !strings.Contains(hint, want) {
			t.Errorf("hint %q missing %q", hint, want)
		}
	}
}

func TestForEngineLaunch_SandboxInDocker(t *testing.T) {
	stubContainer(t, true)
	clearCI(t)

	if hint := ForEngineLaunch(true); !strings.Contains(hint, "--sandbox") {
		t.Errorf("hint %q should mention --sandbox in a container", hint)
	}
}

func TestForEngineLaunch_NoSandboxNoSuggestion(t *testing.T) {
	stubContainer(t, true)
	clearCI(t)

	if hint := ForEngineLaunch(false); strings.Contains(hint, "--sandbox") {
		t.Errorf("hint %q should not mention --sandbox when it is off", hint)
	}
}

func TestForEngineLaunch_BrowserBinSet(t *testing.T) {
	stubContainer(t, false)
	clearCI(t)
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	hint := ForEngineLaunch(false)
	if strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Errorf("hint %q should not suggest ROD_BROWSER_BIN when set", hint)
	}
	if !strings.Contains(hint, "md2cv doctor") {
		t.Errorf("hint %q should always suggest doctor", hint)
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
		excludes string
	}{
		{
			name:     "suggests user config path",
			paths:    []string{"cv.yaml", "/home/u/.config/go-md2cv/cv.yaml"},
			contains: "or create /home/u/.config/go-md2cv/cv.yaml",
		},
		{
			name:     "windows path",
			paths:    []string{`C:\Users\u\AppData\Roaming\go-md2cv\cv.yaml`},
			contains: "or create",
		},
		{
			name:     "local only",
			paths:    []string{"cv.yaml"},
			contains: "--config",
			excludes: "or create",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			hint := ForConfigNotFound(tt.paths)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("hint %q missing %q", hint, tt.contains)
			}
			if tt.excludes != "" && strings.Contains(hint, tt.excludes) {
				t.Errorf("hint %q should not contain %q", hint, tt.excludes)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestStaticHints
// ---------------------------------------------------------------------------

func TestStaticHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"timeout", ForRenderTimeout(), "--timeout"},
		{"timeout wait", ForRenderTimeout(), "--wait load"},
		{"output", ForOutputPath(), ".pdf"},
		{"empty input", ForEmptyInput(), "md2cv template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !strings.HasPrefix(tt.got, "\n  hint: ") || !strings.Contains(tt.got, tt.want) {
				t.Errorf("hint = %q, want prefixed hint containing %q", tt.got, tt.want)
			}
		})
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
