// Package hints provides actionable error hints for common CV generation failures.
// Hints are formatted as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2cv/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a common CI environment variable is set.
func InCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForEngineLaunch returns hints for browser launch failures.
// sandbox reports whether the Chrome sandbox was requested.
func ForEngineLaunch(sandbox bool) string {
	var hints []string

	if sandbox && (InCI() || IsInContainer()) {
		hints = append(hints, "drop --sandbox in Docker/CI, where Chrome's sandbox usually cannot start")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'md2cv doctor' to check the environment")

	return formatHints(hints)
}

// ForRenderTimeout returns hints for documents that never settle.
func ForRenderTimeout() string {
	return formatHints([]string{
		"raise --timeout or MD2CV_TIMEOUT",
		"remote images keep the network busy; try --wait load",
	})
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config under go-md2cv/ when searched.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath(p), "/go-md2cv/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputPath returns hints for rejected output paths.
func ForOutputPath() string {
	return format("output must end in .pdf and its directory must be writable")
}

// ForEmptyInput returns hints for blank markdown input.
func ForEmptyInput() string {
	return format("run 'md2cv template > cv.md' for a starting point")
}

// filepath normalizes separators so Windows paths match too.
func filepath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
