package main

// Notes:
// - exitCodeFor: every sentinel from md2cv, config and this package, plus
//   wrapped and joined errors to verify the errors.Is chain

import (
	"errors"
	"fmt"
	"os"
	"testing"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Engine errors (exit 4)
		{"engine launch", md2cv.ErrEngineLaunch, ExitEngine},
		{"render timeout", md2cv.ErrRenderTimeout, ExitEngine},
		{"render", md2cv.ErrRender, ExitEngine},
		{"wrapped launch", fmt.Errorf("generate: %w", md2cv.ErrEngineLaunch), ExitEngine},

		// Usage errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"output conflict", ErrOutputConflict, ExitUsage},
		{"env value", ErrInvalidEnvValue, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"page format", md2cv.ErrInvalidPageFormat, ExitUsage},
		{"margin", md2cv.ErrInvalidMargin, ExitUsage},
		{"timeout option", md2cv.ErrInvalidTimeout, ExitUsage},
		{"wait condition", md2cv.ErrInvalidWaitCondition, ExitUsage},
		{"template not found", assets.ErrTemplateNotFound, ExitUsage},

		// I/O and input errors (exit 3)
		{"not exist", os.ErrNotExist, ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"empty markdown", md2cv.ErrEmptyMarkdown, ExitIO},
		{"output path", md2cv.ErrInvalidOutputPath, ExitIO},

		// General (exit 1)
		{"content processing", md2cv.ErrContentProcessing, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor_BatchPrefersEngine(t *testing.T) {
	t.Parallel()

	err := &batchError{total: 2, errs: []error{md2cv.ErrEmptyMarkdown, md2cv.ErrRenderTimeout}}
	if got := exitCodeFor(err); got != ExitEngine {
		t.Errorf("exitCodeFor(batch) = %d, want %d", got, ExitEngine)
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitEngine}
	seen := map[int]bool{}
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("0, 1 and 2 must keep their Unix meanings")
	}
}
