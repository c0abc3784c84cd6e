package main

import (
	"errors"
	"os"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/config"
)

// Exit codes for the md2cv CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful generation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Missing or unreadable input, unwritable output
	ExitEngine  = 4 // Chrome launch, render timeout, PDF errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Engine errors (exit 4)
	if errors.Is(err, md2cv.ErrEngineLaunch) ||
		errors.Is(err, md2cv.ErrRenderTimeout) ||
		errors.Is(err, md2cv.ErrRender) {
		return ExitEngine
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputConflict) ||
		errors.Is(err, ErrInvalidEnvValue) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2cv.ErrInvalidPageFormat) ||
		errors.Is(err, md2cv.ErrInvalidMargin) ||
		errors.Is(err, md2cv.ErrInvalidTimeout) ||
		errors.Is(err, md2cv.ErrInvalidWaitCondition) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	// I/O and input errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, md2cv.ErrInput) ||
		errors.Is(err, md2cv.ErrInvalidOutputPath) {
		return ExitIO
	}

	return ExitGeneral
}
