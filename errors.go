package md2cv

import "errors"

// Sentinel errors for library operations.
var (
	ErrInput             = errors.New("invalid input")
	ErrContentProcessing = errors.New("content processing failed")
	ErrEngineLaunch      = errors.New("failed to launch render engine")
	ErrRenderTimeout     = errors.New("render timed out")
	ErrInvalidOutputPath = errors.New("invalid output path")
	ErrRender            = errors.New("PDF rendering failed")

	// ErrEmptyMarkdown is an input error: errors.Is(err, ErrInput) holds.
	ErrEmptyMarkdown = inputError("markdown content cannot be empty")

	// Render options validation errors.
	ErrInvalidPageFormat    = errors.New("invalid page format")
	ErrInvalidMargin        = errors.New("invalid margin")
	ErrInvalidTimeout       = errors.New("invalid timeout")
	ErrInvalidWaitCondition = errors.New("invalid wait condition")
)

// inputError builds a sentinel that also matches ErrInput.
func inputError(msg string) error {
	return &subError{msg: msg, parent: ErrInput}
}

type subError struct {
	msg    string
	parent error
}

func (e *subError) Error() string { return e.msg }
func (e *subError) Unwrap() error { return e.parent }
