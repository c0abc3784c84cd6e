package assets

import "errors"

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrPageNotFound     = errors.New("page not found")

	// ErrInvalidAssetName covers empty, overlong and non [A-Za-z0-9_-] names.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath means --assets-dir is missing, unreadable or not a directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	ErrAssetRead     = errors.New("failed to read asset")
	ErrPathTraversal = errors.New("path traversal detected")
)
