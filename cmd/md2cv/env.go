package main

import (
	"context"
	"io"
	"os"
	"time"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
)

// Generator is the part of md2cv.Generator the commands use.
type Generator interface {
	Parse(ctx context.Context, markdown string) (string, error)
	Document(ctx context.Context, in md2cv.Input) (string, error)
	Generate(ctx context.Context, in md2cv.Input, outputPath string) error
}

// Compile-time interface implementation check.
var _ Generator = (*md2cv.Generator)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	AssetLoader  assets.AssetLoader
	NewGenerator func(opts ...md2cv.Option) (Generator, error)
}

// DefaultEnv returns the production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		NewGenerator: func(opts ...md2cv.Option) (Generator, error) {
			return md2cv.NewGenerator(opts...)
		},
	}
}
