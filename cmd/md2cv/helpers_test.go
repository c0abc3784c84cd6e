package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
)

// fakeGenerator builds real HTML documents but writes a stub PDF instead
// of launching Chrome. genErr, when set, fails every Generate call.
type fakeGenerator struct {
	*md2cv.Generator

	mu     sync.Mutex
	inputs []md2cv.Input
	genErr error
}

func (f *fakeGenerator) Generate(ctx context.Context, in md2cv.Input, out string) error {
	f.mu.Lock()
	f.inputs = append(f.inputs, in)
	f.mu.Unlock()
	if f.genErr != nil {
		return f.genErr
	}
	doc, err := f.Document(ctx, in)
	if err != nil {
		return err
	}
	return os.WriteFile(out, []byte("%PDF-1.7\n"+doc), 0o600)
}

// testEnv returns an environment with captured output and a fake
// generator; gen is set once a command builds its generator.
type testEnv struct {
	*Environment
	stdout, stderr *bytes.Buffer
	gen            *fakeGenerator
	genErr         error
}

func newTestEnv() *testEnv {
	te := &testEnv{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	te.Environment = &Environment{
		Now:         func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout:      te.stdout,
		Stderr:      te.stderr,
		AssetLoader: assets.NewEmbeddedLoader(),
		NewGenerator: func(opts ...md2cv.Option) (Generator, error) {
			g, err := md2cv.NewGenerator(opts...)
			if err != nil {
				return nil, err
			}
			te.gen = &fakeGenerator{Generator: g, genErr: te.genErr}
			return te.gen, nil
		},
	}
	return te
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

const sampleCV = "# Jane Doe\n\n## Experience\n\n### Engineer\n\n**Led** the *platform* team.\n"
