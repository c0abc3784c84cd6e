package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPreview_Stdout(t *testing.T) {
	t.Parallel()

	in := writeFile(t, t.TempDir(), "cv.md", sampleCV)

	env := newTestEnv()
	if err := runPreview(context.Background(), []string{in}, env.Environment); err != nil {
		t.Fatalf("runPreview() error = %v", err)
	}
	out := env.stdout.String()
	for _, want := range []string{"<!DOCTYPE html>", "<title>Jane Doe</title>", "<b>Led</b>", "<i>platform</i>"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	if len(env.gen.inputs) != 0 {
		t.Error("preview must not render a PDF")
	}
}

func TestRunPreview_NoATS(t *testing.T) {
	t.Parallel()

	in := writeFile(t, t.TempDir(), "cv.md", sampleCV)

	env := newTestEnv()
	if err := runPreview(context.Background(), []string{in, "--no-ats", "--title", "Custom"}, env.Environment); err != nil {
		t.Fatal(err)
	}
	out := env.stdout.String()
	if !strings.Contains(out, "<strong>Led</strong>") {
		t.Error("--no-ats should keep strong")
	}
	if !strings.Contains(out, "<title>Custom</title>") {
		t.Error("--title not applied")
	}
}

func TestRunPreview_OutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "cv.md", sampleCV)
	out := filepath.Join(dir, "cv.html")

	env := newTestEnv()
	if err := runPreview(context.Background(), []string{in, "-o", out}, env.Environment); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(readFile(t, out), "<title>Jane Doe</title>") {
		t.Error("HTML file content wrong")
	}
	if !strings.Contains(env.stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q", env.stdout.String())
	}
}

func TestRunPreview_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "cv.md", sampleCV)
	empty := writeFile(t, dir, "empty.md", "   \n")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no input", nil, ErrUsage},
		{"two inputs", []string{in, in}, ErrUsage},
		{"pdf output", []string{in, "-o", filepath.Join(dir, "cv.pdf")}, ErrUsage},
		{"not markdown", []string{writeFile(t, dir, "cv.txt", "x")}, ErrInvalidExtension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := runPreview(context.Background(), tt.args, newTestEnv().Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("empty markdown", func(t *testing.T) {
		t.Parallel()
		err := runPreview(context.Background(), []string{empty}, newTestEnv().Environment)
		if exitCodeFor(err) != ExitIO {
			t.Errorf("error = %v, want an input error", err)
		}
	})
}
