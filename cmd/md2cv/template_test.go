package main

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2cv/internal/assets"
)

func TestRunTemplate_Stdout(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	if err := runTemplate(nil, env.Environment); err != nil {
		t.Fatalf("runTemplate() error = %v", err)
	}
	if !strings.Contains(env.stdout.String(), "## Professional Summary") {
		t.Error("default template should be the sample CV")
	}
}

func TestRunTemplate_List(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	if err := runTemplate([]string{"--list"}, env.Environment); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"cv", "minimal"} {
		if !strings.Contains(env.stdout.String(), name+"\n") {
			t.Errorf("list missing %q: %q", name, env.stdout.String())
		}
	}
}

func TestRunTemplate_OutputFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "cv.md")

	env := newTestEnv()
	if err := runTemplate([]string{"minimal", "-o", out}, env.Environment); err != nil {
		t.Fatalf("runTemplate() error = %v", err)
	}
	if readFile(t, out) == "" {
		t.Error("template file is empty")
	}

	err := runTemplate([]string{"-o", out}, newTestEnv().Environment)
	if !errors.Is(err, ErrOutputConflict) {
		t.Errorf("overwrite error = %v, want ErrOutputConflict", err)
	}
}

// The written template must round-trip through generate.
func TestRunTemplate_Generates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := filepath.Join(dir, "cv.md")
	if err := runTemplate([]string{"-o", md}, newTestEnv().Environment); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv()
	out := filepath.Join(dir, "cv.pdf")
	if err := runGenerate(context.Background(), []string{md, "-o", out}, env.Environment); err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}
	pdf := readFile(t, out)
	for _, want := range []string{"<title>Jane Doe</title>", "section-summary", "section-education"} {
		if !strings.Contains(pdf, want) {
			t.Errorf("generated document missing %q", want)
		}
	}
}

func TestRunTemplate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown name", []string{"nope"}, assets.ErrTemplateNotFound},
		{"traversal", []string{"../cv"}, assets.ErrInvalidAssetName},
		{"two names", []string{"cv", "minimal"}, ErrUsage},
		{"wrong extension", []string{"-o", "cv.txt"}, ErrInvalidExtension},
		{"bad assets dir", []string{"--assets-dir", "/does/not/exist"}, assets.ErrInvalidBasePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := runTemplate(tt.args, newTestEnv().Environment)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRunTemplate_AssetsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "templates/cv.md", "# Custom")

	env := newTestEnv()
	if err := runTemplate([]string{"--assets-dir", dir}, env.Environment); err != nil {
		t.Fatal(err)
	}
	if env.stdout.String() != "# Custom" {
		t.Errorf("stdout = %q, want custom template", env.stdout.String())
	}
}

func TestRunTemplate_ListCustom(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "templates/engineer.md", "# Engineer")

	env := newTestEnv()
	if err := runTemplate([]string{"--list", "--assets-dir", dir}, env.Environment); err != nil {
		t.Fatal(err)
	}
	if env.stdout.String() != "cv\nengineer\nminimal\n" {
		t.Errorf("list = %q", env.stdout.String())
	}
}
