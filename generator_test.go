package md2cv

// Notes:
// - Generator tests inject a fake launch through generatorConfig.launch,
//   so no browser runs; see render_integration_test.go for real Chrome
// - Progress signals are asserted with the logrus test hook
// - Concurrent generation checks distinct outputs and no shared state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// withFakeEngine makes every launch return a fresh engine whose PDF
// embeds the loaded document, so outputs can be told apart.
func withFakeEngine() Option {
	return func(c *generatorConfig) {
		c.launch = func(context.Context, engineConfig) (engine, error) {
			return echoEngine{}, nil
		}
	}
}

type echoEngine struct{}

func (echoEngine) open(context.Context) (surface, error) { return &echoSurface{}, nil }
func (echoEngine) close() error                          { return nil }
func (echoEngine) kill()                                 {}

type echoSurface struct {
	doc string
}

func (s *echoSurface) load(_ context.Context, doc string, _ WaitCondition) error {
	s.doc = doc
	return nil
}

func (s *echoSurface) pdf(context.Context, *proto.PagePrintToPDF) ([]byte, error) {
	return []byte("%PDF-1.7\n" + s.doc), nil
}

// ---------------------------------------------------------------------------
// TestNewGenerator - Construction
// ---------------------------------------------------------------------------

func TestNewGenerator_Invalid(t *testing.T) {
	t.Parallel()

	bad := DefaultRenderOptions()
	bad.Margins.Top = "huge"

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"timeout", []Option{WithTimeout(0)}, ErrInvalidTimeout},
		{"margins", []Option{WithRenderOptions(bad)}, ErrInvalidMargin},
		{"raw html", []Option{WithRawHTML("strip")}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewGenerator(tt.opts...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewGenerator_Stylesheet(t *testing.T) {
	t.Parallel()

	tokens := DefaultStyleTokens()
	tokens.Colors.Primary = "#010203"
	g, err := NewGenerator(WithTokens(tokens))
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	if !strings.Contains(g.Stylesheet(), "#010203") {
		t.Error("token override not applied")
	}
}

// ---------------------------------------------------------------------------
// TestGenerator_Parse / Document
// ---------------------------------------------------------------------------

func TestGenerator_ParseEmpty(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator()
	if err != nil {
		t.Fatal(err)
	}
	for _, md := range []string{"", "  \n\t"} {
		_, err := g.Parse(context.Background(), md)
		if !errors.Is(err, ErrEmptyMarkdown) || !errors.Is(err, ErrInput) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyMarkdown", md, err)
		}
	}
}

func TestGenerator_Document(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(WithDefaultTitle(TitleAuto), WithDescription("Jane's résumé"))
	if err != nil {
		t.Fatal(err)
	}

	doc, err := g.Document(context.Background(), Input{Markdown: "# Jane Doe\n\n## Summary\n\n**Lead** engineer\n"})
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	wants := []string{
		"<title>Jane Doe</title>",
		"<b>Lead</b>",
		`class="section-summary"`,
		"Jane&#39;s résumé",
	}
	for _, w := range wants {
		if !strings.Contains(doc, w) {
			t.Errorf("document missing %q", w)
		}
	}
}

func TestGenerator_DocumentSkipATS(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator()
	if err != nil {
		t.Fatal(err)
	}

	doc, err := g.Document(context.Background(), Input{Markdown: "**Lead** *dev*", SkipATS: true, Title: "CV"})
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if !strings.Contains(doc, "<strong>Lead</strong>") || !strings.Contains(doc, "<em>dev</em>") {
		t.Error("SkipATS should keep strong and em")
	}
	if !strings.Contains(doc, "<title>CV</title>") {
		t.Error("input title not used")
	}
}

// ---------------------------------------------------------------------------
// TestGenerator_Generate - Full Pipeline With Fake Engine
// ---------------------------------------------------------------------------

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	g, err := NewGenerator(withFakeEngine(), WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "cv.pdf")
	if err := g.Generate(context.Background(), Input{Markdown: "# Hello"}, out); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output is not a PDF")
	}
	if !strings.Contains(string(data), "<h1>Hello</h1>") {
		t.Error("rendered document not passed to engine")
	}

	var stages []string
	for _, e := range hook.AllEntries() {
		if s, ok := e.Data["stage"].(string); ok && e.Level == logrus.InfoLevel {
			stages = append(stages, s)
		}
	}
	want := []string{StageContentProcessing, StageLaunch, StageGeneration, StageCompletion}
	if strings.Join(stages, ",") != strings.Join(want, ",") {
		t.Errorf("stages = %v, want %v", stages, want)
	}
}

func TestGenerator_GenerateInvalidOutput(t *testing.T) {
	t.Parallel()

	launched := false
	g, err := NewGenerator(func(c *generatorConfig) {
		c.launch = func(context.Context, engineConfig) (engine, error) {
			launched = true
			return nil, errors.New("unreachable")
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	err = g.Generate(context.Background(), Input{Markdown: "# Hi"}, "cv.docx")
	if !errors.Is(err, ErrInvalidOutputPath) {
		t.Errorf("error = %v, want ErrInvalidOutputPath", err)
	}
	if launched {
		t.Error("engine launched for invalid output path")
	}
}

func TestGenerator_GenerateEmpty(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(withFakeEngine())
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "cv.pdf")

	if err := g.Generate(context.Background(), Input{}, out); !errors.Is(err, ErrInput) {
		t.Errorf("error = %v, want ErrInput", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Error("no file should be written")
	}
}

func TestGenerator_GenerateRecoversPanic(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(func(c *generatorConfig) {
		c.launch = func(context.Context, engineConfig) (engine, error) {
			panic("boom")
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	err = g.Generate(context.Background(), Input{Markdown: "# Hi"}, filepath.Join(t.TempDir(), "cv.pdf"))
	if err == nil || !strings.Contains(err.Error(), "internal error") {
		t.Errorf("error = %v, want recovered internal error", err)
	}
}

func TestGenerator_ConcurrentDistinctOutputs(t *testing.T) {
	t.Parallel()

	g, err := NewGenerator(withFakeEngine(), WithPool(NewPool(2)))
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := Input{Markdown: fmt.Sprintf("# Candidate %d", i)}
			errs[i] = g.Generate(context.Background(), in, filepath.Join(dir, fmt.Sprintf("cv-%d.pdf", i)))
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("Generate(%d) error = %v", i, errs[i])
		}
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("cv-%d.pdf", i)))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), fmt.Sprintf("Candidate %d<", i)) {
			t.Errorf("output %d has wrong content", i)
		}
	}
}
