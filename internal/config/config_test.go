package config

// Notes:
// - LoadConfig name resolution is tested with t.Chdir into a temp dir;
//   those tests cannot run in parallel
// - Style tokens overlay defaults field by field; empty means default

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2cv/internal/style"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig - Zero Config Means Defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if !cfg.ATSEnabled() {
		t.Error("ATSEnabled() = false, want true")
	}
	if got := cfg.Tokens(); got != style.DefaultTokens() {
		t.Errorf("Tokens() = %+v, want defaults", got)
	}
	if got := cfg.SectionTable(); len(got) != len(style.DefaultSections()) {
		t.Errorf("SectionTable() has %d rows, want default %d", len(got), len(style.DefaultSections()))
	}
	if d, err := cfg.TimeoutDuration(); err != nil || d != 0 {
		t.Errorf("TimeoutDuration() = %v, %v, want 0, nil", d, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestParse - YAML Decoding
// ---------------------------------------------------------------------------

func TestParse_Full(t *testing.T) {
	t.Parallel()

	data := []byte(`
document:
  title: auto
  description: Senior engineer CV
  lang: fr
ats:
  enabled: false
content:
  rawHTML: omit
style:
  colors:
    primary: "#112233"
  codeTheme: none
sections:
  - name: profile
    kind: lead
    headings: [Profile]
render:
  format: letter
  margin: 0.5in
  margins:
    top: 20mm
  printBackground: false
  timeout: 45s
  waitUntil: load
  sandbox: true
  browserBin: /usr/bin/chromium
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Document.Title != "auto" || cfg.Document.Lang != "fr" {
		t.Errorf("Document = %+v", cfg.Document)
	}
	if cfg.ATSEnabled() {
		t.Error("ATSEnabled() = true, want false")
	}
	if cfg.Content.RawHTML != "omit" {
		t.Errorf("Content.RawHTML = %q, want omit", cfg.Content.RawHTML)
	}

	tokens := cfg.Tokens()
	if tokens.Colors.Primary != "#112233" {
		t.Errorf("Colors.Primary = %q, want #112233", tokens.Colors.Primary)
	}
	if tokens.Colors.Secondary != style.DefaultTokens().Colors.Secondary {
		t.Errorf("Colors.Secondary = %q, want default", tokens.Colors.Secondary)
	}
	if tokens.CodeTheme != "" {
		t.Errorf("CodeTheme = %q, want disabled", tokens.CodeTheme)
	}

	sections := cfg.SectionTable()
	if len(sections) != 1 || sections[0].Name != "profile" || sections[0].Kind != style.SectionLead {
		t.Errorf("SectionTable() = %+v", sections)
	}

	if cfg.Render.Format != "letter" || cfg.Render.Margin != "0.5in" || cfg.Render.Margins.Top != "20mm" {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Render.PrintBackground == nil || *cfg.Render.PrintBackground {
		t.Error("Render.PrintBackground should be explicitly false")
	}
	if cfg.Render.PreferCSSPageSize != nil {
		t.Error("Render.PreferCSSPageSize should be unset")
	}
	if d, err := cfg.TimeoutDuration(); err != nil || d != 45*time.Second {
		t.Errorf("TimeoutDuration() = %v, %v, want 45s", d, err)
	}
	if !cfg.Render.Sandbox || cfg.Render.BrowserBin != "/usr/bin/chromium" {
		t.Errorf("Render sandbox/bin = %v %q", cfg.Render.Sandbox, cfg.Render.BrowserBin)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"empty", "", ErrConfigParse},
		{"unknown field", "document:\n  author: x\n", ErrConfigParse},
		{"bad yaml", "document: [", ErrConfigParse},
		{"raw html policy", "content:\n  rawHTML: strip\n", ErrInvalidValue},
		{"wait condition", "render:\n  waitUntil: domcontentloaded\n", ErrInvalidValue},
		{"timeout", "render:\n  timeout: soon\n", ErrInvalidValue},
		{"negative timeout", "render:\n  timeout: -1s\n", ErrInvalidValue},
		{"css break-out token", "style:\n  colors:\n    primary: \"red; } body {\"\n", ErrInvalidValue},
		{"title too long", "document:\n  title: " + strings.Repeat("x", MaxTitleLength+1) + "\n", ErrFieldTooLong},
		{"section kind", "sections:\n  - name: x\n    kind: bold\n    headings: [X]\n", ErrInvalidValue},
		{"section name", "sections:\n  - name: \"a b\"\n    kind: lead\n    headings: [X]\n", ErrInvalidValue},
		{"section headings", "sections:\n  - name: x\n    kind: lead\n", ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_TooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("# " + strings.Repeat("x", MaxInputSize))
	if _, err := Parse(data); !errors.Is(err, ErrConfigParse) {
		t.Errorf("Parse() error = %v, want ErrConfigParse", err)
	}
}

func TestParse_EmptySectionsDisablesTable(t *testing.T) {
	t.Parallel()

	cfg, err := Parse([]byte("sections: []\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := cfg.SectionTable(); len(got) != 0 {
		t.Errorf("SectionTable() = %+v, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// TestValidateFieldLength
// ---------------------------------------------------------------------------

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"empty", "", false},
		{"at limit", "1234567890", false},
		{"over limit", "12345678901", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateFieldLength("test.field", tt.value, 10)
			if tt.wantErr != (err != nil) {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "test.field") {
				t.Errorf("error %q should name the field", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File Resolution
// ---------------------------------------------------------------------------

func TestLoadConfig_EmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfig_Path(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cv.yaml")
	if err := os.WriteFile(path, []byte("document:\n  lang: de\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Document.Lang != "de" {
		t.Errorf("Document.Lang = %q, want de", cfg.Document.Lang)
	}
}

func TestLoadConfig_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, "work.yml"), []byte("ats:\n  enabled: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !cfg.ATSEnabled() {
		t.Error("ATSEnabled() = false, want true")
	}
}

func TestLoadConfig_NameNotFound(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("nonexistent-md2cv-config")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "nonexistent-md2cv-config.yaml") {
		t.Errorf("error %q should list tried paths", err)
	}
}
