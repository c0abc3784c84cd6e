package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/alnah/go-md2cv/internal/fileutil"
	"github.com/alnah/go-md2cv/internal/style"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
	MaxLangLength        = 35 // BCP 47 tags stay well under this
	MaxPathLength        = 4096
	MaxTokenLength       = 200
	MaxSectionNameLength = 50
	MaxHeadingLength     = 100
	MaxSections          = 32
)

// dirName is the directory searched under os.UserConfigDir.
const dirName = "go-md2cv"

// NoCodeTheme as style.codeTheme disables code highlighting colors.
const NoCodeTheme = "none"

// Config holds every document setting a config file may carry.
// Zero values mean "use the built-in default".
type Config struct {
	Document DocumentConfig  `yaml:"document"`
	ATS      ATSConfig       `yaml:"ats"`
	Content  ContentConfig   `yaml:"content"`
	Style    style.Tokens    `yaml:"style"`    // partial overrides of the default tokens
	Sections []style.Section `yaml:"sections"` // replaces the default table when set
	Render   RenderConfig    `yaml:"render"`
}

// DocumentConfig defines document metadata.
type DocumentConfig struct {
	Title       string `yaml:"title"` // "auto" = first H1
	Description string `yaml:"description"`
	Lang        string `yaml:"lang"`
}

// ATSConfig toggles ATS normalization.
type ATSConfig struct {
	Enabled *bool `yaml:"enabled"` // default true
}

// ContentConfig defines markdown handling.
type ContentConfig struct {
	RawHTML string `yaml:"rawHTML"` // sanitize (default), passthrough, omit
}

// RenderConfig defines PDF settings.
type RenderConfig struct {
	Format            string  `yaml:"format"`
	Margin            string  `yaml:"margin"` // all edges, overridden per edge by Margins
	Margins           Margins `yaml:"margins"`
	PrintBackground   *bool   `yaml:"printBackground"`   // default true
	PreferCSSPageSize *bool   `yaml:"preferCSSPageSize"` // default true
	Landscape         bool    `yaml:"landscape"`
	Timeout           string  `yaml:"timeout"`   // Go duration, e.g. "45s"
	WaitUntil         string  `yaml:"waitUntil"` // networkidle, load
	Sandbox           bool    `yaml:"sandbox"`
	BrowserBin        string  `yaml:"browserBin"`
}

// Margins holds per-edge CSS lengths.
type Margins struct {
	Top    string `yaml:"top"`
	Right  string `yaml:"right"`
	Bottom string `yaml:"bottom"`
	Left   string `yaml:"left"`
}

// DefaultConfig returns an empty configuration: every setting at its default.
func DefaultConfig() *Config {
	return &Config{}
}

// ATSEnabled reports whether normalization is on (default true).
func (c *Config) ATSEnabled() bool {
	return c.ATS.Enabled == nil || *c.ATS.Enabled
}

// Tokens overlays the non-empty style fields on the default tokens.
func (c *Config) Tokens() style.Tokens {
	t := style.DefaultTokens()
	overlayStrings(reflect.ValueOf(&t).Elem(), reflect.ValueOf(c.Style))
	if strings.EqualFold(t.CodeTheme, NoCodeTheme) {
		t.CodeTheme = ""
	}
	return t
}

// SectionTable returns the configured table, or the default when unset.
func (c *Config) SectionTable() style.SectionTable {
	if c.Sections == nil {
		return style.DefaultSections()
	}
	return style.SectionTable(c.Sections)
}

// TimeoutDuration parses render.timeout; zero means unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Render.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout %q (expected a positive duration like 30s)", ErrInvalidValue, c.Render.Timeout)
	}
	return d, nil
}

// overlayStrings copies non-empty string fields of src into dst,
// recursing into nested structs. Both must be the same struct type.
func overlayStrings(dst, src reflect.Value) {
	for i := 0; i < dst.NumField(); i++ {
		d, s := dst.Field(i), src.Field(i)
		switch d.Kind() {
		case reflect.Struct:
			overlayStrings(d, s)
		case reflect.String:
			if s.String() != "" {
				d.SetString(s.String())
			}
		}
	}
}

// Validate checks field lengths and enumerations. Render values such as
// formats and margins are checked again when render options are built.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.description", c.Document.Description, MaxDescriptionLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"render.browserBin", c.Render.BrowserBin, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateTokenLengths("style", reflect.ValueOf(c.Style)); err != nil {
		return err
	}

	switch strings.ToLower(c.Content.RawHTML) {
	case "", "sanitize", "passthrough", "omit":
	default:
		return fmt.Errorf("%w: content.rawHTML %q (must be sanitize, passthrough, or omit)", ErrInvalidValue, c.Content.RawHTML)
	}

	switch strings.ToLower(c.Render.WaitUntil) {
	case "", "networkidle", "load":
	default:
		return fmt.Errorf("%w: render.waitUntil %q (must be networkidle or load)", ErrInvalidValue, c.Render.WaitUntil)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	return c.validateSections()
}

func (c *Config) validateSections() error {
	if len(c.Sections) > MaxSections {
		return fmt.Errorf("%w: sections (%d rows, max %d)", ErrInvalidValue, len(c.Sections), MaxSections)
	}
	for i, s := range c.Sections {
		prefix := fmt.Sprintf("sections[%d]", i)
		if s.Name == "" {
			return fmt.Errorf("%w: %s.name is required", ErrInvalidValue, prefix)
		}
		if err := validateFieldLength(prefix+".name", s.Name, MaxSectionNameLength); err != nil {
			return err
		}
		if !isClassName(s.Name) {
			return fmt.Errorf("%w: %s.name %q (letters, digits and hyphens only)", ErrInvalidValue, prefix, s.Name)
		}
		switch s.Kind {
		case style.SectionLead, style.SectionAccent:
		default:
			return fmt.Errorf("%w: %s.kind %q (must be lead or accent)", ErrInvalidValue, prefix, s.Kind)
		}
		if len(s.Headings) == 0 {
			return fmt.Errorf("%w: %s.headings needs at least one phrase", ErrInvalidValue, prefix)
		}
		for j, h := range s.Headings {
			if err := validateFieldLength(fmt.Sprintf("%s.headings[%d]", prefix, j), h, MaxHeadingLength); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateTokenLengths bounds every token and rejects characters that
// could end a CSS declaration or the style element.
func validateTokenLengths(path string, v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		name := path + "." + yamlName(t.Field(i))
		switch f.Kind() {
		case reflect.Struct:
			if err := validateTokenLengths(name, f); err != nil {
				return err
			}
		case reflect.String:
			s := f.String()
			if err := validateFieldLength(name, s, MaxTokenLength); err != nil {
				return err
			}
			if strings.ContainsAny(s, ";{}<>") {
				return fmt.Errorf("%w: %s %q (must not contain ; { } < >)", ErrInvalidValue, name, s)
			}
		}
	}
	return nil
}

func yamlName(f reflect.StructField) string {
	if tag := strings.Split(f.Tag.Get("yaml"), ",")[0]; tag != "" {
		return tag
	}
	return f.Name
}

func isClassName(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's searched as <name>.yaml or <name>.yml in the current
// directory, then in the user config directory under go-md2cv/.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates YAML config data, rejecting unknown fields.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, dirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
