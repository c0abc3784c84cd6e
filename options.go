package md2cv

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2cv/internal/pipeline"
	"github.com/alnah/go-md2cv/internal/style"
)

// StyleTokens is the design token table the stylesheet is built from.
type StyleTokens = style.Tokens

// Section is one row of the special-section table.
type Section = style.Section

// SectionTable maps résumé headings to special styling.
type SectionTable = style.SectionTable

// Section kinds.
const (
	SectionLead   = style.SectionLead
	SectionAccent = style.SectionAccent
)

// DefaultStyleTokens returns the professional CV token set.
func DefaultStyleTokens() StyleTokens { return style.DefaultTokens() }

// DefaultSections returns the conventional résumé section table.
func DefaultSections() SectionTable { return style.DefaultSections() }

// RawHTMLPolicy controls what happens to HTML embedded in markdown.
type RawHTMLPolicy = pipeline.RawHTMLPolicy

// Raw HTML policies.
const (
	RawHTMLSanitize    = pipeline.RawHTMLSanitize
	RawHTMLPassthrough = pipeline.RawHTMLPassthrough
	RawHTMLOmit        = pipeline.RawHTMLOmit
)

// ParseRawHTMLPolicy validates a policy name; "" selects RawHTMLSanitize.
func ParseRawHTMLPolicy(s string) (RawHTMLPolicy, error) {
	return pipeline.ParseRawHTMLPolicy(s)
}

// TitleAuto as default title derives the title from the first H1.
const TitleAuto = "auto"

// Option configures a Generator.
type Option func(*generatorConfig)

// generatorConfig holds Generator settings fixed at construction.
type generatorConfig struct {
	logger      logrus.FieldLogger
	tokens      style.Tokens
	sections    style.SectionTable
	render      RenderOptions
	rawHTML     RawHTMLPolicy
	browserBin  string
	sandbox     bool
	pool        *Pool
	title       string
	description string
	lang        string
	launch      launchFunc // tests only
}

func defaultConfig() generatorConfig {
	return generatorConfig{
		logger:   discardLogger(),
		tokens:   style.DefaultTokens(),
		sections: style.DefaultSections(),
		render:   DefaultRenderOptions(),
		rawHTML:  RawHTMLSanitize,
		title:    pipeline.DefaultTitle,
	}
}

// WithLogger sets the logger for progress signals and render state.
// A nil logger keeps the default, which discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *generatorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTokens replaces the style tokens.
func WithTokens(t StyleTokens) Option {
	return func(c *generatorConfig) { c.tokens = t }
}

// WithSections replaces the special-section table. An empty table
// disables section styling.
func WithSections(s SectionTable) Option {
	return func(c *generatorConfig) { c.sections = s }
}

// WithRenderOptions replaces the render options.
func WithRenderOptions(o RenderOptions) Option {
	return func(c *generatorConfig) { c.render = o }
}

// WithTimeout sets the bound on loading and printing the document.
func WithTimeout(d time.Duration) Option {
	return func(c *generatorConfig) { c.render.Timeout = d }
}

// WithRawHTML sets the raw HTML policy.
func WithRawHTML(p RawHTMLPolicy) Option {
	return func(c *generatorConfig) { c.rawHTML = p }
}

// WithBrowserBin uses a specific Chrome binary instead of ROD_BROWSER_BIN
// or the go-rod managed browser.
func WithBrowserBin(path string) Option {
	return func(c *generatorConfig) { c.browserBin = path }
}

// WithSandbox enables Chrome's sandbox. It is off by default so rendering
// works in containers; enable it for untrusted input on capable hosts.
func WithSandbox(enabled bool) Option {
	return func(c *generatorConfig) { c.sandbox = enabled }
}

// WithPool bounds concurrent renders across every Generator sharing p.
func WithPool(p *Pool) Option {
	return func(c *generatorConfig) { c.pool = p }
}

// WithDefaultTitle sets the title used when Input.Title is empty.
// TitleAuto takes it from the first H1 of the document.
func WithDefaultTitle(title string) Option {
	return func(c *generatorConfig) { c.title = title }
}

// WithDescription sets the default meta description.
func WithDescription(desc string) Option {
	return func(c *generatorConfig) { c.description = desc }
}

// WithLang sets the document language attribute.
func WithLang(lang string) Option {
	return func(c *generatorConfig) { c.lang = lang }
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
