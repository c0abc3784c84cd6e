package main

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/config"
	"github.com/alnah/go-md2cv/internal/hints"
)

// mergeDocumentFlags merges per-document flags into config. CLI wins.
func mergeDocumentFlags(f documentFlags, cfg *config.Config) {
	if f.title != "" {
		cfg.Document.Title = f.title
	}
	if f.noATS {
		disabled := false
		cfg.ATS.Enabled = &disabled
	}
}

// mergeRenderFlags merges render flags into config. CLI wins.
func mergeRenderFlags(f renderFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Render.Format = f.format
	}
	if f.margin != "" {
		// --margin applies to every edge, including ones the file set.
		cfg.Render.Margin = f.margin
		cfg.Render.Margins = config.Margins{}
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
	if f.wait != "" {
		cfg.Render.WaitUntil = f.wait
	}
	if f.landscape {
		cfg.Render.Landscape = true
	}
	if f.sandbox {
		cfg.Render.Sandbox = true
	}
	if f.browserBin != "" {
		cfg.Render.BrowserBin = f.browserBin
	}
}

// buildRenderOptions converts the render section onto the library defaults.
func buildRenderOptions(cfg *config.Config) (md2cv.RenderOptions, error) {
	opts := md2cv.DefaultRenderOptions()
	r := cfg.Render

	if r.Format != "" {
		opts.Format = strings.ToLower(r.Format)
	}
	if r.Margin != "" {
		opts.Margins = md2cv.UniformMargins(r.Margin)
	}
	setIfNotEmpty(&opts.Margins.Top, r.Margins.Top)
	setIfNotEmpty(&opts.Margins.Right, r.Margins.Right)
	setIfNotEmpty(&opts.Margins.Bottom, r.Margins.Bottom)
	setIfNotEmpty(&opts.Margins.Left, r.Margins.Left)

	if r.PrintBackground != nil {
		opts.PrintBackground = *r.PrintBackground
	}
	if r.PreferCSSPageSize != nil {
		opts.PreferCSSPageSize = *r.PreferCSSPageSize
	}
	opts.Landscape = r.Landscape

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return opts, err
	}
	if timeout > 0 {
		opts.Timeout = timeout
	}
	if r.WaitUntil != "" {
		opts.WaitUntil = md2cv.WaitCondition(strings.ToLower(r.WaitUntil))
	}

	return opts, opts.Validate()
}

// buildOptions converts a validated config into generator options.
// pool may be nil.
func buildOptions(cfg *config.Config, logger logrus.FieldLogger, pool *md2cv.Pool) ([]md2cv.Option, error) {
	render, err := buildRenderOptions(cfg)
	if err != nil {
		return nil, err
	}
	policy, err := md2cv.ParseRawHTMLPolicy(cfg.Content.RawHTML)
	if err != nil {
		return nil, err
	}

	opts := []md2cv.Option{
		md2cv.WithLogger(logger),
		md2cv.WithTokens(cfg.Tokens()),
		md2cv.WithSections(cfg.SectionTable()),
		md2cv.WithRenderOptions(render),
		md2cv.WithRawHTML(policy),
		md2cv.WithSandbox(cfg.Render.Sandbox),
		md2cv.WithBrowserBin(cfg.Render.BrowserBin),
		md2cv.WithDescription(cfg.Document.Description),
		md2cv.WithLang(cfg.Document.Lang),
	}
	// Without a configured title the CLI and server name the PDF after
	// the candidate's H1.
	title := cfg.Document.Title
	if title == "" {
		title = md2cv.TitleAuto
	}
	opts = append(opts, md2cv.WithDefaultTitle(title))
	if pool != nil {
		opts = append(opts, md2cv.WithPool(pool))
	}
	return opts, nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// hintedError appends an actionable hint to an error message.
type hintedError struct {
	err  error
	hint string
}

func (e *hintedError) Error() string { return e.err.Error() + e.hint }
func (e *hintedError) Unwrap() error { return e.err }

// withHint attaches the hint matching err, if any. sandbox reports
// whether Chrome's sandbox was requested.
func withHint(err error, sandbox bool) error {
	if err == nil {
		return nil
	}

	var hint string
	switch {
	case errors.Is(err, md2cv.ErrEngineLaunch):
		hint = hints.ForEngineLaunch(sandbox)
	case errors.Is(err, md2cv.ErrRenderTimeout):
		hint = hints.ForRenderTimeout()
	case errors.Is(err, md2cv.ErrInvalidOutputPath):
		hint = hints.ForOutputPath()
	case errors.Is(err, md2cv.ErrEmptyMarkdown):
		hint = hints.ForEmptyInput()
	case errors.Is(err, config.ErrConfigNotFound):
		hint = hints.ForConfigNotFound(triedPaths(err))
	}
	if hint == "" {
		return err
	}
	return &hintedError{err: err, hint: hint}
}

// triedPaths extracts the searched paths from a config-not-found message.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
