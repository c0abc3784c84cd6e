package md2cv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2cv/internal/pipeline"
	"github.com/alnah/go-md2cv/internal/style"
)

// Generator runs the markdown to PDF pipeline: parse, assemble, normalize,
// render. Configuration is fixed at construction and the stylesheet is
// synthesized once. A Generator is safe for concurrent use; each Generate
// call launches its own render engine.
type Generator struct {
	cfg        generatorConfig
	parser     *pipeline.Parser
	assembler  *pipeline.Assembler
	normalizer *pipeline.Normalizer
	stylesheet string
	renderer   *renderer
}

// NewGenerator creates a Generator. It returns an error wrapping one of the
// render option sentinels or pipeline.ErrInvalidRawHTML when options are invalid.
func NewGenerator(opts ...Option) (*Generator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.render.Validate(); err != nil {
		return nil, err
	}
	policy, err := ParseRawHTMLPolicy(string(cfg.rawHTML))
	if err != nil {
		return nil, err
	}
	cfg.rawHTML = policy

	launch := cfg.launch
	if launch == nil {
		launch = launchRod
	}

	return &Generator{
		cfg:        cfg,
		parser:     pipeline.NewParser(cfg.sections, policy),
		assembler:  pipeline.NewAssembler(),
		normalizer: pipeline.NewNormalizer(),
		stylesheet: style.Synthesize(cfg.tokens, cfg.sections),
		renderer: &renderer{
			launch: launch,
			engine: engineConfig{browserBin: cfg.browserBin, sandbox: cfg.sandbox},
			pool:   cfg.pool,
			logger: cfg.logger,
		},
	}, nil
}

// Stylesheet returns the synthesized stylesheet.
func (g *Generator) Stylesheet() string {
	return g.stylesheet
}

// Parse converts markdown to an HTML fragment, for previews.
func (g *Generator) Parse(ctx context.Context, markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", ErrEmptyMarkdown
	}
	fragment, err := g.parser.Parse(ctx, markdown)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrContentProcessing, err)
	}
	return fragment, nil
}

// Document returns the full render document for in, normalized unless
// in.SkipATS is set. No engine is launched.
func (g *Generator) Document(ctx context.Context, in Input) (string, error) {
	fragment, err := g.Parse(ctx, in.Markdown)
	if err != nil {
		return "", err
	}

	doc, err := g.assembler.Assemble(fragment, g.stylesheet, g.metadata(in))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrContentProcessing, err)
	}
	if !in.SkipATS {
		doc = g.normalizer.Normalize(doc)
	}
	return doc, nil
}

// Generate writes the PDF for in to outputPath.
// The output path is checked before any work: it must end in .pdf.
// Internal panics are recovered and returned as errors.
func (g *Generator) Generate(ctx context.Context, in Input, outputPath string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateOutputPath(outputPath); err != nil {
		return err
	}

	start := time.Now()
	log := g.cfg.logger.WithField("output", outputPath)

	log.WithField("stage", StageContentProcessing).Info("Processing content")
	doc, err := g.Document(ctx, in)
	if err != nil {
		return err
	}

	if err := g.renderer.render(ctx, doc, outputPath, g.cfg.render); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"stage":    StageCompletion,
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("PDF generated successfully")
	return nil
}

func (g *Generator) metadata(in Input) pipeline.Metadata {
	meta := pipeline.Metadata{
		Title:       in.Title,
		Description: in.Description,
		Lang:        g.cfg.lang,
	}
	if meta.Description == "" {
		meta.Description = g.cfg.description
	}
	if meta.Title == "" {
		if strings.EqualFold(strings.TrimSpace(g.cfg.title), TitleAuto) {
			meta.AutoTitle = true
		} else {
			meta.Title = g.cfg.title
		}
	}
	return meta
}
