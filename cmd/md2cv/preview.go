package main

import (
	"context"
	"fmt"
	"os"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/fileutil"
	"github.com/alnah/go-md2cv/internal/logging"
)

// runPreview prints the normalized HTML document without launching Chrome.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	f, inputs, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		return fmt.Errorf("%w: preview takes exactly one markdown file, got %d", ErrUsage, len(inputs))
	}
	input := inputs[0]
	if err := validateMarkdownInput(input); err != nil {
		return err
	}
	if f.output != "" {
		if err := fileutil.RequireExtension(f.output, ".html"); err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
	}

	cfg, err := loadConfig(f.common.config)
	if err != nil {
		return withHint(err, false)
	}
	mergeDocumentFlags(f.document, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewCLI(env.Stderr, f.common.verbose, f.common.quiet)
	opts, err := buildOptions(cfg, logger, nil)
	if err != nil {
		return err
	}
	gen, err := env.NewGenerator(opts...)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(input) // #nosec G304 -- user-provided input
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}

	doc, err := gen.Document(ctx, md2cv.Input{Markdown: string(content), SkipATS: !cfg.ATSEnabled()})
	if err != nil {
		return withHint(err, false)
	}

	if f.output == "" {
		_, err := fmt.Fprint(env.Stdout, doc)
		return err
	}
	if err := fileutil.WriteFileAtomic(f.output, []byte(doc), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", f.output)
	}
	return nil
}
