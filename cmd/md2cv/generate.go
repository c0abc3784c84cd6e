package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/config"
	"github.com/alnah/go-md2cv/internal/fileutil"
	"github.com/alnah/go-md2cv/internal/logging"
)

// Sentinel errors for generation.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputConflict     = errors.New("conflicting output paths")
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// defaultOutput is the PDF written for a single input without -o.
const defaultOutput = "cv.pdf"

// job is one markdown file and the PDF it produces.
type job struct {
	InputPath  string
	OutputPath string
}

// jobResult holds the outcome of a single generation.
type jobResult struct {
	job
	Err      error
	Duration time.Duration
}

// batchError reports failed jobs; errors.Is matches any of them.
type batchError struct {
	total int
	errs  []error
}

func (e *batchError) Error() string {
	if e.total == 1 {
		return e.errs[0].Error()
	}
	return fmt.Sprintf("%d of %d CV(s) failed", len(e.errs), e.total)
}

func (e *batchError) Unwrap() []error { return e.errs }

// runGenerate renders each markdown input to PDF.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	f, inputs, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(f.workers); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: run 'md2cv generate cv.md'", ErrNoInput)
	}

	warnUnknownEnvVars(env.Stderr)
	logger := logging.NewCLI(env.Stderr, f.common.verbose, f.common.quiet)

	cfg, err := loadConfig(f.common.config)
	if err != nil {
		return withHint(err, f.render.sandbox)
	}
	mergeDocumentFlags(f.document, cfg)
	mergeRenderFlags(f.render, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	jobs, err := planJobs(inputs, f.output)
	if err != nil {
		return err
	}

	pool := md2cv.NewPool(md2cv.ResolvePoolSize(f.workers))
	logger.WithField("workers", pool.Size()).Debug("Render pool ready")

	opts, err := buildOptions(cfg, logger, pool)
	if err != nil {
		return err
	}
	gen, err := env.NewGenerator(opts...)
	if err != nil {
		return err
	}

	results := generateBatch(ctx, gen, jobs, cfg, f.html, pool.Size())
	if failed := printResults(results, f.common, env); failed != nil {
		return withHint(failed, cfg.Render.Sandbox)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2cv.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2cv.MaxPoolSize)
	}
	return nil
}

// planJobs checks inputs and resolves output paths:
//   - one input: -o names the PDF or a directory, default cv.pdf
//   - several inputs: -o names a directory, default next to each input
func planJobs(inputs []string, output string) ([]job, error) {
	for _, in := range inputs {
		if err := validateMarkdownInput(in); err != nil {
			return nil, err
		}
	}

	single := len(inputs) == 1
	if !single && strings.EqualFold(filepath.Ext(output), ".pdf") {
		return nil, fmt.Errorf("%w: -o %s names one file but %d inputs were given; pass a directory", ErrOutputConflict, output, len(inputs))
	}

	jobs := make([]job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		out := resolveOutputPath(in, output, single)
		key := filepath.Clean(out)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, prev, in, out)
		}
		seen[key] = in
		jobs = append(jobs, job{InputPath: in, OutputPath: out})
	}
	return jobs, nil
}

// resolveOutputPath determines the PDF path for one input.
func resolveOutputPath(input, output string, single bool) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".pdf"

	switch {
	case output == "" && single:
		return defaultOutput
	case output == "":
		return filepath.Join(filepath.Dir(input), base)
	case strings.EqualFold(filepath.Ext(output), ".pdf"):
		return output
	default:
		return filepath.Join(output, base)
	}
}

// validateMarkdownInput checks the extension and that path is a regular file.
func validateMarkdownInput(path string) error {
	if !looksLikeMarkdown(path) {
		return fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrReadMarkdown, path)
	}
	return nil
}

// generateBatch runs jobs concurrently; the generator's pool bounds how
// many engines run at once. Results keep the order of jobs.
func generateBatch(ctx context.Context, gen Generator, jobs []job, cfg *config.Config, html bool, limit int) []jobResult {
	results := make([]jobResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = jobResult{job: j, Err: err}
				return err
			}
			results[i] = generateOne(ctx, gen, j, cfg, html)
			return nil
		})
	}
	// Failures are reported per job.
	_ = g.Wait()

	return results
}

// generateOne reads one input and writes its PDF (and HTML with --html).
func generateOne(ctx context.Context, gen Generator, j job, cfg *config.Config, html bool) (result jobResult) {
	start := time.Now()
	result = jobResult{job: j}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(j.InputPath) // #nosec G304 -- user-provided input
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(j.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
		return result
	}

	in := md2cv.Input{Markdown: string(content), SkipATS: !cfg.ATSEnabled()}

	if html {
		doc, err := gen.Document(ctx, in)
		if err != nil {
			result.Err = err
			return result
		}
		if err := fileutil.WriteFileAtomic(htmlOutputPath(j.OutputPath), []byte(doc), filePermissions); err != nil {
			result.Err = fmt.Errorf("%w: %v", ErrWriteOutput, err)
			return result
		}
	}

	result.Err = gen.Generate(ctx, in, j.OutputPath)
	return result
}

// htmlOutputPath returns the HTML path corresponding to a PDF path.
func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
}

// printResults reports each result and returns a *batchError when any failed.
func printResults(results []jobResult, common commonFlags, env *Environment) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}
		printCreated(env.Stdout, r, common)
	}

	if !common.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-len(errs), len(errs))
	}

	if len(errs) == 0 {
		return nil
	}
	return &batchError{total: len(results), errs: errs}
}

func printCreated(w io.Writer, r jobResult, common commonFlags) {
	switch {
	case common.quiet:
	case common.verbose:
		fmt.Fprintf(w, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
	default:
		fmt.Fprintf(w, "Created %s\n", r.OutputPath)
	}
}
