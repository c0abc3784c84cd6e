package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag and argument errors.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds per-document flags.
type documentFlags struct {
	title string
	noATS bool
}

// renderFlags holds PDF rendering flags. Empty values keep the config.
type renderFlags struct {
	format     string
	margin     string
	timeout    string
	wait       string
	landscape  bool
	sandbox    bool
	browserBin string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common   commonFlags
	document documentFlags
	render   renderFlags
	output   string
	workers  int
	html     bool
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common   commonFlags
	document documentFlags
	output   string
}

// templateFlags holds flags for the template command.
type templateFlags struct {
	output    string
	assetsDir string
	list      bool
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show progress and timing")
}

func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"auto\" = first H1)")
	fs.BoolVar(&f.noATS, "no-ats", false, "keep bold/italic and whitespace as written")
}

func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.format, "format", "", "page format: a3, a4, a5, letter, legal, tabloid")
	fs.StringVar(&f.margin, "margin", "", "margin on every edge, e.g. 10mm, 0.5in")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "render timeout (e.g. 30s, 2m)")
	fs.StringVar(&f.wait, "wait", "", "ready condition: networkidle or load")
	fs.BoolVar(&f.landscape, "landscape", false, "landscape orientation")
	fs.BoolVar(&f.sandbox, "sandbox", false, "enable Chrome's sandbox")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome binary (default: ROD_BROWSER_BIN or auto)")
}

// parse runs fs.Parse and wraps errors other than --help in ErrUsage.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF (one input) or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders (0 = auto)")
	fs.BoolVar(&f.html, "html", false, "also write the HTML document next to each PDF")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)

	fs.Usage = func() { printGenerateUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &previewFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write HTML to this .html file instead of stdout")
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)

	fs.Usage = func() { printPreviewUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseTemplateFlags parses template command flags and returns positional args.
func parseTemplateFlags(args []string, stderr io.Writer) (*templateFlags, []string, error) {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := &templateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write the template to this .md file")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory with custom templates/")
	fs.BoolVar(&f.list, "list", false, "list embedded templates")

	fs.Usage = func() { printTemplateUsage(stderr) }

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
