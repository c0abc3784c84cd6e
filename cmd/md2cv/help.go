package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-md2cv/internal/fileutil"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Render markdown CVs to ATS-friendly PDF")
	fmt.Fprintln(w, "  preview    Print the HTML document a CV renders from")
	fmt.Fprintln(w, "  template   Write a starter CV in markdown")
	fmt.Fprintln(w, "  serve      Run the web interface and HTTP API")
	fmt.Fprintln(w, "  doctor     Check Chrome and the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2cv help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv generate <input.md>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown CVs to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF, or directory for several inputs")
	fmt.Fprintln(w, "                            (default: cv.pdf, or <name>.pdf next to each input)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (env: MD2CV_CONFIG)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel renders (0 = auto)")
	fmt.Fprintln(w, "      --html                Also write the HTML document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Title (\"auto\" = first H1)")
	fmt.Fprintln(w, "      --no-ats              Keep bold/italic and whitespace as written")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --format <s>          a3, a4, a5, letter, legal, tabloid (default a4)")
	fmt.Fprintln(w, "      --margin <len>        Margin on every edge: 10mm, 1cm, 0.5in, 36pt")
	fmt.Fprintln(w, "      --landscape           Landscape orientation")
	fmt.Fprintln(w, "  -t, --timeout <d>         Render timeout (default 30s, env: MD2CV_TIMEOUT)")
	fmt.Fprintln(w, "      --wait <s>            networkidle (default) or load")
	fmt.Fprintln(w, "      --sandbox             Enable Chrome's sandbox")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome binary (env: ROD_BROWSER_BIN)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show progress and timing")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv preview <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the normalized HTML document. Chrome is not started.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <file.html>  Write to a file instead of stdout")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --title <s>           Title (\"auto\" = first H1)")
	fmt.Fprintln(w, "      --no-ats              Skip ATS normalization")
}

// printTemplateUsage prints usage for the template command.
func printTemplateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv template [name] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a starter CV (default \"cv\") to stdout or a file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <file.md>    Write to a new file")
	fmt.Fprintln(w, "      --assets-dir <dir>    Directory with custom templates/<name>.md")
	fmt.Fprintln(w, "      --list                List embedded templates")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the upload page and HTTP API.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -p, --port <port>         Listen port (default 8081)")
	fmt.Fprintln(w, "      --env <s>             production hides error details")
	fmt.Fprintln(w, "      --storage <s>         local (default) or s3")
	fmt.Fprintln(w, "      --upload-dir <dir>    Generated PDFs for local storage")
	fmt.Fprintln(w, "      --assets-dir <dir>    Override templates/ and web/ assets")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      text or json")
	fmt.Fprintln(w, "      --log-file <path>     Rotate logs into this file")
	fmt.Fprintln(w, "  -c, --config <name>       Document config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent renders (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every setting is also read from MD2CV_<KEY>, e.g. MD2CV_PORT,")
	fmt.Fprintln(w, "MD2CV_S3_BUCKET, MD2CV_RETENTION, MD2CV_RATE_LIMIT.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "template":
		printTemplateUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2cv doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, container and CI settings.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2cv version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2cv help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

// starterFile is the markdown file the welcome screen looks for.
const starterFile = "cv.md"

// runWelcome prints the no-argument screen: examples and next step.
func runWelcome(env *Environment) {
	w := env.Stdout
	fmt.Fprintf(w, "md2cv %s: markdown CVs to ATS-friendly PDF\n", Version)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  md2cv template -o cv.md        start from the sample CV")
	fmt.Fprintln(w, "  md2cv generate cv.md           write cv.pdf")
	fmt.Fprintln(w, "  md2cv generate a.md b.md -o out/")
	fmt.Fprintln(w, "  md2cv serve                    web interface on :8081")
	fmt.Fprintln(w)

	if fileutil.FileExists(starterFile) {
		fmt.Fprintf(w, "Found %s. Next: md2cv generate %s\n", starterFile, starterFile)
	} else {
		fmt.Fprintf(w, "No %s here yet. Next: md2cv template -o %s\n", starterFile, starterFile)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2cv help' for all commands.")
}
