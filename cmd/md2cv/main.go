package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command in args and returns the exit code.
func runMain(args []string, env *Environment) int {
	setMaxProcs(args, env)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if len(args) < 2 {
		runWelcome(env)
		return ExitSuccess
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "generate":
		err = runGenerate(ctx, rest, env)
	case "preview":
		err = runPreview(ctx, rest, env)
	case "template":
		err = runTemplate(rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2cv %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		// "md2cv cv.md" is shorthand for "md2cv generate cv.md".
		if looksLikeMarkdown(cmd) {
			err = runGenerate(ctx, args[1:], env)
			break
		}
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs configures GOMAXPROCS, logging the result with -v.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(args []string, env *Environment) {
	if hasVerboseFlag(args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, a ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", a...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// looksLikeMarkdown reports whether arg names a markdown file.
func looksLikeMarkdown(arg string) bool {
	ext := strings.ToLower(filepath.Ext(arg))
	return ext == ".md" || ext == ".markdown"
}
