package md2cv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-md2cv/internal/fileutil"
	"github.com/alnah/go-md2cv/internal/process"
)

// renderState is a step of one render's lifecycle.
type renderState string

const (
	stateUnstarted       renderState = "unstarted"
	stateEngineLaunching renderState = "engine-launching"
	statePageReady       renderState = "page-ready"
	stateContentLoaded   renderState = "content-loaded"
	stateRendered        renderState = "rendered"
	stateEngineClosed    renderState = "engine-closed"
)

// pdfPermissions is the mode of generated PDF files.
const pdfPermissions = 0o644

// engine is a launched headless browser owned by a single render.
type engine interface {
	open(ctx context.Context) (surface, error)
	close() error
	kill()
}

// surface is one page of an engine.
type surface interface {
	load(ctx context.Context, doc string, wait WaitCondition) error
	pdf(ctx context.Context, params *proto.PagePrintToPDF) ([]byte, error)
}

// engineConfig configures engine launch.
type engineConfig struct {
	browserBin string
	sandbox    bool
}

type launchFunc func(ctx context.Context, cfg engineConfig) (engine, error)

// Compile-time interface checks.
var (
	_ engine     = (*rodEngine)(nil)
	_ surface    = (*rodSurface)(nil)
	_ launchFunc = launchRod
)

// renderer drives one engine per call through the render lifecycle.
// It holds only configuration and is safe for concurrent use.
type renderer struct {
	launch  launchFunc
	engine  engineConfig
	pool    *Pool
	logger  logrus.FieldLogger
	onState func(renderState) // test hook, may be nil
}

// render writes doc as a PDF to outputPath.
// The engine is closed on every path once launched; a close failure is
// logged and the browser process group killed, never returned.
func (r *renderer) render(ctx context.Context, doc, outputPath string, opts RenderOptions) error {
	r.transition(stateUnstarted, outputPath)

	if err := validateOutputPath(outputPath); err != nil {
		return err
	}
	params, err := opts.printParams()
	if err != nil {
		return err
	}

	if r.pool != nil {
		if err := r.pool.Acquire(ctx); err != nil {
			return err
		}
		defer r.pool.Release()
	}

	r.transition(stateEngineLaunching, outputPath)
	eng, err := r.launch(ctx, r.engine)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrEngineLaunch, err)
	}
	defer func() {
		if closeErr := eng.close(); closeErr != nil {
			r.logger.WithError(closeErr).Warn("closing render engine failed, killing browser process")
			eng.kill()
		}
		r.transition(stateEngineClosed, outputPath)
	}()

	page, err := eng.open(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: opening page: %v", ErrEngineLaunch, err)
	}
	r.transition(statePageReady, outputPath)

	waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	if err := page.load(waitCtx, doc, opts.WaitUntil); err != nil {
		return classifyWaitError(ctx, waitCtx, "loading content", err)
	}
	// Some waits return without error when their context expires.
	if err := waitCtx.Err(); err != nil {
		return classifyWaitError(ctx, waitCtx, "loading content", err)
	}
	r.transition(stateContentLoaded, outputPath)

	data, err := page.pdf(waitCtx, params)
	if err != nil {
		return classifyWaitError(ctx, waitCtx, "printing", err)
	}
	if err := fileutil.WriteFileAtomic(outputPath, data, pdfPermissions); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrRender, outputPath, err)
	}
	r.transition(stateRendered, outputPath)

	return nil
}

// classifyWaitError maps a failed bounded step to the caller's context
// error, ErrRenderTimeout, or ErrRender.
func classifyWaitError(ctx, waitCtx context.Context, step string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", ErrRenderTimeout, step, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrRender, step, err)
}

// Progress stages reported at Info level with the "stage" field.
const (
	StageContentProcessing = "content-processing"
	StageLaunch            = "launch"
	StageGeneration        = "generation"
	StageCompletion        = "completion"
)

func (r *renderer) transition(s renderState, output string) {
	log := r.logger.WithFields(logrus.Fields{"state": s, "output": output})
	log.Debug("render state")

	switch s {
	case stateEngineLaunching:
		log.WithField("stage", StageLaunch).Info("Launching browser")
	case stateContentLoaded:
		log.WithField("stage", StageGeneration).Info("Generating PDF")
	}
	if r.onState != nil {
		r.onState(s)
	}
}

// validateOutputPath requires a non-empty path ending in .pdf.
func validateOutputPath(path string) error {
	if err := fileutil.RequireExtension(path, ".pdf"); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutputPath, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// go-rod engine
// ---------------------------------------------------------------------------

// browserEnvBin names a pre-installed browser (Docker, CI).
const browserEnvBin = "ROD_BROWSER_BIN"

// rodEngine is a Chrome process launched by go-rod.
type rodEngine struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// launchRod starts headless Chrome. Without sandbox the flags match what
// containers and CI runners need; with sandbox Chrome's defaults are kept.
func launchRod(ctx context.Context, cfg engineConfig) (engine, error) {
	l := launcher.New().Context(ctx).Headless(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run")

	bin := cfg.browserBin
	if bin == "" {
		bin = os.Getenv(browserEnvBin)
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	if !cfg.sandbox {
		l = l.NoSandbox(true).
			Set("disable-setuid-sandbox").
			Set("no-zygote")
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, err
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		return nil, err
	}
	return &rodEngine{launcher: l, browser: browser}, nil
}

func (e *rodEngine) open(ctx context.Context) (surface, error) {
	page, err := e.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	return &rodSurface{page: page}, nil
}

func (e *rodEngine) close() error {
	if err := e.browser.Close(); err != nil {
		return err
	}
	e.launcher.Cleanup()
	return nil
}

func (e *rodEngine) kill() {
	process.KillProcessGroup(e.launcher.PID())
	e.launcher.Kill()
	e.launcher.Cleanup()
}

// rodSurface is a go-rod page.
type rodSurface struct {
	page *rod.Page
}

// load sets the document and waits for it. The request-idle watcher is
// armed before the content is set so no request is missed.
func (s *rodSurface) load(ctx context.Context, doc string, wait WaitCondition) error {
	page := s.page.Context(ctx)

	var waitIdle func()
	if wait == WaitNetworkIdle {
		waitIdle = page.WaitRequestIdle(networkIdleWindow, nil, nil, nil)
	}

	if err := page.SetDocumentContent(doc); err != nil {
		return err
	}
	if err := page.WaitLoad(); err != nil {
		return err
	}
	if waitIdle != nil {
		waitIdle()
	}
	return ctx.Err()
}

func (s *rodSurface) pdf(ctx context.Context, params *proto.PagePrintToPDF) ([]byte, error) {
	reader, err := s.page.Context(ctx).PDF(params)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return data, nil
}
