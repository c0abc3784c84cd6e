// Package md2cv turns a markdown résumé into a styled, ATS-parseable PDF
// using headless Chrome.
//
// # Quick Start
//
//	gen, err := md2cv.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = gen.Generate(ctx, md2cv.Input{Markdown: "# Jane Doe\n\n..."}, "cv.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Pipeline
//
// Each Generate call runs these stages:
//
//  1. Markdown to HTML fragment via goldmark (CommonMark + GFM, code
//     highlighting, résumé section tagging, raw HTML policy)
//  2. Document assembly with an inline stylesheet synthesized from
//     StyleTokens and the SectionTable
//  3. ATS normalization (strong/em to b/i, whitespace collapse)
//  4. PDF rendering in a fresh headless Chrome instance (go-rod), written
//     atomically to the output path
//
// Use Generator.Parse for a fragment preview and Generator.Document for the
// final HTML without launching a browser.
//
// # Configuration
//
//	gen, err := md2cv.NewGenerator(
//	    md2cv.WithTimeout(time.Minute),
//	    md2cv.WithDefaultTitle(md2cv.TitleAuto),
//	    md2cv.WithRenderOptions(md2cv.RenderOptions{Format: md2cv.FormatLetter, ...}),
//	    md2cv.WithLogger(logger),
//	)
//
// Progress is reported through the logger at Info level with a "stage"
// field: content-processing, launch, generation, completion.
//
// # Concurrency
//
// A Generator is safe for concurrent use. Share a Pool to cap how many
// browsers run at once:
//
//	pool := md2cv.NewPool(md2cv.ResolvePoolSize(0))
//	gen, err := md2cv.NewGenerator(md2cv.WithPool(pool))
//
// # Sandbox
//
// Chrome's sandbox is disabled by default so rendering works in containers
// and CI. Enable it with WithSandbox(true) when rendering untrusted input on
// a host that supports it.
package md2cv
