package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2cv/internal/style"
)

// Sentinel errors for the parse stage.
var (
	ErrParse             = errors.New("markdown conversion failed")
	ErrInvalidRawHTML    = errors.New("invalid raw HTML policy")
	errSanitizerNoOutput = errors.New("sanitizer produced no body")
)

// RawHTMLPolicy controls what happens to HTML embedded in markdown.
type RawHTMLPolicy string

const (
	// RawHTMLSanitize keeps raw HTML but strips active content.
	RawHTMLSanitize RawHTMLPolicy = "sanitize"
	// RawHTMLPassthrough keeps raw HTML untouched, scripts included. The
	// Assembler still drops title and style elements from the body.
	RawHTMLPassthrough RawHTMLPolicy = "passthrough"
	// RawHTMLOmit drops raw HTML, leaving a comment in its place.
	RawHTMLOmit RawHTMLPolicy = "omit"
)

// ParseRawHTMLPolicy validates s. The empty string selects RawHTMLSanitize.
func ParseRawHTMLPolicy(s string) (RawHTMLPolicy, error) {
	switch p := RawHTMLPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return RawHTMLSanitize, nil
	case RawHTMLSanitize, RawHTMLPassthrough, RawHTMLOmit:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (expected sanitize, passthrough or omit)", ErrInvalidRawHTML, s)
	}
}

// Parser converts markdown to an HTML body fragment.
// A Parser holds no per-call state and is safe for concurrent use.
type Parser struct {
	md     goldmark.Markdown
	policy RawHTMLPolicy
}

// NewParser creates a Parser for the CommonMark + GFM grammar.
// Level-2 headings matching a row of sections get that row's class.
func NewParser(sections style.SectionTable, policy RawHTMLPolicy) *Parser {
	if policy == "" {
		policy = RawHTMLSanitize
	}

	rendererOpts := []renderer.Option{}
	if policy != RawHTMLOmit {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(
				util.Prioritized(&sectionTagger{sections: sections}, 500),
			),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &Parser{md: md, policy: policy}
}

// Policy reports the raw HTML policy the parser was built with.
func (p *Parser) Policy() RawHTMLPolicy {
	return p.policy
}

// Parse converts markdown to an HTML fragment.
// goldmark has no context support, so conversion runs in a goroutine and
// Parse returns ctx.Err() as soon as ctx is done.
func (p *Parser) Parse(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := p.md.Convert([]byte(Preprocess(content)), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrParse, err)}
			return
		}
		out := buf.String()
		if p.policy == RawHTMLSanitize {
			clean, err := Sanitize(out)
			if err != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrParse, err)}
				return
			}
			out = clean
		}
		done <- result{html: out}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// sectionTagger marks résumé sections in the AST.
// A matched level-2 heading gets the section class; deeper headings up to
// the next heading of level 2 or less get the section item class.
type sectionTagger struct {
	sections style.SectionTable
}

func (t *sectionTagger) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	if len(t.sections) == 0 {
		return
	}
	source := reader.Source()

	var current *style.Section
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		switch {
		case h.Level < 2:
			current = nil
		case h.Level == 2:
			current = nil
			if s, ok := t.sections.Match(headingText(h, source)); ok {
				current = &s
				h.SetAttributeString("class", []byte(s.Class()))
			}
		case current != nil:
			h.SetAttributeString("class", []byte(current.ItemClass()))
		}
		return ast.WalkSkipChildren, nil
	})
}

// headingText collects the plain text of a heading, including code spans
// and emphasis children.
func headingText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
