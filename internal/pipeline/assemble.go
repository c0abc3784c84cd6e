package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document defaults.
const (
	DefaultTitle       = "Professional CV"
	DefaultDescription = "Professional CV generated from markdown"
	DefaultLang        = "en"
	GeneratorName      = "go-md2cv"
)

// ErrAssemble indicates the document template failed to execute.
var ErrAssemble = errors.New("document assembly failed")

// Metadata describes the head of the assembled document.
type Metadata struct {
	Title       string // empty: first H1 when AutoTitle, else DefaultTitle
	Description string // empty: DefaultDescription
	Lang        string // empty: DefaultLang
	AutoTitle   bool
}

const documentTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="description" content="{{.Description}}">
<meta name="generator" content="{{.Generator}}">
<title>{{.Title}}</title>
<style>
{{.CSS}}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

// Assembler wraps an HTML fragment into a complete, self-contained document.
type Assembler struct {
	tmpl *template.Template
}

// NewAssembler parses the document template once.
func NewAssembler() *Assembler {
	return &Assembler{
		tmpl: template.Must(template.New("document").Parse(documentTemplate)),
	}
}

// Assemble builds the document. The fragment is placed in the body
// verbatim, minus any title or style elements, so the document has exactly
// one of each; the stylesheet goes into that single inline style element.
func (a *Assembler) Assemble(fragment, stylesheet string, meta Metadata) (string, error) {
	fragment, err := StripHeadElements(fragment)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}

	data := struct {
		Lang        string
		Title       string
		Description string
		Generator   string
		CSS         template.CSS
		Body        template.HTML
	}{
		Lang:        orDefault(meta.Lang, DefaultLang),
		Title:       resolveTitle(fragment, meta),
		Description: orDefault(meta.Description, DefaultDescription),
		Generator:   GeneratorName,
		CSS:         template.CSS(sanitizeCSS(stylesheet)), // #nosec G203 -- generated stylesheet, style break-out escaped
		Body:        template.HTML(fragment),                // #nosec G203 -- fragment comes from the parse stage
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssemble, err)
	}
	return buf.String(), nil
}

func resolveTitle(fragment string, meta Metadata) string {
	if t := strings.TrimSpace(meta.Title); t != "" {
		return t
	}
	if meta.AutoTitle {
		if t := FirstHeading(fragment); t != "" {
			return t
		}
	}
	return DefaultTitle
}

// FirstHeading returns the whitespace-folded text of the first H1, or "".
func FirstHeading(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")
}

// sanitizeCSS escapes sequences that could close the style element early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
