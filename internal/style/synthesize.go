package style

import (
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// ItemSuffix is appended to a section class to form the class of the
// subheadings that belong to that section.
const ItemSuffix = "-item"

// ItemClass returns the class given to subheadings inside a section.
func (s Section) ItemClass() string {
	return s.Class() + ItemSuffix
}

// Synthesize builds the stylesheet for tokens and sections.
// The result depends only on its arguments: same input, byte-identical output.
// Layers are emitted in cascade order, later layers override earlier ones.
func Synthesize(tokens Tokens, sections SectionTable) string {
	var buf strings.Builder
	buf.Grow(8 * 1024)

	writeBaseCSS(&buf, tokens)
	writeTypographyCSS(&buf, tokens)
	writeSectionCSS(&buf, tokens)
	writeCodeCSS(&buf, tokens)
	writeListCSS(&buf, tokens)
	writeSpecialSectionCSS(&buf, tokens, sections)
	writePrintCSS(&buf, tokens)
	writeUtilityCSS(&buf, tokens)

	return buf.String()
}

func writeBaseCSS(buf *strings.Builder, t Tokens) {
	fmt.Fprintf(buf, `/* Base */
* {
  margin: 0;
  padding: 0;
  box-sizing: border-box;
}
body {
  font-family: %s;
  font-size: %s;
  line-height: %s;
  color: %s;
  background: %s;
  max-width: %s;
  margin: 0 auto;
  padding: %s;
}
`, fontStack(t.Fonts), t.FontSizes.BodyText, t.Layout.LineHeight, t.Colors.TextMain,
		t.Colors.Background, t.Layout.MaxWidth, t.Layout.PageMargin)
}

func writeTypographyCSS(buf *strings.Builder, t Tokens) {
	fmt.Fprintf(buf, `
/* Headers */
h1 {
  font-size: %s;
  font-weight: bold;
  color: %s;
  text-align: center;
  margin-bottom: %s;
  padding-bottom: %s;
  border-bottom: %s solid %s;
}
h2 {
  font-size: %s;
  font-weight: bold;
  color: %s;
  text-transform: uppercase;
  letter-spacing: 0.5pt;
  margin-top: %s;
  margin-bottom: %s;
  padding-bottom: 2pt;
  border-bottom: %s solid %s;
}
h3 {
  font-size: %s;
  font-weight: bold;
  color: %s;
  margin-top: %s;
  margin-bottom: %s;
}
`,
		t.FontSizes.MainTitle, t.Colors.Primary, t.Spacing.ParagraphMargin, t.Spacing.ParagraphMargin,
		t.Spacing.BorderWidth, t.Colors.Secondary,
		t.FontSizes.SectionHeader, t.Colors.Primary, t.Spacing.SectionMarginTop, t.Spacing.SectionMarginBottom,
		t.Spacing.ThinBorder, t.Colors.Border,
		t.FontSizes.SubsectionHeader, t.Colors.Primary, t.Spacing.SubsectionMarginTop, t.Spacing.SubsectionMarginBottom)
}

func writeSectionCSS(buf *strings.Builder, t Tokens) {
	fmt.Fprintf(buf, `
/* Sections */
body > p:first-of-type {
  text-align: center;
  font-size: %s;
  color: %s;
  margin-bottom: %s;
}
h3 + p strong, h3 + p b {
  color: %s;
}
hr {
  border: none;
  border-top: %s solid %s;
  margin: %s 0;
}
p {
  margin-bottom: %s;
  text-align: justify;
}
strong, b {
  font-weight: bold;
  color: %s;
}
em, i {
  font-style: italic;
  color: %s;
}
a {
  color: %s;
  text-decoration: none;
}
`,
		t.FontSizes.ContactInfo, t.Colors.TextMuted, t.Spacing.SectionMarginTop,
		t.Colors.TextMuted,
		t.Spacing.ThinBorder, t.Colors.BorderLight, t.Spacing.SubsectionMarginTop,
		t.Spacing.ParagraphMargin,
		t.Colors.Primary,
		t.Colors.TextMuted,
		t.Colors.Secondary)
}

// writeCodeCSS emits the chroma theme for highlighted code blocks.
// Unknown theme names fall back to chroma's default style.
func writeCodeCSS(buf *strings.Builder, t Tokens) {
	fmt.Fprintf(buf, `
/* Code */
pre {
  background: %s;
  border: %s solid %s;
  padding: 6pt;
  margin-bottom: %s;
  white-space: pre-wrap;
  font-size: 9pt;
}
code {
  font-family: 'Courier New', Courier, monospace;
}
`, t.Colors.AccentBackground, t.Spacing.ThinBorder, t.Colors.BorderLight, t.Spacing.ParagraphMargin)

	if t.CodeTheme == "" {
		return
	}
	var css strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(t.CodeTheme)); err != nil {
		return
	}
	buf.WriteString(css.String())
}

func writeListCSS(buf *strings.Builder, t Tokens) {
	fmt.Fprintf(buf, `
/* Lists */
ul, ol {
  margin-bottom: %s;
  padding-left: %s;
}
ul {
  list-style-type: disc;
}
li {
  margin-bottom: %s;
}
li p {
  margin-bottom: 0;
}
`, t.Spacing.ListMargin, t.Spacing.ListPadding, t.Spacing.ListItemMargin)
}

// writeSpecialSectionCSS turns the section table into class-based rules.
// Rows with an empty name or an unknown kind produce nothing.
func writeSpecialSectionCSS(buf *strings.Builder, t Tokens, sections SectionTable) {
	if len(sections) == 0 {
		return
	}
	buf.WriteString("\n/* Special sections */\n")
	for _, s := range sections {
		if s.Name == "" {
			continue
		}
		switch s.Kind {
		case SectionLead:
			fmt.Fprintf(buf, `h2.%s + p {
  font-style: italic;
  background: %s;
  padding: 8pt 10pt;
  border-left: %s solid %s;
}
`, s.Class(), t.Colors.AccentBackground, t.Spacing.AccentBorder, t.Colors.Secondary)
		case SectionAccent:
			c := s.ItemClass()
			fmt.Fprintf(buf, `h3.%s, h4.%s, h5.%s, h6.%s {
  color: %s;
}
`, c, c, c, c, t.Colors.Secondary)
		}
	}
}

func writePrintCSS(buf *strings.Builder, t Tokens) {
	fmt.Fprintf(buf, `
/* Print */
@media print {
  body {
    font-size: %s;
    padding: %s;
    max-width: none;
  }
  h1 {
    font-size: %s;
  }
  h2 {
    font-size: %s;
    page-break-after: avoid;
    break-after: avoid;
  }
  h3 {
    font-size: %s;
    page-break-after: avoid;
    break-after: avoid;
  }
  ul, ol, pre {
    page-break-inside: avoid;
    break-inside: avoid;
  }
  .page-break {
    page-break-before: always;
    break-before: page;
  }
}
`, t.FontSizes.PrintBody, t.Layout.PrintMargin, t.FontSizes.PrintTitle,
		t.FontSizes.PrintSection, t.FontSizes.PrintSubsection)
}

func writeUtilityCSS(buf *strings.Builder, t Tokens) {
	fmt.Fprintf(buf, `
/* Utilities */
.page-break {
  page-break-before: always;
}
.contact-info {
  text-align: center;
  font-size: %s;
  color: %s;
}
.section {
  margin-bottom: %s;
}
.job-title {
  font-weight: bold;
  color: %s;
}
.company-info {
  color: %s;
  font-style: italic;
}
.achievement {
  margin-left: %s;
}
`, t.FontSizes.ContactInfo, t.Colors.TextMuted, t.Spacing.SectionMarginBottom,
		t.Colors.Primary, t.Colors.TextLight, t.Spacing.ListPadding)
}

func fontStack(f Fonts) string {
	switch {
	case f.Primary != "":
		return f.Primary
	case f.Fallback != "":
		return f.Fallback
	default:
		return "sans-serif"
	}
}
