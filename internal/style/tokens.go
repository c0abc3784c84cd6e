package style

// Tokens is the fixed table of design constants the stylesheet is built from.
// It is a value type: callers copy it, override fields, and pass it to
// Synthesize. Nothing in this package mutates a Tokens value.
type Tokens struct {
	Colors    Colors    `yaml:"colors"`
	FontSizes FontSizes `yaml:"fontSizes"`
	Spacing   Spacing   `yaml:"spacing"`
	Fonts     Fonts     `yaml:"fonts"`
	Layout    Layout    `yaml:"layout"`
	CodeTheme string    `yaml:"codeTheme"` // chroma style name, "" = no code colors
}

// Colors holds semantic colors.
type Colors struct {
	Primary          string `yaml:"primary"`
	Secondary        string `yaml:"secondary"`
	TextMain         string `yaml:"textMain"`
	TextMuted        string `yaml:"textMuted"`
	TextLight        string `yaml:"textLight"`
	Border           string `yaml:"border"`
	BorderLight      string `yaml:"borderLight"`
	Background       string `yaml:"background"`
	AccentBackground string `yaml:"accentBackground"`
}

// FontSizes holds screen and print type sizes.
type FontSizes struct {
	MainTitle        string `yaml:"mainTitle"`
	SectionHeader    string `yaml:"sectionHeader"`
	SubsectionHeader string `yaml:"subsectionHeader"`
	BodyText         string `yaml:"bodyText"`
	ContactInfo      string `yaml:"contactInfo"`
	PrintBody        string `yaml:"printBody"`
	PrintTitle       string `yaml:"printTitle"`
	PrintSection     string `yaml:"printSection"`
	PrintSubsection  string `yaml:"printSubsection"`
}

// Spacing holds margins, paddings and border widths.
type Spacing struct {
	SectionMarginTop       string `yaml:"sectionMarginTop"`
	SectionMarginBottom    string `yaml:"sectionMarginBottom"`
	SubsectionMarginTop    string `yaml:"subsectionMarginTop"`
	SubsectionMarginBottom string `yaml:"subsectionMarginBottom"`
	ParagraphMargin        string `yaml:"paragraphMargin"`
	ListMargin             string `yaml:"listMargin"`
	ListItemMargin         string `yaml:"listItemMargin"`
	ListPadding            string `yaml:"listPadding"`
	BorderWidth            string `yaml:"borderWidth"`
	ThinBorder             string `yaml:"thinBorder"`
	AccentBorder           string `yaml:"accentBorder"`
}

// Fonts holds font stacks.
type Fonts struct {
	Primary  string `yaml:"primary"`
	Fallback string `yaml:"fallback"`
}

// Layout holds page-level layout constants.
type Layout struct {
	MaxWidth    string `yaml:"maxWidth"`
	PageMargin  string `yaml:"pageMargin"`
	PrintMargin string `yaml:"printMargin"`
	LineHeight  string `yaml:"lineHeight"`
}

// DefaultCodeTheme is the chroma style used for fenced code blocks.
const DefaultCodeTheme = "github"

// DefaultTokens returns the professional CV token set.
func DefaultTokens() Tokens {
	return Tokens{
		Colors: Colors{
			Primary:          "#2c3e50",
			Secondary:        "#3498db",
			TextMain:         "#333",
			TextMuted:        "#555",
			TextLight:        "#7f8c8d",
			Border:           "#bdc3c7",
			BorderLight:      "#ecf0f1",
			Background:       "white",
			AccentBackground: "#f8f9fa",
		},
		FontSizes: FontSizes{
			MainTitle:        "24pt",
			SectionHeader:    "14pt",
			SubsectionHeader: "12pt",
			BodyText:         "11pt",
			ContactInfo:      "10pt",
			PrintBody:        "10pt",
			PrintTitle:       "20pt",
			PrintSection:     "12pt",
			PrintSubsection:  "11pt",
		},
		Spacing: Spacing{
			SectionMarginTop:       "20pt",
			SectionMarginBottom:    "8pt",
			SubsectionMarginTop:    "12pt",
			SubsectionMarginBottom: "3pt",
			ParagraphMargin:        "8pt",
			ListMargin:             "10pt",
			ListItemMargin:         "3pt",
			ListPadding:            "15pt",
			BorderWidth:            "2pt",
			ThinBorder:             "1pt",
			AccentBorder:           "3pt",
		},
		Fonts: Fonts{
			Primary:  "'Arial', 'Helvetica', sans-serif",
			Fallback: "Arial, Helvetica, sans-serif",
		},
		Layout: Layout{
			MaxWidth:    "210mm",
			PageMargin:  "15mm",
			PrintMargin: "10mm",
			LineHeight:  "1.4",
		},
		CodeTheme: DefaultCodeTheme,
	}
}
