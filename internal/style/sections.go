package style

import (
	"strings"
)

// SectionKind selects which rule a special section receives.
type SectionKind string

const (
	// SectionLead sets the paragraph right after the heading off as a callout.
	SectionLead SectionKind = "lead"
	// SectionAccent colors the first subheading after the heading.
	SectionAccent SectionKind = "accent"
)

// ClassPrefix prefixes the class attribute put on matched section headings.
const ClassPrefix = "section-"

// Section is one row of the special-section lookup table.
type Section struct {
	Name     string      `yaml:"name"`     // class suffix, e.g. "summary"
	Kind     SectionKind `yaml:"kind"`     // lead or accent
	Headings []string    `yaml:"headings"` // phrases matched against H2 text
}

// Class returns the heading class for the section.
func (s Section) Class() string {
	return ClassPrefix + s.Name
}

// SectionTable maps conventional résumé headings to style rules.
// Row order matters: the first matching row wins.
type SectionTable []Section

// DefaultSections returns the conventional résumé section table.
func DefaultSections() SectionTable {
	return SectionTable{
		{Name: "summary", Kind: SectionLead, Headings: []string{"Professional Summary", "Summary"}},
		{Name: "education", Kind: SectionAccent, Headings: []string{"Education"}},
		{Name: "certifications", Kind: SectionAccent, Headings: []string{"Certifications"}},
		{Name: "projects", Kind: SectionAccent, Headings: []string{"Projects"}},
	}
}

// ClassFor returns the class for a heading, or "" when no row matches.
func (t SectionTable) ClassFor(heading string) string {
	if s, ok := t.Match(heading); ok {
		return s.Class()
	}
	return ""
}

// Match returns the first row with a phrase contained in heading.
// Matching is case-insensitive substring matching after folding runs of
// whitespace, so "PROFESSIONAL  summary" matches "Professional Summary".
// Rows without a name never match.
func (t SectionTable) Match(heading string) (Section, bool) {
	text := fold(heading)
	if text == "" {
		return Section{}, false
	}
	for _, s := range t {
		if s.Name == "" {
			continue
		}
		for _, h := range s.Headings {
			if phrase := fold(h); phrase != "" && strings.Contains(text, phrase) {
				return s, true
			}
		}
	}
	return Section{}, false
}

func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
