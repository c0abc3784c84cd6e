package pipeline

import (
	"regexp"
	"strings"
)

// Rule is one rewrite of the ATS normalization table.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// space matches the characters the whitespace rule collapses: ASCII
// whitespace, vertical tab, Unicode space separators, line and paragraph
// separators and the byte order mark. Tag patterns use the same class, so
// collapsing whitespace never turns a non-tag into a tag.
const space = `[\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}]`

// ATSRules returns the default rewrite table, applied in order:
// strong and em become b and i with attributes kept, then whitespace runs
// collapse to one space.
//
// This is a regular-expression heuristic, not an HTML-aware transform.
// An open tag only matches when its attributes contain no '<' or '>', so
// text a first pass left alone is left alone by every later pass.
// Whitespace inside pre blocks is collapsed too.
func ATSRules() []Rule {
	return []Rule{
		{Name: "strong-open", Pattern: regexp.MustCompile(`(?i)<strong(` + space + `[^<>]*)?>`), Replacement: "<b$1>"},
		{Name: "strong-close", Pattern: regexp.MustCompile(`(?i)</strong` + space + `*>`), Replacement: "</b>"},
		{Name: "em-open", Pattern: regexp.MustCompile(`(?i)<em(` + space + `[^<>]*)?>`), Replacement: "<i$1>"},
		{Name: "em-close", Pattern: regexp.MustCompile(`(?i)</em` + space + `*>`), Replacement: "</i>"},
		{Name: "whitespace", Pattern: regexp.MustCompile(space + `+`), Replacement: " "},
	}
}

// Normalizer applies an ordered rule table to HTML text.
// Applying it twice gives the same result as applying it once.
type Normalizer struct {
	rules []Rule
}

// NewNormalizer creates a Normalizer. With no rules, ATSRules is used.
func NewNormalizer(rules ...Rule) *Normalizer {
	if len(rules) == 0 {
		rules = ATSRules()
	}
	return &Normalizer{rules: rules}
}

// Normalize rewrites s through every rule in order and trims the result.
func (n *Normalizer) Normalize(s string) string {
	for _, r := range n.rules {
		s = r.Pattern.ReplaceAllString(s, r.Replacement)
	}
	return strings.TrimSpace(s)
}

// Rules returns the rule names in application order.
func (n *Normalizer) Rules() []string {
	names := make([]string, len(n.rules))
	for i, r := range n.rules {
		names[i] = r.Name
	}
	return names
}
