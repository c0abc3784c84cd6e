// Package pipeline implements the document stages between markdown and PDF.
//
// The stages run in this order:
//   - Markdown preprocessing (line endings, blank line runs)
//   - Markdown to HTML fragment conversion via goldmark, with résumé
//     section tagging and raw HTML policy
//   - Document assembly via html/template (head metadata, inline stylesheet)
//   - ATS normalization through an ordered rewrite table
//
// Every stage is a pure function of its input and the configuration it was
// built with. PDF rendering lives in the root md2cv package.
package pipeline
