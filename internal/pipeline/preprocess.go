package pipeline

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

const byteOrderMark = "\ufeff"

// Preprocess prepares markdown for goldmark: strips a leading byte order
// mark, converts \r\n and \r to \n, and limits blank line runs to one.
func Preprocess(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	content = crlfOrCR.ReplaceAllString(content, "\n")
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}
