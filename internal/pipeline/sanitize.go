package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// activeElements are removed with their content.
const activeElements = "script, iframe, frame, frameset, object, embed, applet, " +
	"link, meta, base, title, style, form, noscript, template"

// urlAttributes may carry a script URL.
var urlAttributes = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"formaction": true,
	"xlink:href": true,
	"poster":     true,
	"background": true,
}

// Sanitize strips active content from an HTML fragment: script-capable and
// head-only elements, on* event handlers, srcdoc, and javascript:, vbscript:
// or data:text/html URLs. Everything else is kept as written.
func Sanitize(fragment string) (string, error) {
	body, err := fragmentBody(fragment)
	if err != nil {
		return "", err
	}

	body.Find(activeElements).Remove()
	body.Find("*").Each(func(_ int, s *goquery.Selection) {
		var drop []string
		for _, attr := range s.Nodes[0].Attr {
			key := strings.ToLower(attr.Key)
			switch {
			case strings.HasPrefix(key, "on"), key == "srcdoc":
				drop = append(drop, attr.Key)
			case urlAttributes[key] && isScriptURL(attr.Val):
				drop = append(drop, attr.Key)
			}
		}
		for _, key := range drop {
			s.RemoveAttr(key)
		}
	})

	return body.Html()
}

// isScriptURL reports whether u runs code when followed. Browsers ignore
// whitespace and control characters inside the scheme, so they are dropped
// before comparing.
func isScriptURL(u string) bool {
	scheme := strings.Map(func(r rune) rune {
		if r <= ' ' {
			return -1
		}
		return r
	}, strings.ToLower(u))

	return strings.HasPrefix(scheme, "javascript:") ||
		strings.HasPrefix(scheme, "vbscript:") ||
		strings.HasPrefix(scheme, "data:text/html")
}

// headElements belong to the assembled head only.
const headElements = "title, style"

// StripHeadElements removes title and style elements from a fragment.
// A fragment without them is returned unchanged.
func StripHeadElements(fragment string) (string, error) {
	lower := strings.ToLower(fragment)
	if !strings.Contains(lower, "<title") && !strings.Contains(lower, "<style") {
		return fragment, nil
	}
	body, err := fragmentBody(fragment)
	if err != nil {
		return "", err
	}
	body.Find(headElements).Remove()
	return body.Html()
}

// fragmentBody parses fragment inside an explicit body. Head-only
// elements stay where they were written so they can be found and removed.
func fragmentBody(fragment string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		"<!DOCTYPE html><html><head></head><body>" + fragment + "</body></html>",
	))
	if err != nil {
		return nil, err
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return nil, errSanitizerNoOutput
	}
	return body, nil
}
