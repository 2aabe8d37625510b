package formatter

import (
	"regexp"
	"strings"
)

var (
	shortcodeRe = regexp.MustCompile(`\[/?[a-zA-Z0-9_-]+(?:\s[^\]]*)?\]`)
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
)

// stripShortcodes removes executable [shortcode] markers from product
// descriptions before they leave the system.
func stripShortcodes(s string) string {
	return shortcodeRe.ReplaceAllString(s, "")
}

// summarize strips markup and cuts the text to at most max characters,
// breaking on the last word boundary.
func summarize(s string, max int) string {
	plain := strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
	if len(plain) <= max {
		return plain
	}

	cut := plain[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
