// Package match locates citation keywords inside library source text.
package match

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ScrubTitle removes the source's own title words from its content before
// keyword matching, so a title repeated in headers or footers does not count
// as evidence. Removal is raw substring removal, not word-boundary-aware,
// matching how the content store concatenates page text.
func ScrubTitle(content, title string) string {
	if content == "" || strings.TrimSpace(title) == "" {
		return content
	}

	for _, word := range strings.Fields(title) {
		if utf8.RuneCountInString(word) <= 3 {
			continue
		}
		re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(word))
		if err != nil {
			// One malformed word never aborts the whole scrub.
			continue
		}
		content = re.ReplaceAllLiteralString(content, "")
	}

	return content
}
