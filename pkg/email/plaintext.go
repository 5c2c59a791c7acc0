package email

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy     *bluemonday.Policy
	stripPolicyOnce sync.Once

	lineBreakTags  = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockCloseTags = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|table|ul|ol)\s*>`)
)

// PlainText renders an HTML body as plain text for the text/plain
// alternative. Block elements become paragraph breaks and runs of
// whitespace inside a line collapse to a single space.
func PlainText(htmlBody string) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})

	s := lineBreakTags.ReplaceAllString(htmlBody, "\n")
	s = blockCloseTags.ReplaceAllString(s, "\n\n")
	s = html.UnescapeString(stripPolicy.Sanitize(s))

	var (
		out   []string
		blank bool
	)
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
