package textutil

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	paragraphRe   = regexp.MustCompile(`(?i)<p\s*/?>|</p>|<br\s*/?>`)
	htmlTagRe     = regexp.MustCompile(`(?s)<[^>]*>`)
)

// PlainText turns the HTML fragment used for item bodies into plain text.
// Paragraphs become newlines, entities are decoded and whitespace runs inside
// a line collapse to one space.
func PlainText(fragment string) string {
	if fragment == "" {
		return ""
	}
	s := scriptStyleRe.ReplaceAllString(fragment, "")
	s = paragraphRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = ExpandTabs(s, DefaultTabWidth)

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// FirstLine returns the first line of PlainText(fragment).
func FirstLine(fragment string) string {
	text := PlainText(fragment)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
