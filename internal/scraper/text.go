package scraper

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy  = bluemonday.StrictPolicy()
	whitespaceRun = regexp.MustCompile(`\s+`)
	lineBreakRun  = regexp.MustCompile(`\n+`)
	blockBreak    = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|li|div|h[1-6]|tr)\s*>`)
)

// cleanText strips markup embedded in structured-data strings and decodes
// HTML entities. Line breaks are preserved, and <br> or a closing block tag
// becomes one so adjacent steps never run together.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, "<&") {
		s = blockBreak.ReplaceAllString(s, "\n")
		s = html.UnescapeString(strictPolicy.Sanitize(s))
	}
	return strings.TrimSpace(s)
}

// cleanLine is cleanText with all whitespace runs collapsed to one space.
func cleanLine(s string) string {
	return norm(cleanText(s))
}

func norm(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// splitLines splits text on newlines, dropping blank lines.
func splitLines(s string) []string {
	var out []string
	for _, part := range lineBreakRun.Split(s, -1) {
		if line := norm(part); line != "" {
			out = append(out, line)
		}
	}
	return out
}
