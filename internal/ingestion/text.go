// Package ingestion loads résumé and job description documents from disk and
// normalizes them into clean plain text for extraction.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	spaceRun = regexp.MustCompile(`[ \t]+`)
	blankRun = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes raw document text while preserving its structure:
// line endings become LF, trailing whitespace is stripped, runs of spaces
// collapse to one, and blank-line runs collapse to a single separator line.
// Markdown headings and bullets keep their markers so section boundaries
// survive into the prompt.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := strings.Join(cleaned, "\n")
	result = blankRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.TrimSpace(trimmed) == "" {
		return ""
	}

	// Headings lose their indentation, bullets keep it.
	if strings.HasPrefix(trimmed, "#") {
		return strings.TrimRight(trimmed, " \t")
	}
	indent := len(line) - len(trimmed)
	content := spaceRun.ReplaceAllString(strings.TrimSpace(trimmed), " ")
	if indent > 0 && isBullet(trimmed) {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

func isBullet(line string) bool {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
