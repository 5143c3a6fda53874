package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadDocument reads a document from disk and returns clean plain text,
// dispatching on the file extension: .pdf goes through the PDF extractor,
// .html/.htm through the HTML stripper, anything else is treated as text.
func LoadDocument(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		raw, err := ExtractPDFText(path)
		if err != nil {
			return "", err
		}
		return CleanText(raw), nil
	case ".html", ".htm":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return StripHTML(string(content))
	default:
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return CleanText(string(content)), nil
	}
}
