// Package pdftext extracts the plain text of a PDF document.
//
// Extraction loses the page layout: columns collapse into runs of spaces and
// page breaks disappear. The parsers downstream are written against that
// flattened form, not against the visual document.
package pdftext

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
)

// Extract returns the concatenated plain text of every page of the PDF at
// path.
func Extract(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot open pdf %q: %w", path, err)
	}

	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("cannot extract text from %q: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(b); err != nil {
		return "", fmt.Errorf("cannot read extracted text of %q: %w", path, err)
	}
	return buf.String(), nil
}

// IsPDF reports whether path names a PDF file, by extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
