package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	pkgerrors "chatbotht/pkg/errors"
)

// Supported document types, keyed by lowercase extension without the dot.
const (
	TypePDF  = "pdf"
	TypeTXT  = "txt"
	TypeDOCX = "docx"
)

var allowedTypes = map[string]bool{
	TypePDF:  true,
	TypeTXT:  true,
	TypeDOCX: true,
}

// Extension returns the lowercase extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// ValidateFilename checks name against the allow-list and returns its type.
func ValidateFilename(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", pkgerrors.ErrEmptyFilename
	}
	ext := Extension(name)
	if !allowedTypes[ext] {
		return "", fmt.Errorf("%w: %s", pkgerrors.ErrUnsupportedFileType, ext)
	}
	return ext, nil
}
