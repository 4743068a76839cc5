// Package filex contains filename and content-type helpers shared by the
// upload issuer and the client-side validator.
package filex

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultVideoExt is used when a filename carries no extension.
const DefaultVideoExt = "mp4"

// Ext returns the trailing dot-suffix of name without the dot, lowercased.
// Falls back to DefaultVideoExt when the name has no extension.
func Ext(name string) string {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	if ext == "" {
		return DefaultVideoExt
	}
	return strings.ToLower(ext)
}

// TypeByName resolves a content type from the filename extension alone.
// Returns "" when the extension is unknown.
func TypeByName(name string) string {
	t := mime.TypeByExtension(filepath.Ext(name))
	if t == "" {
		return ""
	}
	// mime may append parameters ("; charset=..."); drop them.
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// DetectType resolves the content type of the file at path. It prefers
// content sniffing over the extension, so a renamed file still resolves to
// its real type. Returns "" when the file cannot be read.
func DetectType(path string) string {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return TypeByName(path)
	}
	t := m.String()
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	// Sniffing unseekable or truncated video containers can come back as
	// application/octet-stream; trust the extension in that case.
	if t == "application/octet-stream" {
		if byName := TypeByName(path); byName != "" {
			return byName
		}
	}
	return t
}
