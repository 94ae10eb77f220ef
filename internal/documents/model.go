package documents

import (
	"path/filepath"
	"strings"
	"time"
)

// Document is a stored resume. Its raw bytes live in the object store under
// StorageKey; extracted plain text, once computed, under ExtractedTextKey.
type Document struct {
	ID               string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	Checksum         string
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string
	ExtractedAt      *time.Time
	CreatedAt        time.Time
}

// HasExtractedText reports whether a cached text copy was recorded.
func (d Document) HasExtractedText() bool {
	return d.ExtractedTextKey != "" && d.ExtractedAt != nil
}

// OwnedBy reports whether userID owns the document.
func (d Document) OwnedBy(userID string) bool {
	return userID != "" && d.UserID == userID
}

// Extension returns the lowercase file extension without the dot.
func (d Document) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(d.FileName)), ".")
}
