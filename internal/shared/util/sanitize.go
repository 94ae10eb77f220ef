package util

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidFileName is returned for names that are empty or try to escape
// their directory.
var ErrInvalidFileName = errors.New("invalid file name")

const maxFileNameRunes = 200

// SanitizeFileName replaces path separators and control characters with "_"
// and rejects traversal patterns. Long names keep their extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if strings.Trim(s, "_") == "" {
		return "", ErrInvalidFileName
	}
	return truncateName(s), nil
}

func truncateName(s string) string {
	runes := []rune(s)
	if len(runes) <= maxFileNameRunes {
		return s
	}
	ext := []rune{}
	if i := strings.LastIndexByte(s, '.'); i > 0 && len(s)-i <= 10 {
		ext = []rune(s[i:])
	}
	return string(runes[:maxFileNameRunes-len(ext)]) + string(ext)
}
