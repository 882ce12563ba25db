package utils

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFilename reduces a client-supplied filename to a restricted
// character set safe for use in object storage keys. Path separators and
// anything outside [a-zA-Z0-9.-] become underscores.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "file"
	}

	sanitized := unsafeFilenameChars.ReplaceAllString(name, "_")

	// A name of only dots would still traverse; flatten it.
	if strings.Trim(sanitized, "._") == "" {
		return "file"
	}
	return sanitized
}

// FileExtension returns the lowercase extension without the dot, or "" when
// the name has none.
func FileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
