package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name unchanged", "cover.png", "cover.png"},
		{"spaces become underscores", "my cover image.png", "my_cover_image.png"},
		{"path separators flattened", "../../etc/passwd", ".._.._etc_passwd"},
		{"unicode flattened", "обложка.png", "_______.png"},
		{"empty falls back", "", "file"},
		{"whitespace only falls back", "   ", "file"},
		{"dots only falls back", "...", "file"},
		{"dots and separators fall back", "./.", "file"},
		{"hyphens preserved", "a-b-c.webp", "a-b-c.webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "png", FileExtension("cover.PNG"))
	assert.Equal(t, "gz", FileExtension("archive.tar.gz"))
	assert.Equal(t, "", FileExtension("README"))
	assert.Equal(t, "", FileExtension("trailing."))
}
