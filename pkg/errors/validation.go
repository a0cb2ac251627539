package errors

import (
	"strings"
	"unicode"
)

// ValidateText validates free text (headings, tags, names) for safety.
// Control characters other than newline and tab are rejected, as is text
// longer than maxLen runes.
func ValidateText(field, text string, maxLen int) error {
	n := 0
	for _, r := range text {
		n++
		if r == '\n' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}
	if maxLen > 0 && n > maxLen {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, maxLen)
	}
	return nil
}

// ValidatePath validates a local file path supplied in a request file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateImageURL validates an image reference.
// Avatars may be remote (http, https) or inline data URIs.
func ValidateImageURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	for _, prefix := range []string{"http://", "https://", "data:image/"} {
		if strings.HasPrefix(rawURL, prefix) {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use http, https or data:image scheme")
}

// ValidateNonNegative rejects negative sizes, which the layout engine does
// not handle.
func ValidateNonNegative(field string, v float64) error {
	if v < 0 {
		return New(ErrCodeInvalidStyle, "%s must not be negative (got %g)", field, v)
	}
	return nil
}
