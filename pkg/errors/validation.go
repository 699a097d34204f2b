package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds board and widget identifiers.
const maxIDLength = 128

// ValidateID validates a board or widget identifier.
// Identifiers end up in file names and storage keys, so anything that could
// escape a directory or confuse a key namespace is rejected:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "identifier cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "identifier too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "identifier contains invalid characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidID, "identifier contains invalid characters: %q", pattern)
		}
	}

	return nil
}
