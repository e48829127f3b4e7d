package errors

import (
	"strings"
	"unicode"
)

// maxIdentifierLen bounds aspect and session identifiers accepted from users.
const maxIdentifierLen = 128

// ValidateIdentifier checks that an aspect identifier supplied by a user
// is safe to use as a map key, cache key component and file name part.
// It does not check membership in any dataset; that is the solver's job.
//
// Validation rules:
//   - No empty identifiers
//   - No whitespace or control characters
//   - No path separators
//   - Maximum length of 128 characters
func ValidateIdentifier(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > maxIdentifierLen {
		return New(ErrCodeInvalidInput, "identifier too long (max %d characters)", maxIdentifierLen)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "identifier %q contains whitespace or control characters", id)
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidInput, "identifier %q contains path separators", id)
	}
	return nil
}

// ValidateSessionID validates a session identifier from a URL or flag.
// Session IDs are used as file names by the file store, so the same
// rules as [ValidateIdentifier] apply and "." or ".." are rejected.
func ValidateSessionID(id string) error {
	if err := ValidateIdentifier(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid session id")
	}
	if id == "." || id == ".." {
		return New(ErrCodeInvalidInput, "invalid session id %q", id)
	}
	return nil
}
