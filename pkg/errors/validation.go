package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxNameLength = 256

// ValidateName validates a person or team name.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidRoster, "%s name cannot be empty", kind)
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidRoster, "%s name too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRoster, "%s name %q contains invalid control characters", kind, name)
		}
	}

	return nil
}

// ValidateQualification validates a qualification label.
// Labels are compared exactly, so surrounding space is rejected rather than trimmed.
func ValidateQualification(qual string) error {
	if err := ValidateName("qualification", qual); err != nil {
		return err
	}
	if strings.TrimSpace(qual) != qual {
		return New(ErrCodeInvalidRoster, "qualification %q has surrounding whitespace", qual)
	}
	return nil
}

// ValidateCount validates a required position count.
func ValidateCount(team, qual string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidRoster, "team %q requires a negative number of %q", team, qual)
	}
	return nil
}

// ValidateWorkspaceID validates a workspace identifier.
// IDs are UUIDs, so this also rules out path traversal in file-backed stores.
func ValidateWorkspaceID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "workspace id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid workspace id %q", id)
	}
	return nil
}

// ValidateURL validates a backend URL against the schemes it may use.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL %q must use one of the schemes %v", rawURL, schemes)
}
