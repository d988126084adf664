package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the length of a
// guest-supplied field (name, email, contact number) before it reaches the
// admission service. The length caps match the column sizes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
