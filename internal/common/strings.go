package common

import (
	"strings"
	"unicode"
)

// UnknownStr is the fallback rendering for out-of-range enum values.
const UnknownStr = "unknown"

// SnakeCase converts a CamelCase identifier to snake_case.
// Runs of upper-case letters are treated as a single word
// (e.g. "APIKey" -> "api_key").
func SnakeCase(name string) string {
	var sb strings.Builder

	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			boundary := i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if boundary {
				sb.WriteByte('_')
			}

			sb.WriteRune(unicode.ToLower(r))

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}
