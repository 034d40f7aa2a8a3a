package snapshot

import "strings"

// redactedMarker replaces every value of a sensitive key in the report.
const redactedMarker = "={Exists}"

// ExtractEnvKeys parses env-style key=value content and returns the key
// names in file order. Blank lines, comments, and lines without '=' are
// skipped. Values are discarded immediately and never leave this function.
func ExtractEnvKeys(content []byte) []string {
	var keys []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// RedactKey renders a sensitive key as a partially masked existence marker.
// Keys longer than 8 characters keep their first four and last two
// characters; shorter keys are rendered verbatim. The value is never part
// of the rendering.
func RedactKey(key string) string {
	if len(key) > 8 {
		return key[:4] + "..." + key[len(key)-2:] + redactedMarker
	}
	return key + redactedMarker
}
