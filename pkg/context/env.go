package context

import "strings"

// parseEnvLines parses a flat KEY=VALUE line list (dotenv-style, but with
// no quoting or comment syntax). Blank lines and lines without '=' are
// skipped, whitespace around both sides is trimmed, and the last
// occurrence of a duplicate key wins.
func parseEnvLines(data []byte) map[string]interface{} {
	out := make(map[string]interface{})
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}
