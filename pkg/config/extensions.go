package config

import "strings"

// ParseExtensions splits a comma separated list such as "log, .TMP" into
// a set of lowercase extensions without the leading dot.
func ParseExtensions(s string) map[string]struct{} {
	result := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		ext := strings.ToLower(strings.TrimSpace(part))
		ext = strings.TrimPrefix(ext, ".")
		if ext == "" {
			continue
		}
		result[ext] = struct{}{}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
