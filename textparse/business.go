package textparse

import "strings"

// ParseBusinessFields parses a form submission as newline-separated
// "key: value" pairs. Keys are lower-cased with spaces replaced by
// underscores, so "Company Name" becomes "company_name" while "Sub-Sector"
// stays "sub-sector". Missing fields are simply absent from the map.
func ParseBusinessFields(message string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(message, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
		fields[key] = strings.TrimSpace(value)
	}
	return fields
}
