package mappage

import "strings"

// Normalize returns a copy of fields with leading and trailing whitespace
// stripped from every top-level text value. Other values are carried over
// as they are.
func Normalize(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if s, ok := v.(string); ok {
			out[k] = strings.TrimSpace(s)
			continue
		}
		out[k] = v
	}
	return out
}
