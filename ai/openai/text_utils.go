package openai

import "strings"

// cleanResponse strips markdown code fences and surrounding whitespace from a
// model response. Some models wrap plain-text output in fences despite
// instructions not to.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```text")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
