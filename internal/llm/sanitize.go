package llm

import (
	"regexp"
	"strings"
)

const fence = "```"

var (
	// an opening fence with an optional language tag: ```json, ```JSON, ```jsonc ...
	reOpeningFence = regexp.MustCompile("^```[A-Za-z0-9_+.-]*")
)

// CleanResponse strips surrounding whitespace and markdown code fences from a
// model response. Only fence markers at the very start and end are removed;
// interior content is untouched. Unfenced text comes back trimmed and
// otherwise unchanged, and CleanResponse(CleanResponse(s)) == CleanResponse(s).
func CleanResponse(raw string) string {
	s := strings.TrimSpace(raw)
	for {
		next := stripFences(s)
		if next == s {
			return s
		}
		s = next
	}
}

func stripFences(s string) string {
	if strings.HasPrefix(s, fence) {
		s = reOpeningFence.ReplaceAllString(s, "")
	}
	if strings.HasSuffix(s, fence) {
		s = strings.TrimSuffix(s, fence)
	}
	return strings.TrimSpace(s)
}
