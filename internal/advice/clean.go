package advice

import (
	"regexp"
	"strings"
)

// StripCodeFence removes Markdown code-fence wrapping from a model
// response, for models that ignore the no-fence instruction. If junk
// still surrounds a JSON object, only the first '{' to the last '}'
// is kept.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if strings.HasPrefix(s, "{") {
		if end := strings.LastIndex(s, "}"); end != -1 {
			s = strings.TrimSpace(s[:end+1])
		}
	}

	return s
}

var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	codeRe   = regexp.MustCompile("`([^`]+)`")
)

// StripMarkdown reduces a model response to plain text by unwrapping
// bold, italic and inline-code markers. Advisory messages are plain
// text by contract; nothing in them is ever rendered as markup.
func StripMarkdown(s string) string {
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = codeRe.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
