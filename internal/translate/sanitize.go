package translate

import (
	"regexp"
	"strings"
)

var (
	parenNotePattern   = regexp.MustCompile(`(?is)\(\s*(note|참고|주의)\s*:[^)]*\)`)
	bracketNotePattern = regexp.MustCompile(`(?is)\[\s*(note|참고|주의)\s*:[^\]]*\]`)
	lineNotePattern    = regexp.MustCompile(`(?i)^\s*(note|참고|주의)\s*:`)
	labelPattern       = regexp.MustCompile(`(?i)^\s*(translation|번역)\s*:\s*`)
)

// SanitizeAIText removes the disclaimers LLM translators tend to add
// ("Note: this is a machine translation ...") and collapses whitespace.
func SanitizeAIText(s string) string {
	s = parenNotePattern.ReplaceAllString(s, " ")
	s = bracketNotePattern.ReplaceAllString(s, " ")

	var kept []string
	for _, line := range strings.Split(s, "\n") {
		if lineNotePattern.MatchString(line) {
			continue
		}
		line = labelPattern.ReplaceAllString(line, "")
		if l := strings.TrimSpace(line); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(strings.Fields(strings.Join(kept, " ")), " ")
}
