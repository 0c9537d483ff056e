package agent

import (
	"regexp"
	"strings"
)

var (
	fencedJSONRe   = regexp.MustCompile(`(?s)` + "```json.*?```")
	tripleNewline  = regexp.MustCompile(`\n{3,}`)
	finalAnswerPfx = []string{"Final Answer:", "Here is the answer", "Based on the search"}
)

// cleanFinalAnswer implements spec §4.6 step 4: strip markdown-fenced JSON
// blocks, common preambles, and collapse runs of >=3 newlines to two.
func cleanFinalAnswer(s string) string {
	s = fencedJSONRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	for _, pfx := range finalAnswerPfx {
		if strings.HasPrefix(s, pfx) {
			s = strings.TrimSpace(strings.TrimPrefix(s, pfx))
		}
	}
	s = tripleNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
