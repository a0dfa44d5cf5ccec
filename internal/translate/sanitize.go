package translate

import (
	"regexp"
	"strings"
)

var (
	parenDisclaimer   = regexp.MustCompile(`(?is)\((?:note|注)[:：][^)]*\)`)
	bracketDisclaimer = regexp.MustCompile(`(?is)\[(?:note|注)[:：]?[^\]]*\]`)
	noteLine          = regexp.MustCompile(`(?i)^(?:note|注意|注)[:：]`)
	answerPrefix      = regexp.MustCompile(`(?i)^(?:translation|translated text|译文|翻译)\s*[:：]\s*`)
)

// SanitizeAIText strips the wrappers LLM providers like to add around a
// translation: disclaimers, "Translation:" labels and surrounding quotes.
func SanitizeAIText(s string) string {
	s = parenDisclaimer.ReplaceAllString(s, "")
	s = bracketDisclaimer.ReplaceAllString(s, "")

	var kept []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" || noteLine.MatchString(line) {
			continue
		}
		kept = append(kept, answerPrefix.ReplaceAllString(line, ""))
	}
	s = strings.TrimSpace(strings.Join(kept, "\n"))

	for _, q := range [][2]string{{`"`, `"`}, {"“", "”"}, {"「", "」"}} {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
		}
	}
	return s
}
