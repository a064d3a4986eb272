package summarize

import (
	"regexp"
	"strings"
)

// AI output occasionally carries meta-text ("Note: this summary was
// generated..."), inline or as whole lines. Sanitize strips it before
// the summary reaches the renderer.

var (
	parenDisclaimerRe   = regexp.MustCompile(`(?i)\((?:note|disclaimer)[^)]*\)`)
	bracketDisclaimerRe = regexp.MustCompile(`(?i)\[(?:note|disclaimer)[^\]]*\]`)
	lineDisclaimerRe    = regexp.MustCompile(`(?i)^\s*(?:note|disclaimer)\s*:`)
	summaryPrefixRe     = regexp.MustCompile(`(?i)^\s*(?:summary|tl;dr)\s*:\s*`)
)

// Sanitize removes provider disclaimers and boilerplate prefixes from
// AI-generated text.
func Sanitize(text string) string {
	text = parenDisclaimerRe.ReplaceAllString(text, "")
	text = bracketDisclaimerRe.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		if lineDisclaimerRe.MatchString(line) {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	out = summaryPrefixRe.ReplaceAllString(out, "")
	out = strings.Join(strings.Fields(out), " ")
	return strings.TrimSpace(out)
}
