package usecase

import (
	"regexp"
	"strings"
)

var (
	thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	thinkOpenRe  = regexp.MustCompile(`(?s)<think>.*$`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// sanitize cleans a raw model reply before it is stored or delivered:
// reasoning blocks are stripped (including an unterminated opener, which
// swallows everything after it), runs of blank lines collapse to one,
// and surrounding whitespace is trimmed.
func sanitize(text string) string {
	text = thinkBlockRe.ReplaceAllString(text, "")
	text = thinkOpenRe.ReplaceAllString(text, "")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
