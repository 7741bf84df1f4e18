package webdoc

import (
	"regexp"
	"strings"
)

var (
	scriptRe = regexp.MustCompile(`(?is)<script.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style.*?</style>`)
	tagRe    = regexp.MustCompile(`(?s)<[^>]*>`)
	blankRe  = regexp.MustCompile(`\n{3,}`)
	spaceRe  = regexp.MustCompile(`[ \t]{2,}`)
)

// entities covers the replacements that actually occur in the pages this
// service reads; anything rarer passes through literally.
var entities = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&laquo;", "«",
	"&raquo;", "»",
	"&mdash;", "—",
)

// StripMarkup removes script/style blocks and tags from an HTML payload,
// decodes common entities, and collapses the leftover whitespace. Block
// level tags become line breaks so paragraphs stay readable.
func StripMarkup(html string) string {
	text := scriptRe.ReplaceAllString(html, "")
	text = styleRe.ReplaceAllString(text, "")

	// Keep paragraph boundaries before dropping tags.
	for _, tag := range []string{"</p>", "</div>", "<br>", "<br/>", "<br />", "</li>", "</h1>", "</h2>", "</h3>"} {
		text = strings.ReplaceAll(text, tag, tag+"\n")
	}

	text = tagRe.ReplaceAllString(text, "")
	text = entities.Replace(text)

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = spaceRe.ReplaceAllString(strings.TrimSpace(line), " ")
		lines = append(lines, line)
	}

	text = strings.Join(lines, "\n")
	text = blankRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
