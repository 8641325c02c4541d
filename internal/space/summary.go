package space

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	summaryRunes  = 100
	noDescription = "No description available."
)

// Summary strips markup from a NASA description and keeps the first 100 runes
// followed by "...". Empty descriptions become "No description available.".
func Summary(desc string) string {
	text := strings.Join(strings.Fields(stripTags(desc)), " ")
	if text == "" {
		return noDescription
	}
	r := []rune(text)
	if len(r) > summaryRunes {
		r = r[:summaryRunes]
	}
	return string(r) + "..."
}

// blockTags separate words; inline tags such as <a> or <b> do not.
var blockTags = map[string]bool{"br": true, "p": true, "div": true, "li": true}

// stripTags returns the text content of an HTML fragment.
func stripTags(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] {
				b.WriteByte(' ')
			}
		}
	}
}
