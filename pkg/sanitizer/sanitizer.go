package sanitizer

import (
	"bytes"
	"errors"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	once     sync.Once
	md       goldmark.Markdown
	richText *bluemonday.Policy
	noMarkup *bluemonday.Policy
)

func setup() {
	once.Do(func() {
		md = goldmark.New(
			goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
		)

		richText = bluemonday.NewPolicy()
		richText.AllowStandardURLs()
		richText.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4",
			"strong", "em", "del",
			"ul", "ol", "li",
			"blockquote", "code", "pre",
		)
		richText.AllowAttrs("href").OnElements("a")
		richText.RequireNoFollowOnLinks(true)
		richText.AddTargetBlankToFullyQualifiedLinks(true)

		noMarkup = bluemonday.StrictPolicy()
	})
}

// Markdown converts src to HTML and removes anything outside the allow-list.
func Markdown(src string) (string, error) {
	setup()

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Join(ErrRender, err)
	}
	return strings.TrimSpace(richText.Sanitize(buf.String())), nil
}

// PlainText strips all markup from s and trims surrounding whitespace.
// HTML entities in the result stay escaped.
func PlainText(s string) string {
	setup()
	return strings.TrimSpace(noMarkup.Sanitize(s))
}
