// Package markdown renders post content to HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// raw HTML in post content stays escaped
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ToHTML - converts markdown to HTML ready for template embedding
// On a render error the raw markdown is shown escaped instead of losing the post
func ToHTML(source string) template.HTML {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}
