package rendering

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// previewMarkdown keeps single line breaks so salutations and signatures stay on their own lines.
// Raw HTML in generated text is omitted by goldmark's default (unsafe disabled) renderer.
var previewMarkdown = goldmark.New(
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// ToHTML converts a processed advertisement into an HTML preview fragment.
func ToHTML(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := previewMarkdown.Convert([]byte(text), &buf); err != nil {
		return "", &RenderError{Message: "failed to convert preview", Cause: err}
	}
	//nolint:gosec // goldmark escapes text and drops raw HTML
	return template.HTML(buf.String()), nil
}
