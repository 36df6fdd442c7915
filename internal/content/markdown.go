package content

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// RenderMarkdown converts src to HTML. Raw HTML in src is dropped.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BioHTML renders the about biography.
func (a About) BioHTML() (string, error) {
	return RenderMarkdown(a.Bio)
}

// Paragraphs splits the biography on blank-or-single newlines, dropping
// empty lines.
func (a About) Paragraphs() []string {
	var out []string
	for _, line := range strings.Split(a.Bio, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
