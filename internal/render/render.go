// Package render turns a map description into the page body.
package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Format selects how the description is written to the page body.
type Format string

const (
	// FormatText writes the description verbatim.
	FormatText Format = "text"
	// FormatMarkdown renders the description as Markdown and sanitizes the HTML.
	FormatMarkdown Format = "markdown"
)

var (
	markdownRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	htmlSanitizer = bluemonday.UGCPolicy()
)

// Body returns the page body for description, without the trailing newline
// the page writer appends.
func Body(description string, format Format) (string, error) {
	switch format {
	case FormatText, "":
		return description, nil
	case FormatMarkdown:
		return markdown(description)
	default:
		return "", fmt.Errorf("unknown body format %q", format)
	}
}

func markdown(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	out := htmlSanitizer.SanitizeBytes(buf.Bytes())
	return string(bytes.TrimRight(out, "\n")), nil
}
