// Package render turns generated Markdown into sanitized HTML or styled
// terminal output.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// EmptyHTML is returned for empty input.
const EmptyHTML = "<p>No content generated</p>"

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	policy = bluemonday.UGCPolicy()

	bulletLine = regexp.MustCompile(`(?m)^[ \t]*• `)
)

// Normalize rewrites "• " bullets into Markdown list items so they render
// as lists.
func Normalize(markdown string) string {
	return bulletLine.ReplaceAllString(markdown, "- ")
}

// HTML renders markdown to sanitized HTML.
func HTML(markdown string) string {
	if strings.TrimSpace(markdown) == "" {
		return EmptyHTML
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(Normalize(markdown)), &buf); err != nil {
		// goldmark only fails on writer errors; escape the input instead.
		return "<p>" + policy.Sanitize(markdown) + "</p>"
	}
	return strings.TrimSpace(policy.Sanitize(buf.String()))
}

// Terminal renders markdown for a terminal of the given width. theme is the
// stored theme setting; "light" and "dark" pick glamour styles, anything
// else detects the terminal background.
func Terminal(markdown string, width int, theme string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "No content generated\n", nil
	}
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch theme {
	case "light", "dark":
		opts = append(opts, glamour.WithStylePath(theme))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", eris.Wrap(err, "render: create terminal renderer")
	}
	out, err := r.Render(Normalize(markdown))
	if err != nil {
		return "", eris.Wrap(err, "render: render markdown")
	}
	return out, nil
}
