package richtext

import (
	"html"
	"regexp"
	"strings"
)

// Inline markup grammar for rich-text blocks. Applied to HTML-escaped source
// text exactly once; the substitution order matters so later rules never
// re-match text already wrapped by an earlier one.
var (
	reBoldItalic = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic     = regexp.MustCompile(`\*(.+?)\*`)
	reStrike     = regexp.MustCompile(`~~(.+?)~~`)
	reCode       = regexp.MustCompile("`([^`]+)`")
	reLink       = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
)

// Escape HTML-entity-escapes user text (< > & " ') so content can never
// inject markup. Header and table-cell render paths use this alone.
func Escape(s string) string {
	return html.EscapeString(s)
}

// RenderInline converts one run of plain text with inline markup into a safe
// HTML fragment. Literal newlines become <br>.
func RenderInline(text string) string {
	out := applyInline(text)
	return strings.ReplaceAll(out, "\n", "<br>")
}

// RenderInlinePreview is RenderInline for single-line contexts: newlines
// collapse to a single space instead of breaking.
func RenderInlinePreview(text string) string {
	out := applyInline(text)
	out = strings.ReplaceAll(out, "\n", " ")
	return strings.Join(strings.Fields(out), " ")
}

func applyInline(text string) string {
	out := Escape(text)

	out = reBoldItalic.ReplaceAllString(out, "<strong><em>$1</em></strong>")
	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = reItalic.ReplaceAllString(out, "<em>$1</em>")
	out = reStrike.ReplaceAllString(out, "<del>$1</del>")
	out = reCode.ReplaceAllString(out, "<code>$1</code>")
	out = reLink.ReplaceAllString(out, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)

	return out
}

// RenderMarkdown renders a full-document preview: heading lines (#, ##, ###
// at line start) become heading elements, everything else goes through the
// inline grammar. This heading rule is deliberately absent from table cells
// and captions.
func RenderMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var sb strings.Builder

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "### "):
			sb.WriteString("<h3>" + applyInline(strings.TrimPrefix(line, "### ")) + "</h3>")
		case strings.HasPrefix(line, "## "):
			sb.WriteString("<h2>" + applyInline(strings.TrimPrefix(line, "## ")) + "</h2>")
		case strings.HasPrefix(line, "# "):
			sb.WriteString("<h1>" + applyInline(strings.TrimPrefix(line, "# ")) + "</h1>")
		default:
			sb.WriteString(applyInline(line))
			if i < len(lines)-1 {
				sb.WriteString("<br>")
			}
		}
	}

	return sb.String()
}
