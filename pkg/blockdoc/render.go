package blockdoc

import (
	"fmt"
	"math"
	"strings"

	"ops-collab-be/pkg/richtext"
)

// Static read-only HTML rendering. Pure function of block content: no
// callbacks, no state. The editable surface lives in editor.go and shares
// these payloads.

// RenderDocument renders the whole block sequence in display order.
func RenderDocument(blocks []Block) string {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	SortByOrder(sorted)

	var sb strings.Builder
	for _, b := range sorted {
		sb.WriteString(RenderBlock(b))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderBlock renders one block to an HTML fragment. Malformed payloads
// degrade to the kind's default instead of failing the document.
func RenderBlock(b Block) string {
	switch c := ContentOrDefault(b).(type) {
	case TextContent:
		return renderText(c)
	case HeadingContent:
		return renderHeading(c)
	case ListContent:
		return renderList(c)
	case TableContent:
		return renderTable(c)
	case ChecklistContent:
		return renderChecklist(c)
	case QuoteContent:
		return fmt.Sprintf("<blockquote>%s</blockquote>", richtext.RenderInline(c.Text))
	case CodeContent:
		return renderCode(c)
	case ImageContent:
		return renderImage(c)
	case FileContent:
		return renderFile(c)
	case DividerContent:
		return "<hr>"
	case SpacerContent:
		return fmt.Sprintf(`<div style="height:%dpx"></div>`, ClampSpacer(c.Height))
	default:
		return ""
	}
}

func renderText(c TextContent) string {
	align := c.Alignment
	if align == "" {
		align = AlignLeft
	}
	styles := []string{"text-align:" + align}
	if c.TextColor != "" {
		styles = append(styles, "color:"+c.TextColor)
	}
	if c.BackgroundColor != "" && c.BackgroundColor != "transparent" {
		styles = append(styles, "background-color:"+c.BackgroundColor)
	}
	return fmt.Sprintf(`<p style="%s">%s</p>`, strings.Join(styles, ";"), richtext.RenderInline(c.Text))
}

func renderHeading(c HeadingContent) string {
	level := c.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	// Fixed type scale: h1 largest down to h6 smallest.
	return fmt.Sprintf(`<h%d class="doc-h%d">%s</h%d>`, level, level, richtext.Escape(c.Text), level)
}

func renderList(c ListContent) string {
	tag := "ul"
	if c.Ordered {
		tag = "ol"
	}
	var sb strings.Builder
	sb.WriteString("<" + tag + ">")
	for _, item := range c.Items {
		sb.WriteString("<li>" + richtext.RenderInline(item) + "</li>")
	}
	sb.WriteString("</" + tag + ">")
	return sb.String()
}

// renderTable escapes cell content without inline markup: table cells are a
// markup-injection surface and stay literal.
func renderTable(c TableContent) string {
	c = ConformTable(c)
	var sb strings.Builder
	sb.WriteString("<table><thead><tr>")
	for _, h := range c.Headers {
		sb.WriteString("<th>" + richtext.Escape(h) + "</th>")
	}
	sb.WriteString("</tr></thead><tbody>")
	for _, row := range c.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>" + richtext.Escape(cell) + "</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

func renderChecklist(c ChecklistContent) string {
	var sb strings.Builder
	sb.WriteString(`<div class="checklist">`)
	if c.ShowProgress {
		p := ChecklistProgress(c.Items)
		sb.WriteString(fmt.Sprintf(`<div class="checklist-progress" data-percent="%d">%d%%</div>`, p, p))
	}
	sb.WriteString("<ul>")
	for _, item := range c.Items {
		checked := ""
		if item.Checked {
			checked = " checked"
		}
		sb.WriteString(fmt.Sprintf(`<li><input type="checkbox" disabled%s> %s</li>`, checked, richtext.RenderInline(item.Text)))
	}
	sb.WriteString("</ul></div>")
	return sb.String()
}

// ChecklistProgress computes checked/total over non-empty items, rounded to
// the nearest percent. Items with empty text count on neither side.
func ChecklistProgress(items []ChecklistItem) int {
	total := 0
	checked := 0
	for _, item := range items {
		if strings.TrimSpace(item.Text) == "" {
			continue
		}
		total++
		if item.Checked {
			checked++
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(checked) / float64(total) * 100))
}

// renderCode keeps code literal: escaped, never fed through the inline
// engine. The language label is always shown, plaintext included.
func renderCode(c CodeContent) string {
	lang := c.Language
	if lang == "" {
		lang = DefaultCodeLanguage
	}
	return fmt.Sprintf(`<div class="code-block"><span class="code-lang">%s</span><pre><code>%s</code></pre></div>`,
		richtext.Escape(strings.ToUpper(lang)), richtext.Escape(c.Code))
}

func renderImage(c ImageContent) string {
	align := c.Alignment
	if align == "" {
		align = AlignCenter
	}

	var size string
	if c.Width > 0 {
		size += fmt.Sprintf(` width="%d"`, c.Width)
	}
	if c.Height > 0 {
		size += fmt.Sprintf(` height="%d"`, c.Height)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<figure class="image-block image-%s">`, align))
	sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s"%s>`, richtext.Escape(c.Src), richtext.Escape(c.Alt), size))
	if c.Caption != "" {
		sb.WriteString("<figcaption>" + richtext.Escape(c.Caption) + "</figcaption>")
	}
	for _, img := range c.AdditionalImages {
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s">`, richtext.Escape(img.Src), richtext.Escape(img.Alt)))
		if img.Caption != "" {
			sb.WriteString("<figcaption>" + richtext.Escape(img.Caption) + "</figcaption>")
		}
	}
	if c.WrapText != "" {
		// center: text below the image; left/right: text floats beside it
		// on the opposite side.
		sb.WriteString(fmt.Sprintf(`<div class="wrap-text wrap-%s">%s</div>`, align, richtext.RenderInline(c.WrapText)))
	}
	sb.WriteString("</figure>")
	return sb.String()
}

func renderFile(c FileContent) string {
	return fmt.Sprintf(`<div class="file-block"><span class="file-icon file-icon-%s"></span><a href="%s" download>%s</a><span class="file-size">%s</span></div>`,
		FileIcon(c.FileType), richtext.Escape(c.Src), richtext.Escape(c.FileName), FormatFileSize(c.FileSize))
}

// FormatFileSize renders bytes as B/KB/MB/GB with 2-decimal rounding.
func FormatFileSize(bytes int64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FileIcon maps a mime type to an icon id by prefix/substring match.
func FileIcon(mime string) string {
	m := strings.ToLower(mime)
	switch {
	case strings.HasPrefix(m, "image/"):
		return "image"
	case strings.HasPrefix(m, "video/"):
		return "video"
	case strings.HasPrefix(m, "audio/"):
		return "audio"
	case strings.Contains(m, "pdf"):
		return "pdf"
	case strings.Contains(m, "word") || strings.Contains(m, "officedocument.wordprocessingml"):
		return "word"
	case strings.Contains(m, "sheet") || strings.Contains(m, "excel") || strings.Contains(m, "csv"):
		return "spreadsheet"
	case strings.Contains(m, "zip") || strings.Contains(m, "rar") || strings.Contains(m, "tar") || strings.Contains(m, "compressed"):
		return "archive"
	default:
		return "paperclip"
	}
}
