package blockdoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Wire format: every block is wrapped in a delimiter pair carrying its kind
// and id:
//
//	{{block-<kind>-<id>}}
//	<kind-specific payload>
//	{{/block-<kind>-<id>}}
//
// Blocks are joined by a blank line. Decoding follows physical appearance
// order; the order field is never embedded in the string. A stored string
// with no recognizable markers decodes to a single synthetic text block so
// legacy plain-text reports always load.

var (
	reBlock      = regexp.MustCompile(`(?s)\{\{block-([a-z]+)-([A-Za-z0-9]+)\}\}\n?(.*?)\n?\{\{/block-([a-z]+)-([A-Za-z0-9]+)\}\}`)
	reStyleLine  = regexp.MustCompile(`^<!-- style:\s*(.+?)\s*-->$`)
	reHeading    = regexp.MustCompile(`(?s)^(#{1,6}) (.*)$`)
	reImageTag   = regexp.MustCompile(`^\{\{image-block:([a-z]+)(?:;(\d+)x(\d+))?\}\}$`)
	reImageLine  = regexp.MustCompile(`^!\[(.*?)\]\((.*?)\)$`)
	reSpacerTag  = regexp.MustCompile(`^\{\{spacer:(-?\d+)\}\}$`)
	reFileTag    = regexp.MustCompile(`(?s)^\{\{file:(.*)\}\}$`)
	reOrdered    = regexp.MustCompile(`^\d+\. `)
	reCodeFence  = regexp.MustCompile("(?s)^```([^\n`]*)\n(.*)\n```$")
	reEmptyFence = regexp.MustCompile("^```([^\n`]*)\n```$")
)

// Encode serializes an ordered block sequence into the flat stored string.
func Encode(blocks []Block) string {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	SortByOrder(sorted)

	parts := make([]string, 0, len(sorted))
	for _, b := range sorted {
		payload := encodePayload(b)
		parts = append(parts, fmt.Sprintf("{{block-%s-%s}}\n%s\n{{/block-%s-%s}}", b.Type, b.ID, payload, b.Type, b.ID))
	}
	return strings.Join(parts, "\n\n")
}

// Decode parses a stored string back into the ordered block sequence.
// Malformed per-kind payloads degrade to that kind's default rather than
// aborting the document; a string without markers yields one text block
// holding the input verbatim.
func Decode(s string) []Block {
	matches := reBlock.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return []Block{{
			ID:      NewBlockID(),
			Type:    TypeText,
			Order:   0,
			Content: TextContent{Text: s, Alignment: AlignLeft, BackgroundColor: "transparent"},
		}}
	}

	blocks := make([]Block, 0, len(matches))
	for _, m := range matches {
		kind, id, payload := m[1], m[2], m[3]
		// Closing marker must agree with the opener; a mismatch means the
		// regex spanned two damaged blocks, salvage as text.
		if m[4] != kind || m[5] != id {
			kind = string(TypeText)
		}
		blocks = append(blocks, decodeBlock(BlockType(kind), id, payload))
	}
	return Renumber(blocks)
}

func encodePayload(b Block) string {
	switch c := ContentOrDefault(b).(type) {
	case TextContent:
		return encodeText(c)
	case HeadingContent:
		return encodeHeading(c)
	case ListContent:
		return encodeList(c)
	case TableContent:
		return encodeTable(c)
	case ChecklistContent:
		return encodeChecklist(c)
	case QuoteContent:
		return encodeQuote(c)
	case CodeContent:
		return encodeCode(c)
	case ImageContent:
		return encodeImage(c)
	case FileContent:
		return encodeFile(c)
	case DividerContent:
		return "---"
	case SpacerContent:
		return fmt.Sprintf("{{spacer:%d}}", ClampSpacer(c.Height))
	default:
		return ""
	}
}

func decodeBlock(kind BlockType, id string, payload string) Block {
	b := Block{ID: id, Type: kind}
	switch kind {
	case TypeText:
		b.Content = decodeText(payload)
	case TypeHeading:
		b.Content = decodeHeading(payload)
	case TypeList:
		b.Content = decodeList(payload)
	case TypeTable:
		b.Content = decodeTable(payload)
	case TypeChecklist:
		b.Content = decodeChecklist(payload)
	case TypeQuote:
		b.Content = decodeQuote(payload)
	case TypeCode:
		b.Content = decodeCode(payload)
	case TypeImage:
		b.Content = decodeImage(payload)
	case TypeFile:
		b.Content = decodeFile(payload)
	case TypeDivider:
		b.Content = DividerContent{}
	case TypeSpacer:
		b.Content = decodeSpacer(payload)
	default:
		// Unknown kind (newer client wrote it): keep the raw payload as
		// text so nothing is silently dropped.
		b.Type = TypeText
		b.Content = TextContent{Text: payload, Alignment: AlignLeft, BackgroundColor: "transparent"}
	}
	return b
}

// --- text ---

func encodeText(c TextContent) string {
	marker := buildStyleMarker(c)
	if marker == "" {
		return c.Text
	}
	return marker + "\n" + c.Text
}

// buildStyleMarker emits the style comment only when something differs from
// the defaults, so plain documents stay plain.
func buildStyleMarker(c TextContent) string {
	var kv []string
	if c.Alignment != "" && c.Alignment != AlignLeft {
		kv = append(kv, "align="+c.Alignment)
	}
	if c.TextColor != "" {
		kv = append(kv, "color="+c.TextColor)
	}
	if c.BackgroundColor != "" && c.BackgroundColor != "transparent" {
		kv = append(kv, "bg="+c.BackgroundColor)
	}
	if len(kv) == 0 {
		return ""
	}
	return "<!-- style: " + strings.Join(kv, "; ") + " -->"
}

func decodeText(payload string) TextContent {
	c := TextContent{Alignment: AlignLeft, BackgroundColor: "transparent"}

	line, rest, found := strings.Cut(payload, "\n")
	if m := reStyleLine.FindStringSubmatch(line); m != nil {
		for _, pair := range strings.Split(m[1], ";") {
			k, v, ok := strings.Cut(strings.TrimSpace(pair), "=")
			if !ok {
				continue
			}
			switch k {
			case "align":
				c.Alignment = v
			case "color":
				c.TextColor = v
			case "bg":
				c.BackgroundColor = v
			}
		}
		if found {
			c.Text = rest
		}
		return c
	}

	c.Text = payload
	return c
}

// --- heading ---

func encodeHeading(c HeadingContent) string {
	level := c.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level) + " " + c.Text
}

func decodeHeading(payload string) HeadingContent {
	if m := reHeading.FindStringSubmatch(payload); m != nil {
		return HeadingContent{Level: len(m[1]), Text: m[2]}
	}
	return HeadingContent{Level: 1, Text: payload}
}

// --- list ---

func encodeList(c ListContent) string {
	lines := make([]string, 0, len(c.Items))
	for i, item := range c.Items {
		item = strings.ReplaceAll(item, "\n", " ")
		if c.Ordered {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
		} else {
			lines = append(lines, "- "+item)
		}
	}
	return strings.Join(lines, "\n")
}

func decodeList(payload string) ListContent {
	c := ListContent{}
	lines := strings.Split(payload, "\n")
	c.Ordered = len(lines) > 0 && reOrdered.MatchString(lines[0])

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "- "):
			c.Items = append(c.Items, strings.TrimPrefix(line, "- "))
		case reOrdered.MatchString(line):
			_, item, _ := strings.Cut(line, ". ")
			c.Items = append(c.Items, item)
		case line != "":
			c.Items = append(c.Items, line)
		}
	}
	if len(c.Items) == 0 {
		c.Items = []string{""}
	}
	return c
}

// --- table ---

func encodeTable(c TableContent) string {
	c = ConformTable(c)
	var sb strings.Builder

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for _, cell := range cells {
			sb.WriteString(" " + escapeCell(cell) + " |")
		}
		sb.WriteString("\n")
	}

	writeRow(c.Headers)
	sb.WriteString("|")
	for range c.Headers {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range c.Rows {
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func decodeTable(payload string) TableContent {
	lines := strings.Split(payload, "\n")
	// Need at least a header line and a separator line, otherwise fall back
	// to a default grid for this block only.
	if len(lines) < 2 || !strings.HasPrefix(strings.TrimSpace(lines[0]), "|") {
		return ConformTable(TableContent{})
	}

	headers := splitRow(lines[0])
	c := TableContent{Headers: headers}
	for _, line := range lines[2:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.Rows = append(c.Rows, splitRow(line))
	}
	return ConformTable(c)
}

func escapeCell(cell string) string {
	cell = strings.ReplaceAll(cell, "\n", " ")
	return strings.ReplaceAll(cell, "|", `\|`)
}

// splitRow splits a markdown table line on unescaped pipes.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	var cells []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			if r != '|' {
				cur.WriteRune('\\')
			}
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteRune('\\')
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}

// --- checklist ---

func encodeChecklist(c ChecklistContent) string {
	var lines []string
	if !c.ShowProgress {
		lines = append(lines, "<!-- progress:hidden -->")
	}
	for _, item := range c.Items {
		mark := " "
		if item.Checked {
			mark = "x"
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s", mark, strings.ReplaceAll(item.Text, "\n", " ")))
	}
	return strings.Join(lines, "\n")
}

func decodeChecklist(payload string) ChecklistContent {
	c := ChecklistContent{ShowProgress: true}
	for _, line := range strings.Split(payload, "\n") {
		switch {
		case line == "<!-- progress:hidden -->":
			c.ShowProgress = false
		case strings.HasPrefix(line, "- [x] "):
			c.Items = append(c.Items, ChecklistItem{Text: strings.TrimPrefix(line, "- [x] "), Checked: true})
		case strings.HasPrefix(line, "- [ ] "):
			c.Items = append(c.Items, ChecklistItem{Text: strings.TrimPrefix(line, "- [ ] ")})
		case line == "- [x]":
			c.Items = append(c.Items, ChecklistItem{Checked: true})
		case line == "- [ ]":
			c.Items = append(c.Items, ChecklistItem{})
		case strings.TrimSpace(line) != "":
			// Damaged line: keep the text rather than dropping the item.
			c.Items = append(c.Items, ChecklistItem{Text: line})
		}
	}
	if len(c.Items) == 0 {
		c.Items = []ChecklistItem{{}}
	}
	return c
}

// --- quote ---

func encodeQuote(c QuoteContent) string {
	lines := strings.Split(c.Text, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func decodeQuote(payload string) QuoteContent {
	lines := strings.Split(payload, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "> ") {
			lines[i] = strings.TrimPrefix(line, "> ")
		} else {
			lines[i] = strings.TrimPrefix(line, ">")
		}
	}
	return QuoteContent{Text: strings.Join(lines, "\n")}
}

// --- code ---

func encodeCode(c CodeContent) string {
	lang := c.Language
	// The default language is encoded as an empty fence tag, never as the
	// literal word "plaintext".
	if lang == DefaultCodeLanguage {
		lang = ""
	}
	return "```" + lang + "\n" + c.Code + "\n```"
}

func decodeCode(payload string) CodeContent {
	if m := reEmptyFence.FindStringSubmatch(payload); m != nil {
		return CodeContent{Language: langOrDefault(m[1])}
	}
	if m := reCodeFence.FindStringSubmatch(payload); m != nil {
		return CodeContent{Language: langOrDefault(m[1]), Code: m[2]}
	}
	// Not a well-formed fence: treat the whole payload as raw code.
	return CodeContent{Language: DefaultCodeLanguage, Code: payload}
}

func langOrDefault(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return DefaultCodeLanguage
	}
	return lang
}

// --- image ---

// Plain markdown image syntax cannot carry alignment, caption, wrap text or
// explicit dimensions, hence the {{image-block:...}} wrapper. User caption
// and wrap text may themselves contain the tag delimiters, so literal {{ and
// }} are escaped on encode.

func encodeImage(c ImageContent) string {
	var sb strings.Builder

	align := c.Alignment
	if align == "" {
		align = AlignCenter
	}
	if c.Width > 0 || c.Height > 0 {
		sb.WriteString(fmt.Sprintf("{{image-block:%s;%dx%d}}\n", align, c.Width, c.Height))
	} else {
		sb.WriteString(fmt.Sprintf("{{image-block:%s}}\n", align))
	}

	writeImage := func(src, alt, caption string) {
		sb.WriteString(fmt.Sprintf("![%s](%s)\n", alt, src))
		if caption != "" {
			sb.WriteString("*" + escapeTagDelims(caption) + "*\n")
		}
	}

	writeImage(c.Src, c.Alt, c.Caption)
	for _, img := range c.AdditionalImages {
		writeImage(img.Src, img.Alt, img.Caption)
	}

	if c.WrapText != "" {
		sb.WriteString("{{wrap-text}}\n")
		sb.WriteString(escapeTagDelims(c.WrapText) + "\n")
	}
	sb.WriteString("{{/image-block}}")
	return sb.String()
}

func decodeImage(payload string) ImageContent {
	c := ImageContent{Alignment: AlignCenter}
	lines := strings.Split(payload, "\n")
	if len(lines) == 0 {
		return c
	}

	start := 0
	if m := reImageTag.FindStringSubmatch(lines[0]); m != nil {
		c.Alignment = m[1]
		if m[2] != "" {
			c.Width, _ = strconv.Atoi(m[2])
			c.Height, _ = strconv.Atoi(m[3])
		}
		start = 1
	}

	inWrap := false
	var wrapLines []string
	imageCount := 0

	for _, line := range lines[start:] {
		switch {
		case line == "{{/image-block}}":
			// wrapper end
		case line == "{{wrap-text}}":
			inWrap = true
		case inWrap:
			wrapLines = append(wrapLines, unescapeTagDelims(line))
		default:
			if m := reImageLine.FindStringSubmatch(line); m != nil {
				if imageCount == 0 {
					c.Alt, c.Src = m[1], m[2]
				} else {
					c.AdditionalImages = append(c.AdditionalImages, ImageRef{Alt: m[1], Src: m[2]})
				}
				imageCount++
				continue
			}
			if strings.HasPrefix(line, "*") && strings.HasSuffix(line, "*") && len(line) > 1 {
				caption := unescapeTagDelims(strings.Trim(line, "*"))
				if imageCount <= 1 {
					c.Caption = caption
				} else {
					c.AdditionalImages[len(c.AdditionalImages)-1].Caption = caption
				}
			}
		}
	}

	c.WrapText = strings.Join(wrapLines, "\n")
	return c
}

func escapeTagDelims(s string) string {
	s = strings.ReplaceAll(s, "{{", `{\{`)
	return strings.ReplaceAll(s, "}}", `}\}`)
}

func unescapeTagDelims(s string) string {
	s = strings.ReplaceAll(s, `{\{`, "{{")
	return strings.ReplaceAll(s, `}\}`, "}}")
}

// --- file ---

func encodeFile(c FileContent) string {
	// Name goes last so it may contain pipes; src/size/type never do.
	return fmt.Sprintf("{{file:%s|%d|%s|%s}}", c.Src, c.FileSize, c.FileType, c.FileName)
}

func decodeFile(payload string) FileContent {
	m := reFileTag.FindStringSubmatch(strings.TrimSpace(payload))
	if m == nil {
		return FileContent{}
	}
	parts := strings.SplitN(m[1], "|", 4)
	if len(parts) != 4 {
		return FileContent{}
	}
	size, _ := strconv.ParseInt(parts[1], 10, 64)
	return FileContent{
		Src:      parts[0],
		FileSize: size,
		FileType: parts[2],
		FileName: parts[3],
	}
}

// --- spacer ---

func decodeSpacer(payload string) SpacerContent {
	m := reSpacerTag.FindStringSubmatch(strings.TrimSpace(payload))
	if m == nil {
		return SpacerContent{Height: 40}
	}
	h, err := strconv.Atoi(m[1])
	if err != nil {
		return SpacerContent{Height: 40}
	}
	return SpacerContent{Height: ClampSpacer(h)}
}
