package blockdoc

import (
	"strings"
	"testing"
)

func TestChecklistProgress(t *testing.T) {
	tests := []struct {
		name  string
		items []ChecklistItem
		want  int
	}{
		{
			name:  "empty text excluded from both counts",
			items: []ChecklistItem{{Text: "a", Checked: true}, {Text: ""}, {Text: "b"}},
			want:  50,
		},
		{
			name:  "all checked",
			items: []ChecklistItem{{Text: "a", Checked: true}, {Text: "b", Checked: true}},
			want:  100,
		},
		{
			name:  "none checked",
			items: []ChecklistItem{{Text: "a"}, {Text: "b"}},
			want:  0,
		},
		{
			name:  "only empty items",
			items: []ChecklistItem{{}, {Checked: true}},
			want:  0,
		},
		{
			name:  "rounds to nearest",
			items: []ChecklistItem{{Text: "a", Checked: true}, {Text: "b"}, {Text: "c"}},
			want:  33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChecklistProgress(tt.items); got != tt.want {
				t.Errorf("ChecklistProgress = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderTableEscapesCells(t *testing.T) {
	b := Block{ID: "x", Type: TypeTable, Content: TableContent{
		Headers: []string{"<script>alert(1)</script>"},
		Rows:    [][]string{{"**not bold** & <b>raw</b>"}},
	}}
	html := RenderBlock(b)

	if strings.Contains(html, "<script>") {
		t.Error("table header leaked unescaped markup")
	}
	if strings.Contains(html, "<b>raw</b>") {
		t.Error("table cell leaked unescaped markup")
	}
	// cells are literal: inline markup must NOT be applied
	if strings.Contains(html, "<strong>") {
		t.Error("inline markup must not run inside table cells")
	}
}

func TestRenderCodeLiteralWithLabel(t *testing.T) {
	b := Block{ID: "x", Type: TypeCode, Content: CodeContent{
		Code:     "<script>evil()</script> `notcode`",
		Language: "plaintext",
	}}
	html := RenderBlock(b)

	if !strings.Contains(html, "PLAINTEXT") {
		t.Error("plaintext label must still be shown, uppercased")
	}
	if strings.Contains(html, "<script>") {
		t.Error("code content leaked unescaped")
	}
	if strings.Contains(html, "<code>notcode</code>") {
		t.Error("inline markup must not run on code content")
	}
}

func TestRenderTextAppliesAlignmentAndColor(t *testing.T) {
	b := Block{ID: "x", Type: TypeText, Content: TextContent{
		Text:            "hi",
		Alignment:       AlignRight,
		TextColor:       "#fff",
		BackgroundColor: "#000",
	}}
	html := RenderBlock(b)

	for _, want := range []string{"text-align:right", "color:#fff", "background-color:#000"} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered text missing %q: %s", want, html)
		}
	}
}

func TestRenderHeadingTypeScale(t *testing.T) {
	for level := 1; level <= 6; level++ {
		b := Block{ID: "x", Type: TypeHeading, Content: HeadingContent{Text: "T", Level: level}}
		html := RenderBlock(b)
		if !strings.Contains(html, "doc-h"+string(rune('0'+level))) {
			t.Errorf("level %d missing type-scale class: %s", level, html)
		}
	}

	// out-of-range level clamps
	b := Block{ID: "x", Type: TypeHeading, Content: HeadingContent{Text: "T", Level: 9}}
	if !strings.Contains(RenderBlock(b), "<h6") {
		t.Error("level above 6 must clamp to h6")
	}
}

func TestRenderImageLayout(t *testing.T) {
	b := Block{ID: "x", Type: TypeImage, Content: ImageContent{
		Src:       "https://cdn.example.com/a.png",
		Alignment: AlignLeft,
		WrapText:  "beside the image",
		Width:     100,
	}}
	html := RenderBlock(b)

	if !strings.Contains(html, "image-left") {
		t.Error("missing alignment layout class")
	}
	if !strings.Contains(html, "wrap-left") {
		t.Error("missing wrap-text layout class")
	}
	if !strings.Contains(html, `width="100"`) {
		t.Error("explicit width not rendered")
	}
	if strings.Contains(html, "height=") {
		t.Error("unset height must not be rendered")
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{1024, "1.00 KB"},
		{482133, "470.83 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.in); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileIcon(t *testing.T) {
	tests := []struct {
		mime string
		want string
	}{
		{"image/png", "image"},
		{"video/mp4", "video"},
		{"audio/ogg", "audio"},
		{"application/pdf", "pdf"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "word"},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "spreadsheet"},
		{"application/zip", "archive"},
		{"application/octet-stream", "paperclip"},
	}
	for _, tt := range tests {
		if got := FileIcon(tt.mime); got != tt.want {
			t.Errorf("FileIcon(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}

func TestRenderDocumentOrdersBlocks(t *testing.T) {
	blocks := []Block{
		{ID: "b", Type: TypeText, Order: 1, Content: TextContent{Text: "second", Alignment: AlignLeft}},
		{ID: "a", Type: TypeText, Order: 0, Content: TextContent{Text: "first", Alignment: AlignLeft}},
	}
	html := RenderDocument(blocks)
	if strings.Index(html, "first") > strings.Index(html, "second") {
		t.Error("blocks rendered out of display order")
	}
}
