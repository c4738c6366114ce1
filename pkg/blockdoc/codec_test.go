package blockdoc

import (
	"reflect"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		kind    BlockType
		content Content
	}{
		{
			name:    "plain text",
			kind:    TypeText,
			content: TextContent{Text: "hello world", Alignment: AlignLeft, BackgroundColor: "transparent"},
		},
		{
			name: "styled text",
			kind: TypeText,
			content: TextContent{
				Text:            "styled\nacross lines",
				Alignment:       AlignCenter,
				TextColor:       "#F97316",
				BackgroundColor: "#BFDBFE",
			},
		},
		{
			name:    "heading",
			kind:    TypeHeading,
			content: HeadingContent{Text: "Mission Brief", Level: 3},
		},
		{
			name:    "unordered list",
			kind:    TypeList,
			content: ListContent{Items: []string{"alpha", "bravo"}},
		},
		{
			name:    "ordered list",
			kind:    TypeList,
			content: ListContent{Items: []string{"first", "second", "third"}, Ordered: true},
		},
		{
			name: "table",
			kind: TypeTable,
			content: TableContent{
				Headers: []string{"Name", "Role"},
				Rows:    [][]string{{"Ada", "leader"}, {"Lin", "member"}},
			},
		},
		{
			name: "table with pipe in cell",
			kind: TypeTable,
			content: TableContent{
				Headers: []string{"Expr", "Result"},
				Rows:    [][]string{{"a|b", "true"}},
			},
		},
		{
			name: "checklist",
			kind: TypeChecklist,
			content: ChecklistContent{
				Items:        []ChecklistItem{{Text: "pack gear", Checked: true}, {Text: "file report"}},
				ShowProgress: true,
			},
		},
		{
			name: "checklist hidden progress",
			kind: TypeChecklist,
			content: ChecklistContent{
				Items:        []ChecklistItem{{Text: "solo task"}},
				ShowProgress: false,
			},
		},
		{
			name:    "quote",
			kind:    TypeQuote,
			content: QuoteContent{Text: "first line\nsecond line"},
		},
		{
			name:    "code with language",
			kind:    TypeCode,
			content: CodeContent{Code: "fmt.Println(\"hi\")", Language: "go"},
		},
		{
			name:    "plaintext code",
			kind:    TypeCode,
			content: CodeContent{Code: "no lang here", Language: "plaintext"},
		},
		{
			name: "image full",
			kind: TypeImage,
			content: ImageContent{
				Src:       "https://cdn.example.com/a.png",
				Alt:       "scene",
				Caption:   "The drop zone",
				Alignment: AlignRight,
				WrapText:  "Troops assembled at dawn.\nWeather held.",
				Width:     320,
				Height:    240,
				AdditionalImages: []ImageRef{
					{Src: "https://cdn.example.com/b.png", Alt: "detail", Caption: "Close up"},
				},
			},
		},
		{
			name:    "image bare",
			kind:    TypeImage,
			content: ImageContent{Src: "https://cdn.example.com/c.png", Alignment: AlignCenter},
		},
		{
			name: "file",
			kind: TypeFile,
			content: FileContent{
				Src:      "https://cdn.example.com/brief.pdf",
				FileName: "brief.pdf",
				FileSize: 482133,
				FileType: "application/pdf",
			},
		},
		{
			name:    "divider",
			kind:    TypeDivider,
			content: DividerContent{},
		},
		{
			name:    "spacer",
			kind:    TypeSpacer,
			content: SpacerContent{Height: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []Block{{ID: NewBlockID(), Type: tt.kind, Order: 0, Content: tt.content}}
			out := Decode(Encode(in))

			if len(out) != 1 {
				t.Fatalf("decoded %d blocks, want 1", len(out))
			}
			if out[0].ID != in[0].ID {
				t.Errorf("ID = %q, want %q", out[0].ID, in[0].ID)
			}
			if out[0].Type != tt.kind {
				t.Errorf("Type = %q, want %q", out[0].Type, tt.kind)
			}
			if !reflect.DeepEqual(out[0].Content, tt.content) {
				t.Errorf("Content = %#v, want %#v", out[0].Content, tt.content)
			}
		})
	}
}

func TestEncodeDecodeMultiBlockOrder(t *testing.T) {
	blocks := []Block{
		{ID: "aaa111", Type: TypeHeading, Order: 0, Content: HeadingContent{Text: "Intro", Level: 2}},
		{ID: "bbb222", Type: TypeText, Order: 1, Content: TextContent{Text: "Hello **world**", Alignment: AlignCenter, BackgroundColor: "transparent"}},
		{ID: "ccc333", Type: TypeDivider, Order: 2, Content: DividerContent{}},
	}

	out := Decode(Encode(blocks))
	if len(out) != 3 {
		t.Fatalf("decoded %d blocks, want 3", len(out))
	}
	for i, b := range out {
		if b.Order != i {
			t.Errorf("block %d Order = %d, want %d", i, b.Order, i)
		}
	}
	if out[0].Type != TypeHeading || out[1].Type != TypeText || out[2].Type != TypeDivider {
		t.Errorf("kinds out of order: %v %v %v", out[0].Type, out[1].Type, out[2].Type)
	}
}

func TestDecodeLegacyPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"plain sentence", "this is an old report with no structure"},
		{"multiline", "line one\nline two\nline three"},
		{"empty", ""},
		{"markdown-ish", "# Title\nsome **bold** text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Decode(tt.input)
			if len(out) != 1 {
				t.Fatalf("decoded %d blocks, want exactly 1", len(out))
			}
			if out[0].Type != TypeText {
				t.Fatalf("Type = %q, want text", out[0].Type)
			}
			tc, ok := out[0].Content.(TextContent)
			if !ok {
				t.Fatalf("content is %T, want TextContent", out[0].Content)
			}
			if tc.Text != tt.input {
				t.Errorf("Text = %q, want input verbatim", tc.Text)
			}
			if tc.Alignment != AlignLeft {
				t.Errorf("Alignment = %q, want left", tc.Alignment)
			}
		})
	}
}

func TestDecodeMalformedTablePayload(t *testing.T) {
	s := "{{block-table-abc123}}\nnot a table at all\n{{/block-table-abc123}}"
	out := Decode(s)
	if len(out) != 1 {
		t.Fatalf("decoded %d blocks, want 1", len(out))
	}
	tc, ok := out[0].Content.(TableContent)
	if !ok {
		t.Fatalf("content is %T, want TableContent", out[0].Content)
	}
	if len(tc.Headers) != 2 {
		t.Errorf("fallback headers = %d, want default 2 columns", len(tc.Headers))
	}
	if len(tc.Rows) == 0 {
		t.Error("fallback table has no rows, want one empty row")
	}
}

func TestDecodeMalformedCodePayload(t *testing.T) {
	s := "{{block-code-abc123}}\njust some text, no fence\n{{/block-code-abc123}}"
	out := Decode(s)
	cc, ok := out[0].Content.(CodeContent)
	if !ok {
		t.Fatalf("content is %T, want CodeContent", out[0].Content)
	}
	if cc.Language != DefaultCodeLanguage {
		t.Errorf("Language = %q, want plaintext", cc.Language)
	}
	if cc.Code != "just some text, no fence" {
		t.Errorf("Code = %q, want raw payload", cc.Code)
	}
}

func TestCodeFenceDefaultLanguage(t *testing.T) {
	blocks := []Block{{
		ID:      "abc123",
		Type:    TypeCode,
		Content: CodeContent{Code: "x := 1", Language: "plaintext"},
	}}

	encoded := Encode(blocks)
	if strings.Contains(encoded, "```plaintext") {
		t.Error("plaintext must encode as an empty fence tag")
	}
	if !strings.Contains(encoded, "```\nx := 1") {
		t.Errorf("missing empty-tag fence in %q", encoded)
	}

	out := Decode(encoded)
	cc := out[0].Content.(CodeContent)
	if cc.Language != "plaintext" {
		t.Errorf("decoded Language = %q, want plaintext", cc.Language)
	}
}

func TestTextAlignmentMarkerOmittedForLeft(t *testing.T) {
	blocks := []Block{{
		ID:      "abc123",
		Type:    TypeText,
		Content: TextContent{Text: "plain", Alignment: AlignLeft, BackgroundColor: "transparent"},
	}}
	encoded := Encode(blocks)
	if strings.Contains(encoded, "<!-- style:") {
		t.Errorf("left-aligned default text must not carry a style marker: %q", encoded)
	}
}

func TestImageCaptionTagDelimiterEscaping(t *testing.T) {
	content := ImageContent{
		Src:       "https://cdn.example.com/x.png",
		Alignment: AlignCenter,
		Caption:   "literal {{image-block:left}} inside caption",
		WrapText:  "and }} braces {{ here",
	}
	in := []Block{{ID: "abc123", Type: TypeImage, Content: content}}
	out := Decode(Encode(in))

	ic, ok := out[0].Content.(ImageContent)
	if !ok {
		t.Fatalf("content is %T, want ImageContent", out[0].Content)
	}
	if ic.Caption != content.Caption {
		t.Errorf("Caption = %q, want %q", ic.Caption, content.Caption)
	}
	if ic.WrapText != content.WrapText {
		t.Errorf("WrapText = %q, want %q", ic.WrapText, content.WrapText)
	}
}

func TestDecodeUnknownKindFallsBackToText(t *testing.T) {
	s := "{{block-gallery-abc123}}\nsomething new\n{{/block-gallery-abc123}}"
	out := Decode(s)
	if out[0].Type != TypeText {
		t.Errorf("Type = %q, want text fallback", out[0].Type)
	}
	if tc := out[0].Content.(TextContent); tc.Text != "something new" {
		t.Errorf("Text = %q, want payload preserved", tc.Text)
	}
}

// Full editing scenario: build, encode, decode, render.
func TestDocumentScenario(t *testing.T) {
	blocks := []Block{
		{ID: "h1h1h1", Type: TypeHeading, Order: 0, Content: HeadingContent{Level: 2, Text: "Intro"}},
		{ID: "t1t1t1", Type: TypeText, Order: 1, Content: TextContent{Text: "Hello **world**", Alignment: AlignCenter, BackgroundColor: "transparent"}},
	}

	out := Decode(Encode(blocks))
	if len(out) != 2 {
		t.Fatalf("decoded %d blocks, want 2", len(out))
	}

	h := out[0].Content.(HeadingContent)
	if h.Level != 2 || h.Text != "Intro" {
		t.Errorf("heading = %+v, want level 2 / Intro", h)
	}

	txt := out[1].Content.(TextContent)
	if txt.Alignment != AlignCenter {
		t.Errorf("Alignment = %q, want center", txt.Alignment)
	}

	html := RenderBlock(out[1])
	if !strings.Contains(html, "<strong>world</strong>") {
		t.Errorf("rendered HTML %q missing <strong>world</strong>", html)
	}
}
