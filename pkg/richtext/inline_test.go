package richtext

import (
	"strings"
	"testing"
)

func TestRenderInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "a **b** c", "a <strong>b</strong> c"},
		{"italic", "a *b* c", "a <em>b</em> c"},
		{"bold italic", "***b***", "<strong><em>b</em></strong>"},
		{"strikethrough", "~~gone~~", "<del>gone</del>"},
		{"inline code", "run `go vet` now", "run <code>go vet</code> now"},
		{"link", "[docs](https://example.com)", `<a href="https://example.com" target="_blank" rel="noopener noreferrer">docs</a>`},
		{"newline", "a\nb", "a<br>b"},
		{"plain", "nothing here", "nothing here"},
		{"mixed", "**b** and *i*", "<strong>b</strong> and <em>i</em>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderInline(tt.in); got != tt.want {
				t.Errorf("RenderInline(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderInlineEscapesHTML(t *testing.T) {
	out := RenderInline(`<script>alert("x")</script>`)
	if strings.Contains(out, "<script>") {
		t.Fatalf("unescaped script tag in %q", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Errorf("expected entity-escaped tag in %q", out)
	}
}

// The engine runs exactly once over source text. Feeding its own output back
// in must escape it, never double-wrap.
func TestRenderInlineNotReappliedToOutput(t *testing.T) {
	first := RenderInline("**bold**")
	if first != "<strong>bold</strong>" {
		t.Fatalf("first pass = %q", first)
	}
	second := RenderInline(first)
	if strings.Contains(second, "<strong><strong>") {
		t.Error("second pass double-wrapped the markup")
	}
	if strings.Contains(second, "<strong>") {
		t.Error("second pass emitted raw markup instead of escaping the input")
	}
}

func TestRenderInlinePreviewCollapsesNewlines(t *testing.T) {
	out := RenderInlinePreview("line one\nline two\n\nline three")
	if strings.Contains(out, "<br>") {
		t.Errorf("preview must not contain line breaks: %q", out)
	}
	if out != "line one line two line three" {
		t.Errorf("preview = %q", out)
	}
}

func TestRenderMarkdownHeadings(t *testing.T) {
	out := RenderMarkdown("# Top\nplain **bold**\n## Sub")
	for _, want := range []string{"<h1>Top</h1>", "<strong>bold</strong>", "<h2>Sub</h2>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<b>", "&lt;b&gt;"},
		{`a & "b" & 'c'`, "a &amp; &#34;b&#34; &amp; &#39;c&#39;"},
		{"safe", "safe"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
