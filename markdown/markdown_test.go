package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicBlocks(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"# Heading", "<h1"},
		{"plain paragraph", "<p>plain paragraph</p>"},
		{"**bold**", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"- item", "<li>item</li>"},
		{"> quoted", "<blockquote>"},
	}
	for _, tt := range tests {
		got, err := Render(tt.input)
		if err != nil {
			t.Errorf("Render(%q) failed: %v", tt.input, err)
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderFencedCodeKeepsLanguageClass(t *testing.T) {
	got, err := Render("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "language-go") {
		t.Errorf("Render = %q, want language-go class preserved", got)
	}
}

func TestRenderGFMTable(t *testing.T) {
	got, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("Render table = %q", got)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	got, err := Render("hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("Render = %q, script tag survived sanitization", got)
	}
}

func TestRenderLinks(t *testing.T) {
	got, err := Render("[text](https://example.com)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `href="https://example.com"`) {
		t.Errorf("Render link = %q", got)
	}
}
