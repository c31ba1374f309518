package render

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

func para(runs ...ir.Run) ir.Block {
	return ir.NewParagraphBlock(&ir.Paragraph{Runs: runs})
}

func plain(s string) ir.Run {
	return ir.NewRun(s, ir.TextStyle{})
}

func sampleDocument() *ir.Document {
	doc := ir.NewDocument()
	doc.Metadata = ir.Metadata{ID: "classFoo", Kind: "class", Name: "Foo", Brief: []ir.Run{plain("A foo.")}}
	doc.Add(
		para(plain("Hello "), ir.NewRun("world", ir.TextStyle{Bold: true})),
		ir.NewParagraphBlock(&ir.Paragraph{Kind: ir.ParagraphNote, Runs: []ir.Run{plain("Careful")}}),
		ir.NewCodeBlock(&ir.CodeBlock{Lines: []string{"int x;"}, Language: "cpp"}),
	)
	doc.AddSection(ir.MemberSection{
		Kind: "public-func",
		Members: []ir.Member{{
			ID:         "classFoo_1a1",
			Kind:       "function",
			Name:       "run",
			Definition: "int Foo::run",
			Args:       "(int n)",
			Params:     []ir.Param{{Name: "n", Direction: "in", Description: []ir.Block{para(plain("count"))}}},
			Returns:    []ir.Block{para(plain("status"))},
		}},
	})
	return doc
}

func renderNodes(t *testing.T, nodes []*html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			t.Fatalf("render failed: %v", err)
		}
	}
	return buf.String()
}

func TestMarkdown_Document(t *testing.T) {
	md := Markdown(sampleDocument())

	expected := []string{
		"# Foo class\n\nA foo.\n\nHello **world**\n\n> **Note:** Careful\n\n```cpp\nint x;\n```\n\n",
		"## Public Functions\n\n### run\n\n```\nint Foo::run(int n)\n```\n\n",
		"**Parameters**\n\n- `n` [in]: count\n",
		"**Returns**\n\nstatus\n",
	}
	for _, e := range expected {
		if !strings.Contains(md, e) {
			t.Errorf("expected markdown to contain %q, got:\n%s", e, md)
		}
	}
	if !strings.HasSuffix(md, "status\n") {
		t.Errorf("expected a single trailing newline, got %q", md[len(md)-10:])
	}
}

func TestMarkdownInline(t *testing.T) {
	tests := []struct {
		name     string
		runs     []ir.Run
		expected string
	}{
		{"merged styles", []ir.Run{plain("a "), ir.NewRun("b ", ir.TextStyle{Bold: true}), ir.NewRun("c", ir.TextStyle{Bold: true})}, "a **b c**"},
		{"edge whitespace", []ir.Run{plain("x"), ir.NewRun(" y ", ir.TextStyle{Italic: true}), plain("z")}, "x *y* z"},
		{"reference", []ir.Run{ir.NewLinkRun("Bar", ir.TextStyle{}, "classBar")}, "[Bar](#classBar)"},
		{"url", []ir.Run{ir.NewURLRun("u", ir.TextStyle{Code: true}, "https://example.com")}, "[`u`](https://example.com)"},
		{"line break", []ir.Run{plain("a"), ir.LineBreak(), plain("b")}, "a\\\nb"},
		{"inline image", []ir.Run{plain("see "), ir.NewImageRun(&ir.ImageBlock{Path: "i.png", Name: "i.png", Inline: true}), plain(" here")}, "see ![i.png](i.png) here"},
		{"inline diagram", []ir.Run{ir.NewDiagramRun(&ir.DiagramBlock{Engine: ir.DiagramDot, Source: "a ->\n b", Inline: true})}, "`a -> b`"},
		{"rendered inline diagram", []ir.Run{ir.NewDiagramRun(&ir.DiagramBlock{RenderedPath: "d.png", Inline: true})}, "![](d.png)"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := markdownInline(tc.runs); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestMarkdown_NestedList(t *testing.T) {
	sub := ir.NewList(true, 1)
	sub.AddItem(para(plain("a")))
	sub.AddItem(para(plain("b")))
	list := ir.NewList(false, 0)
	list.AddItem(para(plain("one")))
	list.AddItem(ir.NewListBlock(sub))
	list.AddItem(para(plain("two")))

	got := MarkdownBlocks([]ir.Block{ir.NewListBlock(list)})
	expected := "- one\n    1. a\n    2. b\n- two"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestMarkdown_Table(t *testing.T) {
	table := ir.NewTable()
	table.AddRow([]ir.Cell{{Blocks: []ir.Block{para(plain("H1"))}}, {Blocks: []ir.Block{para(plain("H2"))}}})
	table.AddRow([]ir.Cell{{Blocks: []ir.Block{para(plain("a"))}}, {Blocks: []ir.Block{para(plain("b|c"))}}})

	table.FirstRowHeader = true
	got := MarkdownBlocks([]ir.Block{ir.NewTableBlock(table)})
	expected := "| H1 | H2 |\n| --- | --- |\n| a | b\\|c |"
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}

	table.FirstRowHeader = false
	got = MarkdownBlocks([]ir.Block{ir.NewTableBlock(table)})
	if !strings.HasPrefix(got, "|  |  |\n| --- | --- |\n| H1 | H2 |") {
		t.Errorf("expected an empty header row, got %q", got)
	}
}

func TestMarkdown_SectionHeading(t *testing.T) {
	doc := ir.NewDocument()
	doc.Metadata.Title = "Guide"
	doc.Add(ir.NewTitleBlock(&ir.TitleBlock{Runs: []ir.Run{plain("Setup")}, Level: 1}))

	if got := Markdown(doc); got != "# Guide\n\n## Setup\n" {
		t.Errorf("unexpected markdown %q", got)
	}
}

func TestHTMLBlocks(t *testing.T) {
	sub := ir.NewList(true, 1)
	sub.AddItem(para(plain("a")))
	sub.AddItem(para(plain("b")))
	list := ir.NewList(false, 0)
	list.AddItem(para(plain("one")))
	list.AddItem(ir.NewListBlock(sub))
	list.AddItem(para(plain("two")))

	table := ir.NewTable()
	table.FirstRowHeader = true
	table.AddRow([]ir.Cell{{Blocks: []ir.Block{para(plain("H"))}, ColSpan: 2}})
	table.AddRow([]ir.Cell{{Blocks: []ir.Block{para(plain("x"))}}, {Blocks: []ir.Block{para(plain("y"))}, Alignment: ir.AlignRight}})

	tests := []struct {
		name     string
		block    ir.Block
		expected string
	}{
		{
			name:     "paragraph",
			block:    para(plain("Hello "), ir.NewRun("world", ir.TextStyle{Bold: true, Code: true})),
			expected: "<p>Hello <strong><code>world</code></strong></p>",
		},
		{
			name:     "centered",
			block:    ir.NewParagraphBlock(&ir.Paragraph{Runs: []ir.Run{plain("c")}, Alignment: ir.AlignCenter}),
			expected: `<p style="text-align: center">c</p>`,
		},
		{
			name:     "note",
			block:    ir.NewParagraphBlock(&ir.Paragraph{Kind: ir.ParagraphNote, Runs: []ir.Run{plain("Careful")}}),
			expected: `<div class="admonition note"><p class="admonition-title">Note</p><p>Careful</p></div>`,
		},
		{
			name:     "ruled",
			block:    ir.NewParagraphBlock(&ir.Paragraph{Ruled: true}),
			expected: "<hr/>",
		},
		{
			name:     "nested list",
			block:    ir.NewListBlock(list),
			expected: "<ul><li>one<ol><li>a</li><li>b</li></ol></li><li>two</li></ul>",
		},
		{
			name:     "table",
			block:    ir.NewTableBlock(table),
			expected: `<table><tr><th colspan="2">H</th></tr><tr><td>x</td><td style="text-align: right">y</td></tr></table>`,
		},
		{
			name:     "code",
			block:    ir.NewCodeBlock(&ir.CodeBlock{Lines: []string{"  a < b;", "c"}, Language: "cpp"}),
			expected: "<pre><code class=\"language-cpp\">  a &lt; b;\nc</code></pre>",
		},
		{
			name:     "link",
			block:    para(ir.NewLinkRun("Bar", ir.TextStyle{}, "classBar")),
			expected: `<p><a href="#classBar">Bar</a></p>`,
		},
		{
			name:     "inline objects",
			block:    para(plain("see "), ir.NewImageRun(&ir.ImageBlock{Path: "i.png", Name: "i.png", Inline: true}), plain(" and "), ir.NewDiagramRun(&ir.DiagramBlock{Engine: ir.DiagramDot, Source: "a -> b", Inline: true})),
			expected: `<p>see <img src="i.png" alt="i.png"/> and <code class="diagram diagram-dot">a -&gt; b</code></p>`,
		},
		{
			name:     "image",
			block:    ir.NewImageBlock(&ir.ImageBlock{Path: "images/a.png", Name: "a.png", Caption: []ir.Run{plain("Cap")}}),
			expected: `<figure><img src="images/a.png" alt="Cap"/><figcaption>Cap</figcaption></figure>`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := renderNodes(t, HTMLBlocks([]ir.Block{tc.block}, 0))
			if got != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestHTML_Page(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, sampleDocument()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	for _, e := range []string{
		"<!DOCTYPE html>",
		"<title>Foo class</title>",
		`<h1 id="classFoo">Foo class</h1>`,
		`<h3 id="classFoo_1a1">run</h3>`,
		`<pre class="signature"><code>int Foo::run(int n)</code></pre>`,
	} {
		if !strings.Contains(out, e) {
			t.Errorf("expected page to contain %s, got:\n%s", e, out)
		}
	}
}

func TestText(t *testing.T) {
	out := Text(sampleDocument())
	for _, e := range []string{"Compound: Foo class\n", "Brief: A foo.\n", "Hello world\n", "[note] Careful\n", "[Public Functions]\n  int Foo::run(int n)\n"} {
		if !strings.Contains(out, e) {
			t.Errorf("expected text to contain %q, got:\n%s", e, out)
		}
	}
}

func TestSignature(t *testing.T) {
	tests := []struct {
		member   ir.Member
		expected string
	}{
		{ir.Member{Name: "MAX", Kind: "define", Args: "(a, b)"}, "#define MAX(a, b)"},
		{ir.Member{Name: "x", Definition: "int x"}, "int x"},
		{ir.Member{Name: "f", Args: "()"}, "f()"},
	}
	for _, tc := range tests {
		if got := Signature(tc.member); got != tc.expected {
			t.Errorf("expected %q, got %q", tc.expected, got)
		}
	}
}
