package content

import (
	"testing"

	"github.com/canton7/Dox2Word-sub000/internal/doxml"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

func TestTable_Grid(t *testing.T) {
	blocks := parseXML(t, `<table rows="2" cols="2">
<caption>Results</caption>
<row><entry thead="yes" colspan="2" align="center"><para>Head</para></entry></row>
<row><entry thead="no"><para>a</para></entry><entry thead="no" rowspan="3" align="right"><para>b</para></entry></row>
</table>`, DefaultOptions())

	if len(blocks) != 1 || blocks[0].Type != ir.BlockTypeTable {
		t.Fatalf("expected 1 table block, got %+v", blocks)
	}
	table := blocks[0].Table

	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if ir.PlainText(table.Caption) != "Results" {
		t.Errorf("expected caption 'Results', got %q", ir.PlainText(table.Caption))
	}

	head := table.GetCell(0, 0)
	if head.ColSpan != 2 || head.RowSpan != 1 || head.Alignment != ir.AlignCenter {
		t.Errorf("unexpected header cell: %+v", head)
	}
	b := table.GetCell(1, 1)
	if b.RowSpan != 3 || b.ColSpan != 1 || b.Alignment != ir.AlignRight {
		t.Errorf("unexpected cell: %+v", b)
	}
	if got := paragraphText(t, b.Blocks[0]); got != "b" {
		t.Errorf("expected 'b', got %q", got)
	}
	if table.Cols() != 2 {
		t.Errorf("expected 2 columns, got %d", table.Cols())
	}
}

func TestTable_HeaderFlags(t *testing.T) {
	tests := []struct {
		name      string
		xml       string
		rowHeader bool
		colHeader bool
	}{
		{
			name: "partial header row is not a header",
			xml: `<table><row><entry thead="yes"><para>a</para></entry><entry thead="yes"><para>b</para></entry><entry thead="no"><para>c</para></entry></row>` +
				`<row><entry thead="no"><para>d</para></entry><entry><para>e</para></entry><entry><para>f</para></entry></row></table>`,
			rowHeader: false,
			colHeader: false,
		},
		{
			name:      "unspecified first column defaults to header",
			xml:       `<table><row><entry><para>a</para></entry></row><row><entry><para>b</para></entry></row></table>`,
			rowHeader: false,
			colHeader: true,
		},
		{
			name:      "full header row",
			xml:       `<table><row><entry thead="yes"><para>a</para></entry><entry thead="yes"><para>b</para></entry></row><row><entry thead="yes"><para>c</para></entry><entry thead="no"><para>d</para></entry></row></table>`,
			rowHeader: true,
			colHeader: true,
		},
		{
			name:      "explicit non-header in first column",
			xml:       `<table><row><entry thead="yes"><para>a</para></entry></row><row><entry thead="no"><para>b</para></entry></row></table>`,
			rowHeader: true,
			colHeader: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blocks := parseXML(t, tc.xml, DefaultOptions())
			table := blocks[0].Table
			if table.FirstRowHeader != tc.rowHeader {
				t.Errorf("FirstRowHeader = %v, want %v", table.FirstRowHeader, tc.rowHeader)
			}
			if table.FirstColumnHeader != tc.colHeader {
				t.Errorf("FirstColumnHeader = %v, want %v", table.FirstColumnHeader, tc.colHeader)
			}
		})
	}
}

func TestSpanAttr(t *testing.T) {
	tests := []struct {
		value    string
		expected int
	}{
		{"", 1},
		{"2", 2},
		{"0", 1},
		{"-1", 1},
		{"x", 1},
	}
	for _, tc := range tests {
		attrs := map[string]string{}
		if tc.value != "" {
			attrs["colspan"] = tc.value
		}
		n := doxml.NewElement("entry", attrs)
		if got := spanAttr(n, "colspan"); got != tc.expected {
			t.Errorf("spanAttr(%q) = %d, want %d", tc.value, got, tc.expected)
		}
	}
}
