package content

import (
	"testing"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

func TestDefinitionList(t *testing.T) {
	blocks := parseXML(t, `<variablelist>
<varlistentry><term><bold>alpha</bold></term></varlistentry>
<listitem><para>First letter.</para></listitem>
<varlistentry><term>beta</term></varlistentry>
<listitem><para>Second letter.</para></listitem>
</variablelist>`, DefaultOptions())

	if len(blocks) != 1 || blocks[0].Type != ir.BlockTypeDefinitionList {
		t.Fatalf("expected 1 definition list, got %+v", blocks)
	}
	entries := blocks[0].Definitions.Entries
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if ir.PlainText(entries[0].Term) != "alpha" || !entries[0].Term[0].Style.Bold {
		t.Errorf("unexpected first term: %+v", entries[0].Term)
	}
	if got := paragraphText(t, entries[1].Description[0]); got != "Second letter." {
		t.Errorf("expected 'Second letter.', got %q", got)
	}
}

func TestDefinitionList_MissingDescription(t *testing.T) {
	logger, buf := captureLogger()
	opts := DefaultOptions()
	opts.Logger = logger

	blocks := parseXML(t, `<variablelist>
<varlistentry><term>one</term></varlistentry>
<listitem><para>1</para></listitem>
<varlistentry><term>two</term></varlistentry>
<varlistentry><term>three</term></varlistentry>
<listitem><para>3</para></listitem>
</variablelist>`, opts)

	entries := blocks[0].Definitions.Entries
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if ir.PlainText(entries[1].Term) != "three" {
		t.Errorf("expected 'three', got %q", ir.PlainText(entries[1].Term))
	}
	if n := countWarnings(buf); n != 1 {
		t.Errorf("expected 1 warning, got %d", n)
	}
}

func TestDefinitionList_StrayDescription(t *testing.T) {
	logger, buf := captureLogger()
	opts := DefaultOptions()
	opts.Logger = logger

	blocks := parseXML(t, `<variablelist>
<listitem><para>orphan</para></listitem>
<varlistentry><term>kept</term></varlistentry>
<listitem><para>yes</para></listitem>
</variablelist>`, opts)

	entries := blocks[0].Definitions.Entries
	if len(entries) != 1 || ir.PlainText(entries[0].Term) != "kept" {
		t.Errorf("expected only 'kept', got %+v", entries)
	}
	if n := countWarnings(buf); n != 1 {
		t.Errorf("expected 1 warning, got %d", n)
	}
}
