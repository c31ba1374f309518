package doxygen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const indexXML = `<?xml version='1.0' encoding='UTF-8' standalone='no'?>
<doxygenindex version="1.9.8" xml:lang="en-US">
  <compound refid="classWidget" kind="class"><name>ui::Widget</name>
    <member refid="classWidget_1a1" kind="function"><name>resize</name></member>
  </compound>
  <compound refid="widget_8h" kind="file"><name>widget.h</name>
    <member refid="classWidget_1a1" kind="function"><name>resize</name></member>
    <member refid="widget_8h_1a9" kind="define"><name>WIDGET_MAX</name></member>
  </compound>
  <compound refid="dir_abc" kind="dir"><name>src</name></compound>
  <compound refid="indexpage" kind="page"><name>index</name></compound>
</doxygenindex>
`

func writeIndex(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.xml"), []byte(indexXML), 0644); err != nil {
		t.Fatalf("failed to write index: %v", err)
	}
	return dir
}

func TestLoadIndex(t *testing.T) {
	idx, err := LoadIndex(writeIndex(t))
	if err != nil {
		t.Fatalf("failed to load index: %v", err)
	}

	if idx.Version != "1.9.8" {
		t.Errorf("expected version 1.9.8, got %s", idx.Version)
	}
	if len(idx.Compounds) != 4 {
		t.Fatalf("expected 4 compounds, got %d", len(idx.Compounds))
	}
	if n := len(idx.Compounds[1].Members); n != 2 {
		t.Errorf("expected 2 members in widget.h, got %d", n)
	}
}

func TestLoadIndex_Missing(t *testing.T) {
	if _, err := LoadIndex(t.TempDir()); err == nil {
		t.Error("expected error for a directory without index.xml")
	}
}

func TestParseIndex_Invalid(t *testing.T) {
	if _, err := ParseIndex([]byte("<doxygenindex><compound>")); err == nil {
		t.Error("expected error for truncated index")
	}
}

func TestIndex_CompoundKind(t *testing.T) {
	idx, err := ParseIndex([]byte(indexXML))
	if err != nil {
		t.Fatalf("failed to parse index: %v", err)
	}

	tests := []struct {
		refid string
		kind  string
		ok    bool
	}{
		{"classWidget", "class", true},
		{"widget_8h", "file", true},
		{"dir_abc", "dir", true},
		{"widget_8h_1a9", "file", true},
		{"classWidget_1a1", "class", true}, // first owner wins
		{"nope", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.refid, func(t *testing.T) {
			kind, ok := idx.CompoundKind(tc.refid)
			if kind != tc.kind || ok != tc.ok {
				t.Errorf("CompoundKind(%q) = %q, %v; want %q, %v", tc.refid, kind, ok, tc.kind, tc.ok)
			}
		})
	}
}

func TestIndex_NameAndLookup(t *testing.T) {
	idx, _ := ParseIndex([]byte(indexXML))

	if name, ok := idx.Name("widget_8h_1a9"); !ok || name != "WIDGET_MAX" {
		t.Errorf("unexpected member name %q", name)
	}
	if name, ok := idx.Name("classWidget"); !ok || name != "ui::Widget" {
		t.Errorf("unexpected compound name %q", name)
	}

	c, err := idx.Lookup("widget_8h")
	if err != nil || c.Kind != "file" {
		t.Errorf("Lookup(widget_8h) = %+v, %v", c, err)
	}
	if _, err := idx.Lookup("widget_8h_1a9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for a member id, got %v", err)
	}
	if _, err := idx.Lookup("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIndex_Documented(t *testing.T) {
	idx, _ := ParseIndex([]byte(indexXML))

	var ids []string
	for _, c := range idx.Documented() {
		ids = append(ids, c.RefID)
	}
	want := []string{"classWidget", "widget_8h", "indexpage"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
		}
	}
}

func TestCompoundPath(t *testing.T) {
	if got := CompoundPath("out/xml", "classWidget"); got != filepath.Join("out/xml", "classWidget.xml") {
		t.Errorf("unexpected path %s", got)
	}
}
