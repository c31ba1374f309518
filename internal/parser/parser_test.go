package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	xmlDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(xmlDir, IndexFileName), []byte("<doxygenindex/>"), 0644); err != nil {
		t.Fatal(err)
	}
	emptyDir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		expected Format
	}{
		{"xml output directory", xmlDir, FormatXMLDir},
		{"directory without index", emptyDir, FormatUnknown},
		{"index file", "/out/xml/index.xml", FormatIndex},
		{"index uppercase", "INDEX.XML", FormatIndex},
		{"compound file", "classWidget.xml", FormatCompound},
		{"unknown extension", "Doxyfile", FormatUnknown},
		{"html file", "index.html", FormatUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectFormat(tc.path)
			if got != tc.expected {
				t.Errorf("DetectFormat(%q) = %v, want %v", tc.path, got, tc.expected)
			}
		})
	}
}

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatXMLDir, "xml-dir"},
		{FormatIndex, "index"},
		{FormatCompound, "compound"},
		{FormatUnknown, "unknown"},
		{Format(999), "unknown"},
	}

	for _, tc := range tests {
		got := tc.format.String()
		if got != tc.expected {
			t.Errorf("Format(%d).String() = %q, want %q", int(tc.format), got, tc.expected)
		}
	}
}

func TestDetectFormatFromReader(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected Format
		wantErr  bool
	}{
		{"index", `<?xml version="1.0"?><doxygenindex version="1.9.8"></doxygenindex>`, FormatIndex, false},
		{"compound", "<?xml version='1.0'?>\n<!-- generated -->\n<doxygen><compounddef/></doxygen>", FormatCompound, false},
		{"other xml", `<html></html>`, FormatUnknown, false},
		{"empty", ``, FormatUnknown, true},
		{"not xml", `<<<`, FormatUnknown, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectFormatFromReader(strings.NewReader(tc.data))
			if (err != nil) != tc.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("got %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.ImageType != "html" {
		t.Errorf("expected image type html, got %s", opts.ImageType)
	}
	if len(opts.SuppressXRef) != 2 {
		t.Errorf("expected todo and bug suppressed, got %v", opts.SuppressXRef)
	}
}
