package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const indexXML = `<?xml version='1.0' encoding='UTF-8' standalone='no'?>
<doxygenindex version="1.9.8" xml:lang="en-US">
  <compound refid="indexpage" kind="page"><name>index</name></compound>
</doxygenindex>
`

const mainPageXML = `<?xml version='1.0' encoding='UTF-8' standalone='no'?>
<doxygen version="1.9.8" xml:lang="en-US">
  <compounddef id="indexpage" kind="page">
    <compoundname>index</compoundname>
    <title>Widget Library</title>
    <briefdescription></briefdescription>
    <detaileddescription>
<para>Getting started:</para>
<para><orderedlist>
<listitem><para>Build the library.</para></listitem>
<listitem><para>Link against it.</para></listitem>
</orderedlist></para>
<para><table rows="2" cols="2"><row><entry thead="yes"><para>Option</para></entry><entry thead="yes"><para>Default</para></entry></row><row><entry thead="no"><para>size</para></entry><entry thead="no"><para>10</para></entry></row></table></para>
    </detaileddescription>
  </compounddef>
</doxygen>
`

// buildTestBinary builds the binary and returns its path.
func buildTestBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping binary build in short mode")
	}
	name := "dox2md_test"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	bin := filepath.Join(t.TempDir(), name)
	buildCmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

func writeXMLDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range map[string]string{"index.xml": indexXML, "indexpage.xml": mainPageXML} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(t *testing.T, bin string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...)...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestCommands(t *testing.T) {
	bin := buildTestBinary(t)
	xmlDir := writeXMLDir(t)

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantOutput []string
	}{
		{
			name:       "convert page",
			args:       []string{"convert", xmlDir},
			wantOutput: []string{"# Widget Library", "1. Build the library.", "Option", "Default"},
		},
		{
			name:       "convert verbose",
			args:       []string{"convert", xmlDir, "indexpage", "-v"},
			wantOutput: []string{"level=DEBUG", "loaded index"},
		},
		{
			name:    "convert missing directory",
			args:    []string{"convert", filepath.Join(xmlDir, "nope")},
			wantErr: true,
		},
		{
			name:       "extract text",
			args:       []string{"extract", filepath.Join(xmlDir, "indexpage.xml"), "--format", "text"},
			wantOutput: []string{"Build the library."},
		},
		{
			name:       "providers",
			args:       []string{"providers"},
			wantOutput: []string{"anthropic", "openai", "gemini", "ollama"},
		},
		{
			name:       "version",
			args:       []string{"version"},
			wantOutput: []string{"dox2md"},
		},
		{
			name:       "config show",
			args:       []string{"config", "show"},
			wantOutput: []string{"default_provider", "xml_dir"},
		},
		{
			name:       "help",
			args:       []string{"--help"},
			wantOutput: []string{"dox2md", "convert", "extract", "fill", "providers", "config"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			output, err := run(t, bin, tc.args...)

			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v\noutput: %s", err, output)
			}

			for _, want := range tc.wantOutput {
				if !strings.Contains(output, want) {
					t.Errorf("output should contain %q, got: %s", want, output)
				}
			}
		})
	}
}
