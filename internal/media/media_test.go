package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

type fakeRunner struct {
	out   []byte
	err   error
	calls []string
	stdin []string
}

func (r *fakeRunner) Run(_ context.Context, tool string, args []string, stdin []byte) ([]byte, error) {
	r.calls = append(r.calls, tool+" "+strings.Join(args, " "))
	r.stdin = append(r.stdin, string(stdin))
	return r.out, r.err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writePNG(t, path, 12, 7)

	img := ir.NewImage(path)
	if err := Inspect(img); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Format != "png" || img.Width != 12 || img.Height != 7 {
		t.Errorf("unexpected image info %+v", img)
	}
}

func TestInspect_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{garbage, filepath.Join(dir, "missing.png"), filepath.Join(dir, "missing.svg")} {
		if err := Inspect(ir.NewImage(path)); err == nil {
			t.Errorf("expected error for %s", path)
		}
	}
	if err := Inspect(ir.NewImage("https://example.com/a.png")); err != nil {
		t.Errorf("expected remote image to be skipped, got %v", err)
	}
}

func TestProcess_RendersDiagrams(t *testing.T) {
	out := t.TempDir()
	runner := &fakeRunner{out: []byte("png-bytes")}
	blocks := []ir.Block{
		ir.NewDiagramBlock(&ir.DiagramBlock{Engine: ir.DiagramDot, Source: "a -> b"}),
		ir.NewDiagramBlock(&ir.DiagramBlock{Engine: ir.DiagramPlantUML, Source: "Alice -> Bob"}),
	}

	got := Process(context.Background(), blocks, Options{OutputDir: out, Dot: "/opt/dot", Runner: runner})

	if len(got) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(got))
	}
	if runner.calls[0] != "/opt/dot -Tpng" || runner.calls[1] != "plantuml -tpng -pipe" {
		t.Errorf("unexpected calls %v", runner.calls)
	}
	if runner.stdin[0] != "digraph {\na -> b\n}\n" {
		t.Errorf("expected dot source to be wrapped, got %q", runner.stdin[0])
	}
	if !strings.HasPrefix(runner.stdin[1], "@startuml\nAlice -> Bob\n@enduml") {
		t.Errorf("expected plantuml source to be wrapped, got %q", runner.stdin[1])
	}
	for _, b := range got {
		data, err := os.ReadFile(b.Diagram.RenderedPath)
		if err != nil || string(data) != "png-bytes" {
			t.Errorf("expected rendered image at %q: %v", b.Diagram.RenderedPath, err)
		}
	}
}

func TestProcess_DropsFailures(t *testing.T) {
	logger, buf := captureLogger()
	runner := &fakeRunner{err: errors.New("dot: not found")}

	list := ir.NewList(false, 0)
	list.AddItem(ir.NewImageBlock(ir.NewImage(filepath.Join(t.TempDir(), "gone.png"))))

	blocks := []ir.Block{
		ir.NewParagraphBlock(&ir.Paragraph{Runs: []ir.Run{ir.NewRun("kept", ir.TextStyle{})}}),
		ir.NewDiagramBlock(&ir.DiagramBlock{Engine: ir.DiagramDot, Source: "digraph { a }"}),
		ir.NewDiagramBlock(&ir.DiagramBlock{Engine: ir.DiagramMsc, Source: "a=>b;"}),
		ir.NewDiagramBlock(&ir.DiagramBlock{Engine: ir.DiagramDot, File: "missing.dot"}),
		ir.NewListBlock(list),
	}

	got := Process(context.Background(), blocks, Options{Logger: logger, XMLDir: t.TempDir(), OutputDir: t.TempDir(), Runner: runner})

	if len(got) != 1 || got[0].Type != ir.BlockTypeParagraph {
		t.Fatalf("expected only the paragraph to survive, got %+v", got)
	}
	if n := strings.Count(buf.String(), "level=WARN"); n != 4 {
		t.Errorf("expected 4 warnings, got %d:\n%s", n, buf.String())
	}
	if runner.stdin[0] != "digraph { a }" {
		t.Errorf("expected complete dot source to pass through, got %q", runner.stdin[0])
	}
}

func TestProcess_DiagramFromFile(t *testing.T) {
	xmlDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(xmlDir, "deps.dot"), []byte("digraph { x -> y }"), 0644); err != nil {
		t.Fatal(err)
	}
	runner := &fakeRunner{out: []byte("png")}

	doc := ir.NewDocument()
	doc.AddSection(ir.MemberSection{Members: []ir.Member{{
		Detail: []ir.Block{ir.NewDiagramBlock(&ir.DiagramBlock{Engine: ir.DiagramDot, File: "deps.dot"})},
	}}})

	ProcessDocument(context.Background(), doc, Options{XMLDir: xmlDir, OutputDir: t.TempDir(), Runner: runner})

	d := doc.Sections[0].Members[0].Detail[0].Diagram
	if d.Source != "digraph { x -> y }" || d.RenderedPath == "" {
		t.Errorf("unexpected diagram %+v", d)
	}
}

func TestProcess_SkipDiagrams(t *testing.T) {
	runner := &fakeRunner{err: errors.New("should not run")}
	blocks := []ir.Block{
		ir.NewDiagramBlock(&ir.DiagramBlock{Engine: ir.DiagramDot, Source: "a -> b"}),
	}

	got := Process(context.Background(), blocks, Options{Runner: runner, SkipDiagrams: true})

	if len(got) != 1 || got[0].Diagram.RenderedPath != "" {
		t.Fatalf("expected the diagram kept unrendered, got %+v", got)
	}
	if len(runner.calls) != 0 {
		t.Errorf("expected no tool calls, got %v", runner.calls)
	}
}

func TestProcessDocument_MemberDescriptions(t *testing.T) {
	logger, buf := captureLogger()
	missing := ir.NewImageBlock(ir.NewImage(filepath.Join(t.TempDir(), "gone.png")))
	kept := ir.NewParagraphBlock(&ir.Paragraph{Runs: []ir.Run{ir.NewRun("x", ir.TextStyle{})}})

	doc := ir.NewDocument()
	doc.AddSection(ir.MemberSection{
		Kind: "func",
		Members: []ir.Member{{
			Name:        "f",
			Params:      []ir.Param{{Name: "a", Description: []ir.Block{kept, missing}}},
			Enumerators: []ir.Enumerator{{Name: "E", Description: []ir.Block{missing}}},
		}},
	})

	ProcessDocument(context.Background(), doc, Options{Logger: logger})

	m := doc.Sections[0].Members[0]
	if len(m.Params[0].Description) != 1 || len(m.Enumerators[0].Description) != 0 {
		t.Errorf("expected missing images dropped from descriptions, got %+v", m)
	}
	if n := strings.Count(buf.String(), "level=WARN"); n != 2 {
		t.Errorf("expected 2 warnings, got %d", n)
	}
}

func TestExecRunner_IgnoresWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script tool")
	}
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	script := "#!/bin/sh\ntouch " + marker + "\n"
	if err := os.WriteFile(filepath.Join(dir, "fakedot"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("PATH", ".")

	_, err := ExecRunner{}.Run(context.Background(), "fakedot", nil, nil)
	if !errors.Is(err, exec.ErrDot) {
		t.Fatalf("expected exec.ErrDot, got %v", err)
	}
	if _, err := os.Stat(marker); err == nil {
		t.Error("expected the tool in the working directory not to run")
	}
}

func TestProcess_InlineRuns(t *testing.T) {
	logger, buf := captureLogger()
	dir := t.TempDir()
	good := filepath.Join(dir, "icon.png")
	writePNG(t, good, 4, 4)
	runner := &fakeRunner{out: []byte("png")}

	para := &ir.Paragraph{Runs: []ir.Run{
		ir.NewRun("see ", ir.TextStyle{}),
		ir.NewImageRun(&ir.ImageBlock{Path: good, Inline: true}),
		ir.NewImageRun(&ir.ImageBlock{Path: filepath.Join(dir, "gone.png"), Inline: true}),
		ir.NewDiagramRun(&ir.DiagramBlock{Engine: ir.DiagramDot, Source: "a -> b", Inline: true}),
		ir.NewRun(" here", ir.TextStyle{}),
	}}
	only := &ir.Paragraph{Runs: []ir.Run{
		ir.NewImageRun(&ir.ImageBlock{Path: filepath.Join(dir, "gone.png"), Inline: true}),
	}}

	got := Process(context.Background(), []ir.Block{ir.NewParagraphBlock(para), ir.NewParagraphBlock(only)},
		Options{Logger: logger, OutputDir: t.TempDir(), Runner: runner})

	if len(got) != 1 {
		t.Fatalf("expected the emptied paragraph dropped, got %d blocks", len(got))
	}
	runs := got[0].Paragraph.Runs
	if len(runs) != 4 {
		t.Fatalf("expected 4 runs, got %+v", runs)
	}
	if runs[1].Image.Width != 4 || runs[1].Image.Format != "png" {
		t.Errorf("expected inline image measured, got %+v", runs[1].Image)
	}
	if runs[2].Diagram == nil || runs[2].Diagram.RenderedPath == "" {
		t.Errorf("expected inline diagram rendered, got %+v", runs[2])
	}
	if n := strings.Count(buf.String(), "level=WARN"); n != 2 {
		t.Errorf("expected 2 warnings, got %d:\n%s", n, buf.String())
	}
}
