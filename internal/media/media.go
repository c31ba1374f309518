// Package media resolves the external resources a document refers to:
// diagrams are rendered to images by external tools and images are measured
// for their format and size. Both are best effort. An element whose
// resource cannot be produced is dropped with a warning.
package media

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// DefaultTimeout bounds a single diagram tool invocation.
const DefaultTimeout = 30 * time.Second

// Options configures the media pass.
type Options struct {
	Logger *slog.Logger

	// XMLDir resolves relative diagram file references.
	XMLDir string
	// OutputDir receives rendered diagram images.
	OutputDir string

	// Dot and PlantUML are tool paths; empty means look them up on PATH.
	Dot      string
	PlantUML string
	Timeout  time.Duration

	// Runner executes tools. Nil means ExecRunner.
	Runner Runner

	// SkipDiagrams leaves diagrams unrendered; renderers fall back to
	// their source text.
	SkipDiagrams bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

func (o Options) runner() Runner {
	if o.Runner == nil {
		return ExecRunner{}
	}
	return o.Runner
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}

// ProcessDocument runs the media pass over every block sequence of doc.
func ProcessDocument(ctx context.Context, doc *ir.Document, opts Options) {
	p := &pass{opts: opts, log: opts.logger()}

	doc.Content = p.blocks(ctx, doc.Content)
	for i := range doc.Sections {
		s := &doc.Sections[i]
		s.Description = p.blocks(ctx, s.Description)
		for j := range s.Members {
			m := &s.Members[j]
			m.Brief = p.blocks(ctx, m.Brief)
			m.Detail = p.blocks(ctx, m.Detail)
			m.Returns = p.blocks(ctx, m.Returns)
			for _, params := range [][]ir.Param{m.Params, m.TParams, m.RetVals, m.Exceptions} {
				for k := range params {
					params[k].Description = p.blocks(ctx, params[k].Description)
				}
			}
			for k := range m.Enumerators {
				m.Enumerators[k].Description = p.blocks(ctx, m.Enumerators[k].Description)
			}
		}
	}
}

// Process runs the media pass over blocks and returns the surviving blocks.
func Process(ctx context.Context, blocks []ir.Block, opts Options) []ir.Block {
	p := &pass{opts: opts, log: opts.logger()}
	return p.blocks(ctx, blocks)
}

type pass struct {
	opts Options
	log  *slog.Logger
}

func (p *pass) blocks(ctx context.Context, blocks []ir.Block) []ir.Block {
	out := blocks[:0]
	for _, b := range blocks {
		switch b.Type {
		case ir.BlockTypeParagraph:
			b.Paragraph.Runs = p.runs(ctx, b.Paragraph.Runs)
			if b.Paragraph.IsEmpty() {
				continue
			}
		case ir.BlockTypeDiagram:
			if !p.diagram(ctx, b.Diagram) {
				continue
			}
		case ir.BlockTypeImage:
			if !p.image(b.Image) {
				continue
			}
		case ir.BlockTypeList:
			b.List.Items = p.blocks(ctx, b.List.Items)
			if b.List.IsEmpty() {
				continue
			}
		case ir.BlockTypeDefinitionList:
			for i := range b.Definitions.Entries {
				e := &b.Definitions.Entries[i]
				e.Description = p.blocks(ctx, e.Description)
			}
		case ir.BlockTypeTable:
			for _, row := range b.Table.Rows {
				for i := range row {
					row[i].Blocks = p.blocks(ctx, row[i].Blocks)
				}
			}
		}
		out = append(out, b)
	}
	return out
}

// runs resolves inline images and diagrams, dropping those that fail.
func (p *pass) runs(ctx context.Context, runs []ir.Run) []ir.Run {
	out := runs[:0]
	for _, r := range runs {
		switch {
		case r.Image != nil && !p.image(r.Image):
			continue
		case r.Diagram != nil && !p.diagram(ctx, r.Diagram):
			continue
		}
		out = append(out, r)
	}
	return out
}

func (p *pass) diagram(ctx context.Context, d *ir.DiagramBlock) bool {
	if p.opts.SkipDiagrams {
		return true
	}
	if err := p.renderDiagram(ctx, d); err != nil {
		p.log.Warn("dropping diagram", "engine", string(d.Engine), "error", err)
		return false
	}
	return true
}

func (p *pass) image(img *ir.ImageBlock) bool {
	if err := Inspect(img); err != nil {
		p.log.Warn("dropping image", "path", img.Path, "error", err)
		return false
	}
	return true
}
