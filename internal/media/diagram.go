package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

// ErrUnsupportedEngine is returned for diagram engines with no renderer.
var ErrUnsupportedEngine = errors.New("unsupported diagram engine")

func (p *pass) renderDiagram(ctx context.Context, d *ir.DiagramBlock) error {
	if d.RenderedPath != "" {
		return nil
	}
	if d.Source == "" && d.File != "" {
		src, err := os.ReadFile(p.resolve(d.File))
		if err != nil {
			return fmt.Errorf("reading diagram source: %w", err)
		}
		d.Source = string(src)
	}

	tool, args, input, err := p.command(d)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.timeout())
	defer cancel()

	png, err := p.opts.runner().Run(ctx, tool, args, input)
	if err != nil {
		return err
	}
	if len(png) == 0 {
		return fmt.Errorf("%s produced no output", tool)
	}

	if err := os.MkdirAll(p.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(p.opts.OutputDir, diagramFileName(d))
	if err := os.WriteFile(path, png, 0644); err != nil {
		return fmt.Errorf("writing diagram: %w", err)
	}
	d.RenderedPath = path
	p.log.Debug("rendered diagram", "engine", string(d.Engine), "path", path)
	return nil
}

func (p *pass) command(d *ir.DiagramBlock) (tool string, args []string, input []byte, err error) {
	switch d.Engine {
	case ir.DiagramDot:
		return toolPath(p.opts.Dot, "dot"), []string{"-Tpng"}, []byte(dotSource(d.Source)), nil
	case ir.DiagramPlantUML:
		return toolPath(p.opts.PlantUML, "plantuml"), []string{"-tpng", "-pipe"}, []byte(plantUMLSource(d.Source)), nil
	}
	return "", nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedEngine, d.Engine)
}

func (p *pass) resolve(name string) string {
	if filepath.IsAbs(name) || p.opts.XMLDir == "" {
		return name
	}
	return filepath.Join(p.opts.XMLDir, name)
}

func toolPath(configured, name string) string {
	if configured != "" {
		return configured
	}
	return name
}

// dotSource wraps a bare statement list, as written inside \dot blocks
// without a graph header, in a digraph.
func dotSource(src string) string {
	trimmed := strings.TrimSpace(src)
	for _, kw := range []string{"digraph", "graph", "strict"} {
		if strings.HasPrefix(trimmed, kw) {
			return src
		}
	}
	return "digraph {\n" + src + "\n}\n"
}

func plantUMLSource(src string) string {
	if strings.Contains(src, "@start") {
		return src
	}
	return "@startuml\n" + strings.Trim(src, "\n") + "\n@enduml\n"
}

// diagramFileName is derived from the source so re-runs overwrite rather
// than accumulate images.
func diagramFileName(d *ir.DiagramBlock) string {
	sum := sha256.Sum256([]byte(string(d.Engine) + "\x00" + d.Source))
	return fmt.Sprintf("%s-%s.png", d.Engine, hex.EncodeToString(sum[:6]))
}
