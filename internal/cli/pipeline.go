package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canton7/Dox2Word-sub000/internal/config"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
	"github.com/canton7/Dox2Word-sub000/internal/media"
	"github.com/canton7/Dox2Word-sub000/internal/parser"
	"github.com/canton7/Dox2Word-sub000/internal/parser/doxygen"
	"github.com/canton7/Dox2Word-sub000/internal/render"
)

// pipeline converts compounds of one Doxygen XML directory.
type pipeline struct {
	cfg       *config.Config
	log       *slog.Logger
	xmlDir    string
	index     *doxygen.Index
	imagesDir string
}

func newPipeline(cfg *config.Config, log *slog.Logger, xmlDir string) (*pipeline, error) {
	if parser.DetectFormat(xmlDir) != parser.FormatXMLDir {
		return nil, fmt.Errorf("not a Doxygen XML directory (no %s): %s", parser.IndexFileName, xmlDir)
	}
	index, err := doxygen.LoadIndex(xmlDir)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded index", "dir", xmlDir, "version", index.Version, "compounds", len(index.Compounds))
	return &pipeline{
		cfg:       cfg,
		log:       log,
		xmlDir:    xmlDir,
		index:     index,
		imagesDir: cfg.Output.ImagesDir,
	}, nil
}

// ids returns the requested compound ids, or every documented compound.
func (p *pipeline) ids(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	var ids []string
	for _, c := range p.index.Documented() {
		ids = append(ids, c.RefID)
	}
	return ids
}

func (p *pipeline) parserOptions() parser.Options {
	return parser.Options{
		Logger:       p.log,
		ImageDir:     p.xmlDir,
		ImageType:    p.cfg.Doxygen.ImageType,
		SuppressXRef: p.cfg.Doxygen.SuppressXRef,
	}
}

// compound parses one compound and runs the media pass over it.
func (p *pipeline) compound(ctx context.Context, id string) (*ir.Document, error) {
	if _, err := p.index.Lookup(id); err != nil {
		return nil, err
	}

	dp := doxygen.New(doxygen.CompoundPath(p.xmlDir, id), p.index, p.parserOptions())
	defer dp.Close()

	doc, err := dp.Parse()
	if err != nil {
		return nil, err
	}

	media.ProcessDocument(ctx, doc, media.Options{
		Logger:       p.log.With("compound", id),
		XMLDir:       p.xmlDir,
		OutputDir:    p.imagesDir,
		Dot:          p.cfg.Diagram.Dot,
		PlantUML:     p.cfg.Diagram.PlantUML,
		Timeout:      p.cfg.Diagram.Timeout,
		SkipDiagrams: !p.cfg.Diagram.Enabled,
	})
	return doc, nil
}

// normalizeFormat maps format aliases to the config.Output* names.
func normalizeFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "md", "markdown":
		return config.OutputMarkdown, nil
	case "htm", "html":
		return config.OutputHTML, nil
	case "json":
		return config.OutputJSON, nil
	case "txt", "text":
		return config.OutputText, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (supported: %s)", format, strings.Join(config.ValidOutputFormats, ", "))
	}
}

func formatExt(format string) string {
	switch format {
	case config.OutputHTML:
		return ".html"
	case config.OutputJSON:
		return ".json"
	case config.OutputText:
		return ".txt"
	default:
		return ".md"
	}
}

// formatOutput renders doc in a normalized output format.
func formatOutput(doc *ir.Document, format string, pretty bool) (string, error) {
	switch format {
	case config.OutputMarkdown:
		return render.Markdown(doc), nil

	case config.OutputHTML:
		var sb strings.Builder
		if err := render.HTML(&sb, doc); err != nil {
			return "", err
		}
		return sb.String(), nil

	case config.OutputJSON:
		data, err := render.JSON(doc, pretty)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case config.OutputText:
		return render.Text(doc), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeOutput writes to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
