package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canton7/Dox2Word-sub000/internal/config"
)

var (
	convertOutput    string
	convertFormat    string
	convertUseLLM    bool
	convertProvider  string
	convertModel     string
	convertImagesDir string
	convertDiagrams  bool
	convertPretty    bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <xml-dir> [compound-id...]",
	Short: "Convert Doxygen compounds to Markdown, HTML or JSON",
	Long: `Convert compounds from a Doxygen XML output directory.

Without compound ids every class, struct, union, interface, namespace,
file, group and page listed in index.xml is converted. A compound that
fails to convert is reported and the others are still written.

With --diagrams, dot and PlantUML diagrams are rendered to PNG images in
--images-dir using the dot and plantuml tools. Without it diagrams are
written as source.

--llm adds an optional second stage in which an LLM polishes the
Markdown wording (Markdown output only).

Environment:
  DOX2MD_LLM=true       enable the LLM stage
  DOX2MD_PROVIDER=xxx   LLM provider (anthropic, openai, gemini, ollama)
  DOX2MD_MODEL=xxx      model name; selects the provider when none is given

Examples:
  dox2md convert build/xml
  dox2md convert build/xml classWidget -o widget.md
  dox2md convert build/xml --format html -o site
  dox2md convert build/xml indexpage --llm --model gpt-4o`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output file or directory (default: stdout)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "output format: markdown, html, json, text (default from config)")
	convertCmd.Flags().BoolVar(&convertUseLLM, "llm", false, "polish Markdown with an LLM")
	convertCmd.Flags().StringVar(&convertProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	convertCmd.Flags().StringVar(&convertModel, "model", "", "LLM model name")
	convertCmd.Flags().StringVar(&convertImagesDir, "images-dir", "", "directory for rendered diagrams (default from config)")
	convertCmd.Flags().BoolVar(&convertDiagrams, "diagrams", false, "render dot and PlantUML diagrams to images")
	convertCmd.Flags().BoolVar(&convertPretty, "pretty", true, "indent JSON output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if convertImagesDir != "" {
		cfg.Output.ImagesDir = convertImagesDir
	}
	if convertDiagrams {
		cfg.Diagram.Enabled = true
	}

	format := cfg.Output.Format
	if convertFormat != "" {
		format = convertFormat
	}
	format, err = normalizeFormat(format)
	if err != nil {
		return err
	}

	xmlDir := args[0]
	if _, err := os.Stat(xmlDir); os.IsNotExist(err) {
		return fmt.Errorf("directory not found: %s", xmlDir)
	}

	p, err := newPipeline(cfg, log, xmlDir)
	if err != nil {
		return err
	}

	settings := resolveLLM(convertUseLLM, convertProvider, convertModel, cfg)
	if settings.enabled && format != config.OutputMarkdown {
		log.Warn("LLM formatting applies to Markdown output only; skipping", "format", format)
		settings.enabled = false
	}

	ids := p.ids(args[1:])
	if len(ids) == 0 {
		return fmt.Errorf("no documented compounds in %s", xmlDir)
	}
	toDir := outputIsDir(convertOutput, len(ids))

	var (
		errs    []error
		outputs []string
	)
	for _, id := range ids {
		doc, err := p.compound(cmd.Context(), id)
		if err != nil {
			log.Error("failed to convert compound", "compound", id, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}

		var out string
		if settings.enabled {
			out, err = formatWithLLM(cmd.Context(), doc, cfg, settings, log)
			if err != nil {
				return fmt.Errorf("LLM formatting failed: %w", err)
			}
		} else if out, err = formatOutput(doc, format, convertPretty); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}

		if !toDir {
			outputs = append(outputs, out)
			continue
		}
		path := filepath.Join(convertOutput, id+formatExt(format))
		if err := writeOutput(cmd, path, out); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		log.Debug("wrote compound", "compound", id, "path", path)
	}

	if !toDir && len(outputs) > 0 {
		if err := writeOutput(cmd, convertOutput, strings.Join(outputs, "\n")); err != nil {
			return err
		}
	}

	log.Info("conversion finished", "converted", len(ids)-len(errs), "failed", len(errs))
	return errors.Join(errs...)
}

// outputIsDir reports whether -o names a directory: an existing one, a path
// without an extension, or any path when several compounds are written.
func outputIsDir(out string, compounds int) bool {
	if out == "" {
		return false
	}
	if info, err := os.Stat(out); err == nil {
		return info.IsDir()
	}
	return compounds > 1 || filepath.Ext(out) == ""
}
