package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/canton7/Dox2Word-sub000/internal/config"
	"github.com/canton7/Dox2Word-sub000/internal/content"
	"github.com/canton7/Dox2Word-sub000/internal/parser"
	"github.com/canton7/Dox2Word-sub000/internal/parser/doxygen"
)

var (
	extractOutput      string
	extractFormat      string
	extractPrettyPrint bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <compound.xml>",
	Short: "Extract the intermediate representation of one compound",
	Long: `Parse a single Doxygen compound file and print its intermediate
representation (IR) as JSON, or as a plain text summary.

References are resolved with index.xml when it sits next to the file.
No diagrams are rendered and no LLM is involved.

Examples:
  dox2md extract build/xml/classWidget.xml
  dox2md extract build/xml/classWidget.xml -o widget.json
  dox2md extract build/xml/indexpage.xml --format text`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "json", "output format (json, text)")
	extractCmd.Flags().BoolVar(&extractPrettyPrint, "pretty", true, "indent JSON output")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	log := newLogger(cmd.ErrOrStderr())

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if format := parser.DetectFormat(inputPath); format != parser.FormatCompound {
		return fmt.Errorf("not a compound file: %s (detected %s)", inputPath, format)
	}
	if err := checkCompoundRoot(inputPath); err != nil {
		return err
	}

	format, err := normalizeFormat(extractFormat)
	if err != nil {
		return err
	}
	if format != config.OutputJSON && format != config.OutputText {
		return fmt.Errorf("unsupported output format: %s (supported: json, text)", extractFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := filepath.Dir(inputPath)
	var resolver content.Resolver
	if index, err := doxygen.LoadIndex(dir); err == nil {
		resolver = index
	} else {
		log.Debug("extracting without index", "error", err)
	}

	p := doxygen.New(inputPath, resolver, parser.Options{
		Logger:       log,
		ImageDir:     dir,
		ImageType:    cfg.Doxygen.ImageType,
		SuppressXRef: cfg.Doxygen.SuppressXRef,
	})
	defer p.Close()

	doc, err := p.Parse()
	if err != nil {
		return fmt.Errorf("failed to parse compound: %w", err)
	}

	output, err := formatOutput(doc, format, extractPrettyPrint)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if err := writeOutput(cmd, extractOutput, output); err != nil {
		return err
	}
	if extractOutput != "" {
		log.Info("extracted IR", "path", extractOutput)
	}
	return nil
}

// checkCompoundRoot confirms from the root element that path is a compound
// file. The .xml extension alone matches any XML file in the directory.
func checkCompoundRoot(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	format, err := parser.DetectFormatFromReader(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if format != parser.FormatCompound {
		return fmt.Errorf("not a compound file: %s (detected %s)", path, format)
	}
	return nil
}
