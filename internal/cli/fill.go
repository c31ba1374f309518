package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/canton7/Dox2Word-sub000/internal/render"
	"github.com/canton7/Dox2Word-sub000/internal/template"
)

var (
	fillOutput     string
	fillSet        []string
	fillValuesFile string
	fillAnchor     string
	fillXMLDir     string
	fillCompounds  []string
	fillDiagrams   bool
)

var fillCmd = &cobra.Command{
	Use:   "fill [template.html]",
	Short: "Fill placeholders in an HTML template",
	Long: `Replace <name> placeholders in an HTML template and optionally insert
rendered compounds at an anchor placeholder.

Placeholders are written as &lt;name&gt; in the template source and may be
split across inline elements (<b>&lt;pro</b>ject&gt;). Values come from
template.values in the config, then --values (a YAML map), then --set,
later sources winning. A mapped name that never occurs in the template is
reported as a warning.

With --compound, each compound is rendered to HTML and inserted after the
paragraph holding the anchor placeholder (default <content>), which is
removed.

Examples:
  dox2md fill report.html --set project=Widgets --set version=1.2
  dox2md fill report.html --values values.yaml -o report.out.html
  dox2md fill report.html --xml-dir build/xml --compound indexpage --compound classWidget`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "output file (default: stdout)")
	fillCmd.Flags().StringArrayVar(&fillSet, "set", nil, "placeholder value as name=value (repeatable)")
	fillCmd.Flags().StringVar(&fillValuesFile, "values", "", "YAML file mapping placeholder names to values")
	fillCmd.Flags().StringVar(&fillAnchor, "anchor", "", "placeholder replaced by the compounds (default from config)")
	fillCmd.Flags().StringVar(&fillXMLDir, "xml-dir", "", "Doxygen XML directory (default from config)")
	fillCmd.Flags().StringArrayVar(&fillCompounds, "compound", nil, "compound id to insert at the anchor (repeatable)")
	fillCmd.Flags().BoolVar(&fillDiagrams, "diagrams", false, "render dot and PlantUML diagrams to images")

	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr())

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Template.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no template given (argument or template.path in config)")
	}

	values, err := fillValues(cfg.Template.Values, fillValuesFile, fillSet)
	if err != nil {
		return err
	}

	tmpl, err := template.Load(path)
	if err != nil {
		return err
	}

	res := tmpl.Fill(values, log)
	log.Info("filled placeholders", "template", path, "replaced", res.Replaced, "missing", len(res.Missing))

	if len(fillCompounds) > 0 {
		anchor := cfg.Template.Anchor
		if fillAnchor != "" {
			anchor = fillAnchor
		}
		xmlDir := cfg.Doxygen.XMLDir
		if fillXMLDir != "" {
			xmlDir = fillXMLDir
		}
		if fillDiagrams {
			cfg.Diagram.Enabled = true
		}

		p, err := newPipeline(cfg, log, xmlDir)
		if err != nil {
			return err
		}

		var (
			nodes []*html.Node
			errs  []error
		)
		for _, id := range fillCompounds {
			doc, err := p.compound(cmd.Context(), id)
			if err != nil {
				log.Error("failed to convert compound", "compound", id, "error", err)
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
				continue
			}
			nodes = append(nodes, render.HTMLNodes(doc)...)
		}
		if err := tmpl.InsertAt(anchor, nodes, log); err != nil {
			errs = append(errs, err)
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
	}

	return writeOutput(cmd, fillOutput, tmpl.String())
}

// fillValues merges placeholder values; later sources override earlier ones.
func fillValues(base map[string]string, valuesFile string, set []string) (map[string]string, error) {
	values := make(map[string]string, len(base)+len(set))
	for k, v := range base {
		values[k] = v
	}

	if valuesFile != "" {
		data, err := os.ReadFile(valuesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read values file: %w", err)
		}
		var fromFile map[string]string
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("failed to parse values file: %w", err)
		}
		for k, v := range fromFile {
			values[k] = v
		}
	}

	for _, kv := range set {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set value %q (expected name=value)", kv)
		}
		values[name] = value
	}
	return values, nil
}
