// Package cli implements the dox2md command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/canton7/Dox2Word-sub000/internal/config"
)

var version = "dev"

var (
	rootConfigPath string
	rootVerbose    bool
	rootQuiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "dox2md",
	Short: "Convert Doxygen XML output to Markdown, HTML or JSON",
	Long: `dox2md reads the XML output of Doxygen and converts each documented
compound (class, file, namespace, group, page) to Markdown, HTML or JSON.

Descriptions are normalized into paragraphs, lists, tables, code blocks,
images and diagrams. Rendered HTML can be placed into a template whose
<name> placeholders are filled from configuration.

Examples:
  dox2md convert build/xml
  dox2md convert build/xml classWidget --format html -o docs
  dox2md extract build/xml/classWidget.xml
  dox2md fill report.html --xml-dir build/xml --compound indexpage`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dox2md %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", "", "config file (default ./.dox2md.yaml, then ~/.dox2md/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "only report errors")

	rootCmd.AddCommand(versionCmd)
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which bounds LLM calls and
// diagram rendering.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newLogger returns the logger for a command run. Warnings about the
// documentation being converted are shown unless --quiet is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case rootQuiet:
		level = slog.LevelError
	case rootVerbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func configLoader() (*config.Loader, error) {
	if rootConfigPath != "" {
		return config.NewLoaderWithPath(rootConfigPath), nil
	}
	return config.Discover()
}

func loadConfig() (*config.Config, error) {
	loader, err := configLoader()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// detectProviderFromModel guesses the provider serving a model name.
func detectProviderFromModel(model string) string {
	m := strings.ToLower(model)
	switch {
	case m == "":
		return "anthropic"
	case strings.HasPrefix(m, "claude"):
		return "anthropic"
	case strings.HasPrefix(m, "gpt"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"), strings.HasPrefix(m, "o4"):
		return "openai"
	case strings.HasPrefix(m, "gemini"):
		return "gemini"
	default:
		return "ollama"
	}
}
