package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canton7/Dox2Word-sub000/internal/config"
	"github.com/canton7/Dox2Word-sub000/internal/llm"
)

type providerInfo struct {
	Name        string
	EnvKey      string
	Description string
}

var providers = []providerInfo{
	{Name: "anthropic", EnvKey: "ANTHROPIC_API_KEY", Description: "Anthropic Claude API"},
	{Name: "openai", EnvKey: "OPENAI_API_KEY", Description: "OpenAI GPT API"},
	{Name: "gemini", EnvKey: "GOOGLE_API_KEY", Description: "Google Gemini API"},
	{Name: "ollama", EnvKey: "OLLAMA_HOST", Description: "Local Ollama server"},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List LLM providers",
	Long: `List the LLM providers available to the --llm polish stage.

Hosted providers need their API key in the listed environment variable.
Ollama runs locally and needs no key.

Examples:
  dox2md convert build/xml --llm --provider anthropic
  dox2md convert build/xml --llm --provider openai --model gpt-4o`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROVIDER\tDEFAULT MODEL\tENV\tSTATUS\tDESCRIPTION")

	for _, p := range providers {
		if !llm.DefaultRegistry.Has(p.Name) {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.Name, defaultModel(cfg, p.Name), p.EnvKey, checkProviderStatus(p), p.Description)
	}
	return w.Flush()
}

func defaultModel(cfg *config.Config, name string) string {
	if pc, ok := cfg.GetProvider(name); ok && pc.Model != "" {
		return pc.Model
	}
	return "-"
}

func checkProviderStatus(p providerInfo) string {
	if p.Name == "ollama" {
		return "✓ available"
	}
	if os.Getenv(p.EnvKey) != "" {
		return "✓ configured"
	}
	return "✗ not set"
}
