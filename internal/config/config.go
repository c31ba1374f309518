// Package config manages application configuration.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration.
type Config struct {
	DefaultProvider string              `yaml:"default_provider"`
	Providers       map[string]Provider `yaml:"providers"`
	Format          FormatConfig        `yaml:"format"`
	Doxygen         DoxygenConfig       `yaml:"doxygen"`
	Output          OutputConfig        `yaml:"output"`
	Diagram         DiagramConfig       `yaml:"diagram"`
	Template        TemplateConfig      `yaml:"template"`
}

// Provider represents an LLM provider configuration.
type Provider struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Endpoint  string `yaml:"endpoint,omitempty"` // for Ollama or custom endpoints
}

// FormatConfig contains LLM formatting options.
type FormatConfig struct {
	Temperature float64 `yaml:"temperature"`
	Language    string  `yaml:"language"`
}

// DoxygenConfig describes the Doxygen XML input.
type DoxygenConfig struct {
	XMLDir       string   `yaml:"xml_dir"`
	SuppressXRef []string `yaml:"suppress_xref"` // xrefsect categories left out of the output
	ImageType    string   `yaml:"image_type"`    // which <image type=".."> variant to use
}

// OutputConfig controls rendered output.
type OutputConfig struct {
	Format    string `yaml:"format"` // markdown, html, json, text
	Dir       string `yaml:"dir,omitempty"`
	ImagesDir string `yaml:"images_dir"`
}

// DiagramConfig controls rendering of dot and PlantUML diagrams.
type DiagramConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Dot      string        `yaml:"dot,omitempty"`
	PlantUML string        `yaml:"plantuml,omitempty"`
	Timeout  time.Duration `yaml:"timeout"`
}

// TemplateConfig configures HTML template filling.
type TemplateConfig struct {
	Path   string            `yaml:"path,omitempty"`
	Anchor string            `yaml:"anchor"`
	Values map[string]string `yaml:"values,omitempty"`
}

// Output formats.
const (
	OutputMarkdown = "markdown"
	OutputHTML     = "html"
	OutputJSON     = "json"
	OutputText     = "text"
)

// ValidProviders lists the supported LLM providers.
var ValidProviders = []string{"anthropic", "openai", "gemini", "ollama"}

// ValidOutputFormats lists the supported output formats.
var ValidOutputFormats = []string{OutputMarkdown, OutputHTML, OutputJSON, OutputText}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: "anthropic",
		Providers: map[string]Provider{
			"openai": {
				APIKey:    "${OPENAI_API_KEY}",
				Model:     "gpt-4o-mini",
				MaxTokens: 4096,
			},
			"anthropic": {
				APIKey:    "${ANTHROPIC_API_KEY}",
				Model:     "claude-sonnet-4-20250514",
				MaxTokens: 4096,
			},
			"gemini": {
				APIKey:    "${GOOGLE_API_KEY}",
				Model:     "gemini-1.5-flash",
				MaxTokens: 4096,
			},
			"ollama": {
				Endpoint:  "http://localhost:11434",
				Model:     "llama3.2",
				MaxTokens: 4096,
			},
		},
		Format: FormatConfig{
			Temperature: 0.3,
			Language:    "en",
		},
		Doxygen: DoxygenConfig{
			XMLDir:       "xml",
			SuppressXRef: []string{"todo", "bug"},
			ImageType:    "html",
		},
		Output: OutputConfig{
			Format:    OutputMarkdown,
			ImagesDir: "./images",
		},
		Diagram: DiagramConfig{
			Timeout: 30 * time.Second,
		},
		Template: TemplateConfig{
			Anchor: "content",
		},
	}
}

// GetProvider returns the provider configuration by name.
func (c *Config) GetProvider(name string) (*Provider, bool) {
	p, ok := c.Providers[name]
	if !ok {
		return nil, false
	}
	return &p, true
}

// GetDefaultProvider returns the default provider configuration.
func (c *Config) GetDefaultProvider() (*Provider, bool) {
	return c.GetProvider(c.DefaultProvider)
}

// SettableKeys lists the keys accepted by Set. template.values.<name> is
// accepted for any name.
var SettableKeys = []string{
	"default_provider",
	"format.temperature",
	"format.language",
	"doxygen.xml_dir",
	"doxygen.suppress_xref",
	"doxygen.image_type",
	"output.format",
	"output.dir",
	"output.images_dir",
	"diagram.enabled",
	"diagram.dot",
	"diagram.plantuml",
	"diagram.timeout",
	"template.path",
	"template.anchor",
	"template.values.<name>",
}

// Set updates a single dotted key from its string form.
func (c *Config) Set(key, value string) error {
	if name, ok := strings.CutPrefix(key, "template.values."); ok && name != "" {
		if c.Template.Values == nil {
			c.Template.Values = make(map[string]string)
		}
		c.Template.Values[name] = value
		return nil
	}

	switch key {
	case "default_provider":
		if !contains(ValidProviders, value) {
			return fmt.Errorf("invalid provider: %s (supported: %s)", value, strings.Join(ValidProviders, ", "))
		}
		c.DefaultProvider = value

	case "format.temperature":
		temp, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid temperature: %s", value)
		}
		if temp < 0 || temp > 1 {
			return fmt.Errorf("temperature must be within 0.0-1.0: %g", temp)
		}
		c.Format.Temperature = temp

	case "format.language":
		if value == "" {
			return fmt.Errorf("language must not be empty")
		}
		c.Format.Language = value

	case "doxygen.xml_dir":
		c.Doxygen.XMLDir = value

	case "doxygen.suppress_xref":
		c.Doxygen.SuppressXRef = splitList(value)

	case "doxygen.image_type":
		c.Doxygen.ImageType = value

	case "output.format":
		if !contains(ValidOutputFormats, value) {
			return fmt.Errorf("invalid output format: %s (supported: %s)", value, strings.Join(ValidOutputFormats, ", "))
		}
		c.Output.Format = value

	case "output.dir":
		c.Output.Dir = value

	case "output.images_dir":
		c.Output.ImagesDir = value

	case "diagram.enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		c.Diagram.Enabled = enabled

	case "diagram.dot":
		c.Diagram.Dot = value

	case "diagram.plantuml":
		c.Diagram.PlantUML = value

	case "diagram.timeout":
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid timeout: %s", value)
		}
		c.Diagram.Timeout = d

	case "template.path":
		c.Template.Path = value

	case "template.anchor":
		if value == "" {
			return fmt.Errorf("anchor must not be empty")
		}
		c.Template.Anchor = value

	default:
		return fmt.Errorf("unknown config key: %s\nsupported keys: %s", key, strings.Join(SettableKeys, ", "))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
