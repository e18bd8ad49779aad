// Package config loads the codeprompt project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file in the project directory.
const FileName = ".codeprompt.toml"

// Providers supported by codeprompt and the model used when none is configured.
var defaultModels = map[string]string{
	"anthropic": "claude-3-5-sonnet-20240620",
	"openai":    "gpt-4o",
}

// A Config holds the settings for a generation run. The same keys may be set
// in the project configuration file and in the front matter of a prompt file.
type Config struct {
	Provider       string   `toml:"provider" json:"provider" yaml:"provider"`
	Model          string   `toml:"model" json:"model" yaml:"model"`
	Temperature    float64  `toml:"temperature" json:"temperature" yaml:"temperature"`
	MaxTokens      int      `toml:"max_tokens" json:"max_tokens" yaml:"max_tokens"`
	XMLTag         string   `toml:"xml_tag" json:"xml_tag" yaml:"xml_tag"`
	SystemTemplate string   `toml:"system_template" json:"system_template" yaml:"system_template"`
	Include        []string `toml:"include" json:"include" yaml:"include"`
	Exclude        []string `toml:"exclude" json:"exclude" yaml:"exclude"`
	MaxFileSize    int      `toml:"max_file_size" json:"max_file_size" yaml:"max_file_size"`
	OutputDir      string   `toml:"output_dir" json:"output_dir" yaml:"output_dir"`
	Concurrency    int      `toml:"concurrency" json:"concurrency" yaml:"concurrency"`
	Exec           string   `toml:"exec" json:"exec" yaml:"exec"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Provider:    "anthropic",
		Temperature: 0.2,
		MaxTokens:   4096,
		MaxFileSize: 32 * 1024,
		Concurrency: 4,
	}
}

// Load reads FileName from dir over the defaults. A missing file is not an
// error.
func Load(dir string) (*Config, error) {
	cfg := Defaults()
	path := filepath.Join(dir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// ModelName returns the configured model, or the provider's default.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("unknown provider: %q", c.Provider)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be at least 1, got %d", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature)
	}
	return nil
}
