// Package config provides settings loading for the qschemas CLI.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds the CLI's tunable behavior. Values are resolved in
// order: defaults, settings file, QSCHEMAS_* environment, flags.
type Settings struct {
	LogLevel    string `yaml:"log_level"`
	LogEncoding string `yaml:"log_encoding"`
	Development bool   `yaml:"development"`
	Indent      bool   `yaml:"indent"`
}

// DefaultSettings returns the CLI defaults.
func DefaultSettings() *Settings {
	return &Settings{
		LogLevel:    "error",
		LogEncoding: "json",
	}
}

// Load reads settings from a YAML file, substituting ${VAR_NAME}
// references with environment variable values first.
func Load(filePath string, settings *Settings) error {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: File path is controlled by caller and validated
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	content := substituteEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(content), settings); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// Save writes settings to a YAML file.
func Save(filePath string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
