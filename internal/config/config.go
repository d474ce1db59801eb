// Package config handles .tsconvrc.yml project-level configuration.
// Grounded on the teacher's internal/config.LoadProjectConfig: an
// optional YAML file, strict-decoded, validated, with sensible defaults
// when absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig is the .tsconvrc.yml configuration file.
type ProjectConfig struct {
	Version        int      `yaml:"version"`
	Pedantic       bool     `yaml:"pedantic"`
	Ignore         []string `yaml:"ignore"`
	IgnorePrefixes []string `yaml:"ignorePrefixes"`
	React          []string `yaml:"react"`
	NodeModules    string   `yaml:"nodeModules"`
	StdlibFiles    []string `yaml:"stdlibFiles"`
}

// Default returns the zero-configuration project settings: non-pedantic,
// nothing ignored, node_modules resolved relative to the working
// directory.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Version:     1,
		NodeModules: "node_modules",
		StdlibFiles: []string{"lib.es5.d.ts", "lib.dom.d.ts"},
	}
}

// Load loads .tsconvrc.yml or .tsconvrc.yaml from dir, or explicitPath
// when provided. Returns Default() with no error when no config file is
// found.
func Load(dir string, explicitPath string) (*ProjectConfig, error) {
	var configPath string
	if explicitPath != "" {
		configPath = explicitPath
	} else {
		ymlPath := filepath.Join(dir, ".tsconvrc.yml")
		yamlPath := filepath.Join(dir, ".tsconvrc.yaml")
		if _, err := os.Stat(ymlPath); err == nil {
			configPath = ymlPath
		} else if _, err := os.Stat(yamlPath); err == nil {
			configPath = yamlPath
		} else {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read project config %s: %w", configPath, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse project config %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project config %s: %w", configPath, err)
	}
	return cfg, nil
}

// Validate checks that ProjectConfig's values are coherent.
func (c *ProjectConfig) Validate() error {
	if c.Version != 0 && c.Version != 1 {
		return fmt.Errorf("unsupported config version %d (expected 1)", c.Version)
	}
	if c.NodeModules == "" {
		return fmt.Errorf("nodeModules must not be empty")
	}
	return nil
}

// IsReact reports whether libName is configured as a React-flavored
// library (ExtractClasses skips ExpandCallables for these).
func (c *ProjectConfig) IsReact(libName string) bool {
	for _, n := range c.React {
		if n == libName {
			return true
		}
	}
	return false
}

// IsIgnored reports whether libName is in the configured ignore list.
func (c *ProjectConfig) IsIgnored(libName string) bool {
	for _, n := range c.Ignore {
		if n == libName {
			return true
		}
	}
	return false
}
